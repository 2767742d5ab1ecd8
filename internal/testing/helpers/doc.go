// Package helpers provides test utility functions for the TesfaFund API.
//
// # HTTP Helpers
//
//	rec := helpers.NewRequest(t, http.MethodPost, "/api/donations").
//	    WithBody(body).
//	    WithHeader("Idempotency-Key", "abc").
//	    Do(router)
//	helpers.AssertStatus(t, rec, http.StatusCreated)
//
// # Assertion Helpers
//
//	helpers.AssertProblemDetails(t, rec, http.StatusConflict, model.ErrCodeConflict)
//	helpers.AssertValidationError(t, rec, "amount")
//	helpers.AssertRecordExists(t, db, "campaign", id)
//
// # Pointer Helpers
//
//	goal := helpers.IntPtr(5000)
//	name := helpers.StringPtr("Michael")
package helpers
