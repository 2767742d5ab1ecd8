package handler

import (
	"errors"
	"net/http"

	"github.com/tesfafund/api/internal/model"
	"github.com/tesfafund/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Validation problems are built by the service itself
	var pd *model.ProblemDetails
	if errors.As(err, &pd) {
		return pd
	}

	// ===== Referential Errors → 422 =====
	var refErr *service.ReferenceError
	if errors.As(err, &refErr) {
		return model.NewMissingReferenceError(refErr.Field, refErr.Message)
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrRecipientNotFound):
		return model.NewNotFoundError("recipient")
	case errors.Is(err, service.ErrCampaignNotFound):
		return model.NewNotFoundError("campaign")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrRecipientHasCampaigns):
		return model.NewConflictError("Recipient has campaigns and cannot be deleted")
	case errors.Is(err, service.ErrAlreadyExists):
		conflict := model.NewConflictError(err.Error())
		conflict.Code = model.ErrCodeAlreadyExists
		return conflict

	// ===== Store Errors → 500 =====
	case errors.Is(err, service.ErrStoreFailure):
		return model.NewInternalError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// handleError writes the mapped problem response for err
func handleError(w http.ResponseWriter, err error) {
	WriteError(w, MapServiceError(err))
}
