// Package handler provides the HTTP layer of the TesfaFund API.
//
// Each resource has a handler struct that depends on a small store
// interface (RecipientStore, CampaignStore, DonationStore,
// ProgressCalculator) rather than on concrete services, and registers
// its endpoints on a chi router through Routes.
//
// # Response Format
//
//   - WriteData: single resource with HATEOAS links
//   - WriteCollection: list of resources with a count
//   - WriteError: RFC 9457 Problem Details error response
//
// Service errors are translated by MapServiceError. Validation problems
// and missing references answer 422, unknown resources 404 and blocked
// deletes 409.
//
// # Event Stream
//
// EventsHandler serves GET /api/campaigns/{id}/events as server-sent
// events. It is mounted under the campaign routes when Handlers.Events is
// set.
//
// # Example Usage
//
//	router := handler.NewRouter(handler.Handlers{
//	    Health:     handler.NewHealthHandler(db),
//	    Recipients: handler.NewRecipientHandler(recipientService),
//	}, middleware.RequestID, middleware.Logger)
package handler
