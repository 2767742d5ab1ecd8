// Package model defines domain entities and data structures for the TesfaFund API.
//
// The model package contains the struct definitions for domain objects,
// request and filter types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
//   - Recipient: the person a campaign raises money for
//   - Campaign: a fundraising effort with a goal, owned by one recipient
//   - Donation: an immutable contribution to a campaign
//   - DonationProgress: derived total and percentage for a campaign
//
// # Validation
//
// Request and filter types expose Validate() []FieldError. Handlers turn a
// non-empty result into a 422 ProblemDetails response.
//
// # Errors
//
// ProblemDetails implements RFC 9457 and is the body of every error response.
package model
