package service

import (
	"errors"
	"fmt"
	"log/slog"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Not Found Errors =====
var (
	ErrRecipientNotFound = errors.New("recipient not found or not modified")
	ErrCampaignNotFound  = errors.New("campaign not found or not modified")
)

// ===== Conflict Errors =====
var (
	ErrRecipientHasCampaigns = errors.New("recipient has campaigns and cannot be deleted")
	ErrAlreadyExists         = errors.New("record with this id already exists")
)

// ===== Reference Errors =====
var (
	// ErrMissingReference matches every *ReferenceError via errors.Is.
	ErrMissingReference = errors.New("referenced record does not exist")
)

// ===== Store Errors =====
var (
	// ErrStoreFailure hides the underlying driver error from API clients.
	// The cause is logged where it happens.
	ErrStoreFailure = errors.New("storage operation failed")
)

// ReferenceError reports a write whose referenced record does not exist.
type ReferenceError struct {
	Field   string
	ID      string
	Message string
}

func (e *ReferenceError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrMissingReference) match any ReferenceError.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrMissingReference
}

func missingRecipient(id string) *ReferenceError {
	return &ReferenceError{
		Field:   "recipient_id",
		ID:      id,
		Message: "Recipient with provided RecipientId does not exist",
	}
}

func missingCampaign(id string) *ReferenceError {
	return &ReferenceError{
		Field:   "campaign_id",
		ID:      id,
		Message: fmt.Sprintf("Campaign with CampaignId: %s does not exist", id),
	}
}

// storeFailure logs a driver error and replaces it with ErrStoreFailure.
func storeFailure(op string, err error, attrs ...any) error {
	args := append([]any{slog.String("op", op), slog.String("error", err.Error())}, attrs...)
	slog.Error("store operation failed", args...)
	return fmt.Errorf("failed to %s: %w", op, ErrStoreFailure)
}
