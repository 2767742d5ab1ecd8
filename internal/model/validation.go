package model

import (
	"strings"

	"github.com/google/uuid"
)

// Field constraints
const (
	MaxNameLength        = 100
	MaxEmailLength       = 254
	MinPasswordLength    = 8
	MaxPasswordLength    = 128
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
)

// IsValidID reports whether s is a well-formed UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// CanonicalID returns the lower-case hyphenated form of a UUID, the form
// ids are stored in. Anything that is not a UUID is returned trimmed.
func CanonicalID(s string) string {
	s = strings.TrimSpace(s)
	if parsed, err := uuid.Parse(s); err == nil {
		return parsed.String()
	}
	return s
}

// IsValidEmail performs a basic structural check of an email address.
func IsValidEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLength {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 || strings.Count(email, "@") != 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	return dotIndex < len(email)-1
}

func validateOptionalID(errors []FieldError, field string, id *string) []FieldError {
	if id != nil && !IsValidID(*id) {
		errors = append(errors, FieldError{Field: field, Message: field + " must be a valid UUID"})
	}
	return errors
}

func validateReferenceID(errors []FieldError, field, id string) []FieldError {
	if strings.TrimSpace(id) == "" {
		return append(errors, FieldError{Field: field, Message: field + " is required"})
	}
	if !IsValidID(id) {
		return append(errors, FieldError{Field: field, Message: field + " must be a valid UUID"})
	}
	return errors
}

func validateRange(errors []FieldError, field, label string, min, max *int) []FieldError {
	if min != nil && max != nil && *min > *max {
		errors = append(errors, FieldError{
			Field:   field,
			Message: "Min " + label + " cannot be greater than max " + label + ".",
		})
	}
	return errors
}
