package model

import (
	"strings"
	"time"
)

// Recipient is the person a campaign raises money for.
type Recipient struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	MiddleName   *string   `json:"middle_name,omitempty"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"` // Never expose password hash
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// CreateRecipientRequest represents a request to register a recipient.
// ID is optional; a UUID is generated when it is absent.
type CreateRecipientRequest struct {
	ID         *string `json:"id,omitempty"`
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Password   *string `json:"password,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateRecipientRequest) Validate() []FieldError {
	errors := validateOptionalID(nil, "id", r.ID)
	return validateRecipientFields(errors, r.FirstName, r.MiddleName, r.LastName, r.Email, r.Password)
}

// UpdateRecipientRequest replaces a recipient's profile. The stored password
// hash is kept unless Password is set.
type UpdateRecipientRequest struct {
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Password   *string `json:"password,omitempty"`
}

// Validate checks if the update request is valid
func (r *UpdateRecipientRequest) Validate() []FieldError {
	return validateRecipientFields(nil, r.FirstName, r.MiddleName, r.LastName, r.Email, r.Password)
}

func validateRecipientFields(errors []FieldError, first string, middle *string, last, email string, password *string) []FieldError {
	if strings.TrimSpace(first) == "" {
		errors = append(errors, FieldError{Field: "first_name", Message: "first_name is required"})
	} else if len(first) > MaxNameLength {
		errors = append(errors, FieldError{Field: "first_name", Message: "first_name must be 100 characters or less"})
	}
	if middle != nil && len(*middle) > MaxNameLength {
		errors = append(errors, FieldError{Field: "middle_name", Message: "middle_name must be 100 characters or less"})
	}
	if strings.TrimSpace(last) == "" {
		errors = append(errors, FieldError{Field: "last_name", Message: "last_name is required"})
	} else if len(last) > MaxNameLength {
		errors = append(errors, FieldError{Field: "last_name", Message: "last_name must be 100 characters or less"})
	}
	if email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	} else if !IsValidEmail(email) {
		errors = append(errors, FieldError{Field: "email", Message: "email is not a valid address"})
	}
	if password != nil {
		if len(*password) < MinPasswordLength {
			errors = append(errors, FieldError{Field: "password", Message: "password must be at least 8 characters"})
		} else if len(*password) > MaxPasswordLength {
			errors = append(errors, FieldError{Field: "password", Message: "password must be at most 128 characters"})
		}
	}
	return errors
}

// RecipientFilter narrows a recipient listing. Every non-empty field is a
// case-insensitive substring match; fields are combined with AND.
type RecipientFilter struct {
	FirstName  string `json:"first_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Email      string `json:"email,omitempty"`
}

// IsEmpty reports whether the filter constrains nothing.
func (f *RecipientFilter) IsEmpty() bool {
	return f == nil || (f.FirstName == "" && f.MiddleName == "" && f.LastName == "" && f.Email == "")
}
