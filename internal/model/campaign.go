package model

import (
	"strings"
	"time"
)

// Campaign is a fundraising effort on behalf of one recipient.
type Campaign struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	FundraisingGoal int       `json:"fundraising_goal"`
	RecipientID     string    `json:"recipient_id"`
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
}

// CreateCampaignRequest represents a request to open a campaign.
type CreateCampaignRequest struct {
	ID              *string `json:"id,omitempty"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	FundraisingGoal int     `json:"fundraising_goal"`
	RecipientID     string  `json:"recipient_id"`
}

// Validate checks if the create request is valid
func (r *CreateCampaignRequest) Validate() []FieldError {
	errors := validateOptionalID(nil, "id", r.ID)
	return validateCampaignFields(errors, r.Title, r.Description, r.FundraisingGoal, r.RecipientID)
}

// UpdateCampaignRequest replaces every mutable field of a campaign.
type UpdateCampaignRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	FundraisingGoal int    `json:"fundraising_goal"`
	RecipientID     string `json:"recipient_id"`
}

// Validate checks if the update request is valid
func (r *UpdateCampaignRequest) Validate() []FieldError {
	return validateCampaignFields(nil, r.Title, r.Description, r.FundraisingGoal, r.RecipientID)
}

func validateCampaignFields(errors []FieldError, title, description string, goal int, recipientID string) []FieldError {
	if strings.TrimSpace(title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > MaxTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title must be 200 characters or less"})
	}
	if len(description) > MaxDescriptionLength {
		errors = append(errors, FieldError{Field: "description", Message: "description must be 5000 characters or less"})
	}
	if goal < 0 {
		errors = append(errors, FieldError{Field: "fundraising_goal", Message: "fundraising_goal must be 0 or greater"})
	}
	return validateReferenceID(errors, "recipient_id", recipientID)
}

// CampaignFilter narrows a campaign listing. Title is a case-insensitive
// substring match, RecipientID is exact, and the goal bounds are inclusive.
type CampaignFilter struct {
	Title              string `json:"title,omitempty"`
	RecipientID        string `json:"recipient_id,omitempty"`
	MinFundraisingGoal *int   `json:"min_fundraising_goal,omitempty"`
	MaxFundraisingGoal *int   `json:"max_fundraising_goal,omitempty"`
}

// Validate rejects an inverted goal range.
func (f *CampaignFilter) Validate() []FieldError {
	if f == nil {
		return nil
	}
	return validateRange(nil, "fundraising_goal", "fundraising goal", f.MinFundraisingGoal, f.MaxFundraisingGoal)
}

// IsEmpty reports whether the filter constrains nothing.
func (f *CampaignFilter) IsEmpty() bool {
	return f == nil || (f.Title == "" && f.RecipientID == "" &&
		f.MinFundraisingGoal == nil && f.MaxFundraisingGoal == nil)
}

// DonationProgress is derived on demand and never stored.
type DonationProgress struct {
	CampaignID         string  `json:"campaign_id"`
	TotalDonations     int     `json:"total_donations"`
	FundraisingGoal    int     `json:"fundraising_goal"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// NewDonationProgress computes the percentage of goal reached by total.
// A goal of zero or less yields 0 rather than dividing by it.
func NewDonationProgress(campaignID string, total, goal int) *DonationProgress {
	var pct float64
	if goal > 0 {
		pct = float64(total) / float64(goal) * 100
	}
	return &DonationProgress{
		CampaignID:         campaignID,
		TotalDonations:     total,
		FundraisingGoal:    goal,
		ProgressPercentage: pct,
	}
}
