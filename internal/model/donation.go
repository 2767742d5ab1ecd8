package model

import "time"

// Donation is an immutable contribution to a campaign.
type Donation struct {
	ID         string    `json:"id"`
	Amount     int       `json:"amount"`
	TimeStamp  time.Time `json:"timestamp"`
	CampaignID string    `json:"campaign_id"`
}

// CreateDonationRequest represents a donation submission. TimeStamp is set
// by the server when omitted.
type CreateDonationRequest struct {
	ID         *string    `json:"id,omitempty"`
	Amount     int        `json:"amount"`
	CampaignID string     `json:"campaign_id"`
	TimeStamp  *time.Time `json:"timestamp,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateDonationRequest) Validate() []FieldError {
	errors := validateOptionalID(nil, "id", r.ID)
	if r.Amount < 1 {
		errors = append(errors, FieldError{Field: "amount", Message: "amount must be at least 1"})
	}
	if r.TimeStamp != nil && r.TimeStamp.IsZero() {
		errors = append(errors, FieldError{Field: "timestamp", Message: "timestamp must be a valid time"})
	}
	return validateReferenceID(errors, "campaign_id", r.CampaignID)
}

// DonationFilter narrows a donation listing. CampaignID is exact, amount
// bounds are inclusive, StartDate is an inclusive lower bound and EndDate
// covers the whole following day (see EndBound).
type DonationFilter struct {
	CampaignID string     `json:"campaign_id,omitempty"`
	MinAmount  *int       `json:"min_amount,omitempty"`
	MaxAmount  *int       `json:"max_amount,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// Validate rejects inverted ranges.
func (f *DonationFilter) Validate() []FieldError {
	if f == nil {
		return nil
	}
	errors := validateRange(nil, "amount", "amount", f.MinAmount, f.MaxAmount)
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		errors = append(errors, FieldError{Field: "start_date", Message: "Start date cannot be after end date."})
	}
	return errors
}

// EndBound returns the inclusive upper timestamp bound: EndDate plus one day.
func (f *DonationFilter) EndBound() (time.Time, bool) {
	if f == nil || f.EndDate == nil {
		return time.Time{}, false
	}
	return f.EndDate.AddDate(0, 0, 1), true
}

// IsEmpty reports whether the filter constrains nothing.
func (f *DonationFilter) IsEmpty() bool {
	return f == nil || (f.CampaignID == "" && f.MinAmount == nil && f.MaxAmount == nil &&
		f.StartDate == nil && f.EndDate == nil)
}
