package model

import (
	"strings"
	"testing"
	"time"
)

const testUUID = "123e4567-e89b-12d3-a456-426655440000"

func hasFieldError(errors []FieldError, field string) bool {
	for _, e := range errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// ============================================================================
// ID / Email Helpers
// ============================================================================

func TestIsValidID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id    string
		valid bool
	}{
		{testUUID, true},
		{"123E4567-E89B-12D3-A456-426655440000", true},
		{"", false},
		{"not-a-uuid", false},
		{"c3d4e5f6-a7b8-9012-3456-7890abcdef1", false},
	}

	for _, tt := range tests {
		if got := IsValidID(tt.id); got != tt.valid {
			t.Errorf("IsValidID(%q) = %v, want %v", tt.id, got, tt.valid)
		}
	}
}

func TestCanonicalID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{testUUID, testUUID},
		{"123E4567-E89B-12D3-A456-426655440000", testUUID},
		{"  " + testUUID + "\t", testUUID},
		{"", ""},
		{" not-a-uuid ", "not-a-uuid"},
	}

	for _, tt := range tests {
		if got := CanonicalID(tt.in); got != tt.want {
			t.Errorf("CanonicalID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		valid bool
	}{
		{"john.doe@example.com", true},
		{"a@b.co", true},
		{"", false},
		{"no-at-sign.com", false},
		{"@example.com", false},
		{"two@@example.com", false},
		{"user@nodot", false},
		{"user@example.", false},
		{strings.Repeat("a", 250) + "@x.io", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.valid {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.valid)
		}
	}
}

// ============================================================================
// Recipient Request Tests
// ============================================================================

func TestCreateRecipientRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	req := &CreateRecipientRequest{
		FirstName:  "John",
		MiddleName: strPtr("Michael"),
		LastName:   "Doe",
		Email:      "john.doe@example.com",
		Password:   strPtr("correct-horse"),
	}

	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestCreateRecipientRequest_Validate_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	req := &CreateRecipientRequest{}

	errors := req.Validate()
	for _, field := range []string{"first_name", "last_name", "email"} {
		if !hasFieldError(errors, field) {
			t.Errorf("expected %s error, got %v", field, errors)
		}
	}
}

func TestCreateRecipientRequest_Validate_InvalidID(t *testing.T) {
	t.Parallel()

	req := &CreateRecipientRequest{
		ID:        strPtr("recipient-1"),
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
	}

	errors := req.Validate()
	if len(errors) != 1 || errors[0].Field != "id" {
		t.Errorf("expected id error, got %v", errors)
	}
}

func TestCreateRecipientRequest_Validate_NameTooLong(t *testing.T) {
	t.Parallel()

	req := &CreateRecipientRequest{
		FirstName:  strings.Repeat("a", MaxNameLength+1),
		MiddleName: strPtr(strings.Repeat("b", MaxNameLength+1)),
		LastName:   "Doe",
		Email:      "john.doe@example.com",
	}

	errors := req.Validate()
	if !hasFieldError(errors, "first_name") || !hasFieldError(errors, "middle_name") {
		t.Errorf("expected first_name and middle_name errors, got %v", errors)
	}
}

func TestCreateRecipientRequest_Validate_PasswordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too_short", "short", true},
		{"min", strings.Repeat("p", MinPasswordLength), false},
		{"max", strings.Repeat("p", MaxPasswordLength), false},
		{"too_long", strings.Repeat("p", MaxPasswordLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &CreateRecipientRequest{
				FirstName: "John",
				LastName:  "Doe",
				Email:     "john.doe@example.com",
				Password:  &tt.password,
			}
			if got := hasFieldError(req.Validate(), "password"); got != tt.wantErr {
				t.Errorf("password error = %v, want %v", got, tt.wantErr)
			}
		})
	}
}

func TestUpdateRecipientRequest_Validate_InvalidEmail(t *testing.T) {
	t.Parallel()

	req := &UpdateRecipientRequest{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane.smith",
	}

	errors := req.Validate()
	if len(errors) != 1 || errors[0].Field != "email" {
		t.Errorf("expected email error, got %v", errors)
	}
}

func TestRecipientFilter_IsEmpty(t *testing.T) {
	t.Parallel()

	var nilFilter *RecipientFilter
	if !nilFilter.IsEmpty() {
		t.Error("nil filter should be empty")
	}
	if !(&RecipientFilter{}).IsEmpty() {
		t.Error("zero filter should be empty")
	}
	if (&RecipientFilter{Email: "example"}).IsEmpty() {
		t.Error("filter with email should not be empty")
	}
}

// ============================================================================
// Campaign Request Tests
// ============================================================================

func TestCreateCampaignRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	req := &CreateCampaignRequest{
		Title:           "Help John's Family",
		Description:     "Medical emergency",
		FundraisingGoal: 10000,
		RecipientID:     testUUID,
	}

	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestCreateCampaignRequest_Validate_ZeroGoalAllowed(t *testing.T) {
	t.Parallel()

	req := &CreateCampaignRequest{Title: "Open ended", RecipientID: testUUID}

	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected no errors for zero goal, got %v", errors)
	}
}

func TestCreateCampaignRequest_Validate_NegativeGoal(t *testing.T) {
	t.Parallel()

	req := &CreateCampaignRequest{Title: "T", FundraisingGoal: -1, RecipientID: testUUID}

	errors := req.Validate()
	if len(errors) != 1 || errors[0].Field != "fundraising_goal" {
		t.Errorf("expected fundraising_goal error, got %v", errors)
	}
}

func TestCreateCampaignRequest_Validate_RecipientID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "   ", "not-a-uuid"} {
		req := &CreateCampaignRequest{Title: "T", RecipientID: id}
		if !hasFieldError(req.Validate(), "recipient_id") {
			t.Errorf("expected recipient_id error for %q", id)
		}
	}
}

func TestCreateCampaignRequest_Validate_TitleAndDescriptionLength(t *testing.T) {
	t.Parallel()

	req := &CreateCampaignRequest{
		Title:       strings.Repeat("t", MaxTitleLength+1),
		Description: strings.Repeat("d", MaxDescriptionLength+1),
		RecipientID: testUUID,
	}

	errors := req.Validate()
	if !hasFieldError(errors, "title") || !hasFieldError(errors, "description") {
		t.Errorf("expected title and description errors, got %v", errors)
	}
}

func TestUpdateCampaignRequest_Validate_MissingTitle(t *testing.T) {
	t.Parallel()

	req := &UpdateCampaignRequest{RecipientID: testUUID}

	errors := req.Validate()
	if len(errors) != 1 || errors[0].Field != "title" {
		t.Errorf("expected title error, got %v", errors)
	}
}

func TestCampaignFilter_Validate_InvertedGoalRange(t *testing.T) {
	t.Parallel()

	f := &CampaignFilter{MinFundraisingGoal: intPtr(5000), MaxFundraisingGoal: intPtr(1000)}

	errors := f.Validate()
	if len(errors) != 1 {
		t.Fatalf("expected one error, got %v", errors)
	}
	if errors[0].Message != "Min fundraising goal cannot be greater than max fundraising goal." {
		t.Errorf("unexpected message %q", errors[0].Message)
	}
}

func TestCampaignFilter_Validate_EqualBoundsAllowed(t *testing.T) {
	t.Parallel()

	f := &CampaignFilter{MinFundraisingGoal: intPtr(5000), MaxFundraisingGoal: intPtr(5000)}
	if errors := f.Validate(); len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}

	var nilFilter *CampaignFilter
	if errors := nilFilter.Validate(); errors != nil {
		t.Errorf("nil filter should validate, got %v", errors)
	}
}

// ============================================================================
// Donation Request Tests
// ============================================================================

func TestCreateDonationRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	ts := time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC)
	req := &CreateDonationRequest{Amount: 100, CampaignID: testUUID, TimeStamp: &ts}

	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestCreateDonationRequest_Validate_AmountMustBePositive(t *testing.T) {
	t.Parallel()

	for _, amount := range []int{0, -5} {
		req := &CreateDonationRequest{Amount: amount, CampaignID: testUUID}
		errors := req.Validate()
		if len(errors) != 1 || errors[0].Field != "amount" {
			t.Errorf("amount %d: expected amount error, got %v", amount, errors)
		}
	}
}

func TestCreateDonationRequest_Validate_MissingCampaign(t *testing.T) {
	t.Parallel()

	req := &CreateDonationRequest{Amount: 10}

	errors := req.Validate()
	if len(errors) != 1 || errors[0].Field != "campaign_id" {
		t.Errorf("expected campaign_id error, got %v", errors)
	}
}

func TestCreateDonationRequest_Validate_ZeroTimestamp(t *testing.T) {
	t.Parallel()

	req := &CreateDonationRequest{Amount: 10, CampaignID: testUUID, TimeStamp: &time.Time{}}

	if !hasFieldError(req.Validate(), "timestamp") {
		t.Error("expected timestamp error for zero time")
	}
}

func TestDonationFilter_Validate(t *testing.T) {
	t.Parallel()

	jan1 := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	jan3 := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter DonationFilter
		field  string
	}{
		{"valid", DonationFilter{MinAmount: intPtr(10), MaxAmount: intPtr(100), StartDate: &jan1, EndDate: &jan3}, ""},
		{"inverted_amount", DonationFilter{MinAmount: intPtr(100), MaxAmount: intPtr(10)}, "amount"},
		{"inverted_dates", DonationFilter{StartDate: &jan3, EndDate: &jan1}, "start_date"},
		{"same_day", DonationFilter{StartDate: &jan1, EndDate: &jan1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := tt.filter.Validate()
			if tt.field == "" {
				if len(errors) > 0 {
					t.Errorf("expected no errors, got %v", errors)
				}
				return
			}
			if !hasFieldError(errors, tt.field) {
				t.Errorf("expected %s error, got %v", tt.field, errors)
			}
		})
	}
}

func TestDonationFilter_Validate_DateMessage(t *testing.T) {
	t.Parallel()

	jan1 := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	jan3 := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	f := &DonationFilter{StartDate: &jan3, EndDate: &jan1}

	errors := f.Validate()
	if len(errors) != 1 || errors[0].Message != "Start date cannot be after end date." {
		t.Errorf("unexpected errors %v", errors)
	}
}

func TestDonationFilter_EndBound_CoversWholeDay(t *testing.T) {
	t.Parallel()

	end := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	f := &DonationFilter{EndDate: &end}

	bound, ok := f.EndBound()
	if !ok {
		t.Fatal("expected an end bound")
	}
	if want := time.Date(2022, 1, 4, 0, 0, 0, 0, time.UTC); !bound.Equal(want) {
		t.Errorf("EndBound() = %v, want %v", bound, want)
	}

	// 2022-01-03T14:00Z must be inside the range
	donated := time.Date(2022, 1, 3, 14, 0, 0, 0, time.UTC)
	if donated.After(bound) {
		t.Errorf("donation on the end date should be included")
	}

	if _, ok := (&DonationFilter{}).EndBound(); ok {
		t.Error("expected no bound without EndDate")
	}
}

func TestDonationFilter_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(&DonationFilter{}).IsEmpty() {
		t.Error("zero filter should be empty")
	}
	if (&DonationFilter{MinAmount: intPtr(1)}).IsEmpty() {
		t.Error("filter with min amount should not be empty")
	}
}

// ============================================================================
// DonationProgress Tests
// ============================================================================

func TestNewDonationProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int
		goal  int
		want  float64
	}{
		{"partial", 300, 10000, 3.0},
		{"no_donations", 0, 5000, 0},
		{"exactly_met", 5000, 5000, 100},
		{"exceeded", 7500, 5000, 150},
		{"zero_goal", 250, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewDonationProgress(testUUID, tt.total, tt.goal)
			if p.ProgressPercentage != tt.want {
				t.Errorf("ProgressPercentage = %v, want %v", p.ProgressPercentage, tt.want)
			}
			if p.TotalDonations != tt.total || p.FundraisingGoal != tt.goal || p.CampaignID != testUUID {
				t.Errorf("unexpected progress %+v", p)
			}
		})
	}
}
