// Package fixtures provides test data factories for integration testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories insert through the
// repositories and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	recipient := f.CreateRecipient(t)
//	campaign := f.CreateCampaign(t, recipient)
//	donation := f.CreateDonation(t, campaign)
package fixtures

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/model"
	"github.com/tesfafund/api/internal/repository"
)

// Factory creates test entities in the database
type Factory struct {
	recipients *repository.RecipientRepository
	campaigns  *repository.CampaignRepository
	donations  *repository.DonationRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		recipients: repository.NewRecipientRepository(db),
		campaigns:  repository.NewCampaignRepository(db),
		donations:  repository.NewDonationRepository(db),
	}
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

func shortID() string {
	return uuid.NewString()[:8]
}

// ============================================================================
// Recipient Fixtures
// ============================================================================

// RecipientOpts customizes recipient creation
type RecipientOpts struct {
	FirstName  string
	MiddleName *string
	LastName   string
	Email      string
	Password   string
}

// CreateRecipient creates a recipient with optional customizations
func (f *Factory) CreateRecipient(t *testing.T, opts ...func(*RecipientOpts)) *model.Recipient {
	t.Helper()

	suffix := shortID()
	o := &RecipientOpts{
		FirstName: "Test",
		LastName:  "Recipient " + suffix,
		Email:     fmt.Sprintf("recipient_%s@test.local", suffix),
	}
	for _, fn := range opts {
		fn(o)
	}

	rec := &model.Recipient{
		ID:         uuid.NewString(),
		FirstName:  o.FirstName,
		MiddleName: o.MiddleName,
		LastName:   o.LastName,
		Email:      o.Email,
	}
	if o.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("fixtures: failed to hash password: %v", err)
		}
		h := string(hash)
		rec.PasswordHash = &h
	}

	if err := f.recipients.Create(ctx(t), rec); err != nil {
		t.Fatalf("fixtures: failed to create recipient: %v", err)
	}
	return rec
}

// WithName sets a recipient's first and last name
func WithName(first, last string) func(*RecipientOpts) {
	return func(o *RecipientOpts) {
		o.FirstName = first
		o.LastName = last
	}
}

// WithEmail sets a recipient's email
func WithEmail(email string) func(*RecipientOpts) {
	return func(o *RecipientOpts) {
		o.Email = email
	}
}

// ============================================================================
// Campaign Fixtures
// ============================================================================

// CampaignOpts customizes campaign creation
type CampaignOpts struct {
	Title           string
	Description     string
	FundraisingGoal int
}

// CreateCampaign creates a campaign owned by recipient
func (f *Factory) CreateCampaign(t *testing.T, recipient *model.Recipient, opts ...func(*CampaignOpts)) *model.Campaign {
	t.Helper()

	o := &CampaignOpts{
		Title:           "Campaign " + shortID(),
		Description:     "Test campaign",
		FundraisingGoal: 10000,
	}
	for _, fn := range opts {
		fn(o)
	}

	c := &model.Campaign{
		ID:              uuid.NewString(),
		Title:           o.Title,
		Description:     o.Description,
		FundraisingGoal: o.FundraisingGoal,
		RecipientID:     recipient.ID,
	}
	if err := f.campaigns.Create(ctx(t), c); err != nil {
		t.Fatalf("fixtures: failed to create campaign: %v", err)
	}
	return c
}

// WithGoal sets a campaign's fundraising goal
func WithGoal(goal int) func(*CampaignOpts) {
	return func(o *CampaignOpts) {
		o.FundraisingGoal = goal
	}
}

// WithTitle sets a campaign's title
func WithTitle(title string) func(*CampaignOpts) {
	return func(o *CampaignOpts) {
		o.Title = title
	}
}

// ============================================================================
// Donation Fixtures
// ============================================================================

// DonationOpts customizes donation creation
type DonationOpts struct {
	Amount    int
	TimeStamp time.Time
}

// CreateDonation records a donation against campaign
func (f *Factory) CreateDonation(t *testing.T, campaign *model.Campaign, opts ...func(*DonationOpts)) *model.Donation {
	t.Helper()

	o := &DonationOpts{
		Amount:    100,
		TimeStamp: time.Now().UTC(),
	}
	for _, fn := range opts {
		fn(o)
	}

	d := &model.Donation{
		ID:         uuid.NewString(),
		Amount:     o.Amount,
		TimeStamp:  o.TimeStamp,
		CampaignID: campaign.ID,
	}
	if err := f.donations.Create(ctx(t), d); err != nil {
		t.Fatalf("fixtures: failed to create donation: %v", err)
	}
	return d
}

// WithAmount sets a donation's amount
func WithAmount(amount int) func(*DonationOpts) {
	return func(o *DonationOpts) {
		o.Amount = amount
	}
}

// At sets a donation's timestamp
func At(ts time.Time) func(*DonationOpts) {
	return func(o *DonationOpts) {
		o.TimeStamp = ts.UTC()
	}
}
