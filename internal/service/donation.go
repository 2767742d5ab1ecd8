package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/model"
)

// DonationRepository defines the interface for donation storage
type DonationRepository interface {
	Create(ctx context.Context, donation *model.Donation) error
	GetByID(ctx context.Context, id string) (*model.Donation, error)
	List(ctx context.Context, filter *model.DonationFilter) ([]*model.Donation, error)
	SumByCampaign(ctx context.Context, campaignID string) (int, error)
}

// DonationNotifier is told about every donation after it is stored
type DonationNotifier interface {
	DonationRecorded(ctx context.Context, donation *model.Donation)
}

// DonationService handles donation business logic
type DonationService struct {
	donationRepo DonationRepository
	campaigns    CampaignLookup
	notifier     DonationNotifier
	now          func() time.Time
}

// DonationServiceConfig holds configuration for the donation service
type DonationServiceConfig struct {
	DonationRepo DonationRepository
	Campaigns    CampaignLookup
	// Notifier is optional. It can also be wired later with SetNotifier
	// when the notifier depends on this service.
	Notifier DonationNotifier
	// Now overrides the clock used to stamp donations. Defaults to time.Now.
	Now func() time.Time
}

// NewDonationService creates a new donation service
func NewDonationService(cfg DonationServiceConfig) *DonationService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &DonationService{
		donationRepo: cfg.DonationRepo,
		campaigns:    cfg.Campaigns,
		notifier:     cfg.Notifier,
		now:          now,
	}
}

// SetNotifier wires the listener told about recorded donations.
func (s *DonationService) SetNotifier(notifier DonationNotifier) {
	s.notifier = notifier
}

// CreateDonation records a donation to an existing campaign.
func (s *DonationService) CreateDonation(ctx context.Context, req *model.CreateDonationRequest) (*model.Donation, error) {
	if errors := req.Validate(); len(errors) > 0 {
		return nil, model.NewValidationError(errors)
	}

	campaignID := model.CanonicalID(req.CampaignID)
	if err := CampaignExists(ctx, s.campaigns, campaignID); err != nil {
		return nil, err
	}

	timestamp := s.now().UTC()
	if req.TimeStamp != nil {
		timestamp = req.TimeStamp.UTC()
	}

	donation := &model.Donation{
		ID:         assignID(req.ID),
		Amount:     req.Amount,
		TimeStamp:  timestamp,
		CampaignID: campaignID,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		switch {
		case errors.Is(err, database.ErrMissingReference):
			// campaign removed between the check and the write
			return nil, missingCampaign(campaignID)
		case errors.Is(err, database.ErrDuplicate):
			return nil, ErrAlreadyExists
		}
		return nil, storeFailure("create donation", err,
			slog.String("donation_id", donation.ID), slog.String("campaign_id", campaignID))
	}

	if s.notifier != nil {
		s.notifier.DonationRecorded(ctx, donation)
	}

	return donation, nil
}

// GetDonationByID returns the donation, or (nil, nil) if there is none.
func (s *DonationService) GetDonationByID(ctx context.Context, id string) (*model.Donation, error) {
	id = model.CanonicalID(id)
	if id == "" {
		return nil, nil
	}

	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure("get donation", err, slog.String("donation_id", id))
	}
	return donation, nil
}

// ListDonations returns donations matching filter; nil returns all.
func (s *DonationService) ListDonations(ctx context.Context, filter *model.DonationFilter) ([]*model.Donation, error) {
	if errors := filter.Validate(); len(errors) > 0 {
		return nil, model.NewValidationError(errors)
	}
	if filter != nil && filter.CampaignID != "" {
		scoped := *filter
		scoped.CampaignID = model.CanonicalID(filter.CampaignID)
		filter = &scoped
	}

	donations, err := s.donationRepo.List(ctx, filter)
	if err != nil {
		return nil, storeFailure("list donations", err)
	}
	return donations, nil
}

// TotalForCampaign sums the amounts donated to a campaign. An empty id or a
// campaign without donations totals 0.
func (s *DonationService) TotalForCampaign(ctx context.Context, campaignID string) (int, error) {
	campaignID = model.CanonicalID(campaignID)
	if campaignID == "" {
		return 0, nil
	}

	total, err := s.donationRepo.SumByCampaign(ctx, campaignID)
	if err != nil {
		return 0, storeFailure("sum donations", err, slog.String("campaign_id", campaignID))
	}
	return total, nil
}
