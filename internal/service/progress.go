package service

import (
	"context"
	"log/slog"

	"github.com/tesfafund/api/internal/model"
)

// DonationTotals sums donations per campaign.
type DonationTotals interface {
	TotalForCampaign(ctx context.Context, campaignID string) (int, error)
}

// ProgressService computes how far a campaign is toward its goal and
// announces new donations together with the updated progress.
type ProgressService struct {
	campaigns CampaignLookup
	donations DonationTotals
	events    EventPublisher
}

// ProgressServiceConfig holds configuration for the progress service
type ProgressServiceConfig struct {
	Campaigns CampaignLookup
	Donations DonationTotals
	Events    EventPublisher // optional
}

type subscriberCounter interface {
	SubscriberCount(campaignID string) int
}

// NewProgressService creates a new progress service
func NewProgressService(cfg ProgressServiceConfig) *ProgressService {
	return &ProgressService{
		campaigns: cfg.Campaigns,
		donations: cfg.Donations,
		events:    cfg.Events,
	}
}

// GetDonationProgress returns (nil, nil) for an unknown campaign. A failure
// reading either the campaign or its total aborts with the error.
func (s *ProgressService) GetDonationProgress(ctx context.Context, campaignID string) (*model.DonationProgress, error) {
	campaign, err := s.campaigns.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, nil
	}

	total, err := s.donations.TotalForCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, err
	}

	return model.NewDonationProgress(campaign.ID, total, campaign.FundraisingGoal), nil
}

// DonationRecorded publishes a donation event carrying the campaign's new
// progress. Nothing is computed when the campaign has no listeners.
func (s *ProgressService) DonationRecorded(ctx context.Context, donation *model.Donation) {
	if s.events == nil {
		return
	}
	if counter, ok := s.events.(subscriberCounter); ok && counter.SubscriberCount(donation.CampaignID) == 0 {
		return
	}

	progress, err := s.GetDonationProgress(ctx, donation.CampaignID)
	if err != nil {
		slog.Warn("donation event sent without progress",
			slog.String("error", err.Error()),
			slog.String("campaign_id", donation.CampaignID),
		)
		progress = nil
	}

	s.events.Publish(NewDonationEvent(donation, progress))
}
