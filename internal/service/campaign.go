package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/model"
)

// CampaignRepository defines the interface for campaign storage
type CampaignRepository interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	GetByID(ctx context.Context, id string) (*model.Campaign, error)
	Replace(ctx context.Context, campaign *model.Campaign) (int, error)
	Delete(ctx context.Context, id string) (int, error)
	List(ctx context.Context, filter *model.CampaignFilter) ([]*model.Campaign, error)
}

// CampaignService handles campaign business logic
type CampaignService struct {
	campaignRepo CampaignRepository
	recipients   RecipientLookup
	events       EventPublisher
}

// CampaignServiceConfig holds configuration for the campaign service
type CampaignServiceConfig struct {
	CampaignRepo CampaignRepository
	Recipients   RecipientLookup
	Events       EventPublisher // optional
}

// NewCampaignService creates a new campaign service
func NewCampaignService(cfg CampaignServiceConfig) *CampaignService {
	return &CampaignService{
		campaignRepo: cfg.CampaignRepo,
		recipients:   cfg.Recipients,
		events:       cfg.Events,
	}
}

// CreateCampaign opens a campaign for an existing recipient.
func (s *CampaignService) CreateCampaign(ctx context.Context, req *model.CreateCampaignRequest) (*model.Campaign, error) {
	if errors := req.Validate(); len(errors) > 0 {
		return nil, model.NewValidationError(errors)
	}

	recipientID := model.CanonicalID(req.RecipientID)
	if err := RecipientExists(ctx, s.recipients, recipientID); err != nil {
		return nil, err
	}

	campaign := &model.Campaign{
		ID:              assignID(req.ID),
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		FundraisingGoal: req.FundraisingGoal,
		RecipientID:     recipientID,
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		switch {
		case errors.Is(err, database.ErrMissingReference):
			return nil, missingRecipient(recipientID)
		case errors.Is(err, database.ErrDuplicate):
			return nil, ErrAlreadyExists
		}
		return nil, storeFailure("create campaign", err, slog.String("campaign_id", campaign.ID))
	}

	return campaign, nil
}

// GetCampaignByID returns the campaign, or (nil, nil) if there is none.
func (s *CampaignService) GetCampaignByID(ctx context.Context, id string) (*model.Campaign, error) {
	id = model.CanonicalID(id)
	if id == "" {
		return nil, nil
	}

	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure("get campaign", err, slog.String("campaign_id", id))
	}
	return campaign, nil
}

// UpdateCampaign replaces a campaign. The (possibly new) recipient must exist.
func (s *CampaignService) UpdateCampaign(ctx context.Context, id string, req *model.UpdateCampaignRequest) (*model.Campaign, error) {
	if errors := req.Validate(); len(errors) > 0 {
		return nil, model.NewValidationError(errors)
	}
	id = model.CanonicalID(id)
	if id == "" {
		return nil, ErrCampaignNotFound
	}

	recipientID := model.CanonicalID(req.RecipientID)
	if err := RecipientExists(ctx, s.recipients, recipientID); err != nil {
		return nil, err
	}

	campaign := &model.Campaign{
		ID:              id,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		FundraisingGoal: req.FundraisingGoal,
		RecipientID:     recipientID,
	}

	changed, err := s.campaignRepo.Replace(ctx, campaign)
	if err != nil {
		if errors.Is(err, database.ErrMissingReference) {
			return nil, missingRecipient(recipientID)
		}
		return nil, storeFailure("update campaign", err, slog.String("campaign_id", id))
	}
	if changed == 0 {
		return nil, ErrCampaignNotFound
	}

	return campaign, nil
}

// DeleteCampaign removes a campaign and its donations. It reports whether
// a campaign was actually removed.
func (s *CampaignService) DeleteCampaign(ctx context.Context, id string) (bool, error) {
	id = model.CanonicalID(id)
	if id == "" {
		return false, nil
	}

	removed, err := s.campaignRepo.Delete(ctx, id)
	if err != nil {
		return false, storeFailure("delete campaign", err, slog.String("campaign_id", id))
	}
	if removed == 0 {
		return false, nil
	}

	if s.events != nil {
		s.events.Publish(NewCampaignDeletedEvent(id))
	}
	return true, nil
}

// ListCampaigns returns campaigns matching filter; nil returns all.
func (s *CampaignService) ListCampaigns(ctx context.Context, filter *model.CampaignFilter) ([]*model.Campaign, error) {
	if errors := filter.Validate(); len(errors) > 0 {
		return nil, model.NewValidationError(errors)
	}
	if filter != nil && filter.RecipientID != "" {
		scoped := *filter
		scoped.RecipientID = model.CanonicalID(filter.RecipientID)
		filter = &scoped
	}

	campaigns, err := s.campaignRepo.List(ctx, filter)
	if err != nil {
		return nil, storeFailure("list campaigns", err)
	}
	return campaigns, nil
}
