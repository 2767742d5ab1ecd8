package service

import (
	"context"

	"github.com/tesfafund/api/internal/model"
)

// RecipientLookup finds a recipient by id, returning (nil, nil) when absent.
type RecipientLookup interface {
	GetRecipientByID(ctx context.Context, id string) (*model.Recipient, error)
}

// CampaignLookup finds a campaign by id, returning (nil, nil) when absent.
type CampaignLookup interface {
	GetCampaignByID(ctx context.Context, id string) (*model.Campaign, error)
}

// CampaignFinder lists campaigns matching a filter.
type CampaignFinder interface {
	ListCampaigns(ctx context.Context, filter *model.CampaignFilter) ([]*model.Campaign, error)
}

// RecipientLookupFunc adapts a function to RecipientLookup.
type RecipientLookupFunc func(ctx context.Context, id string) (*model.Recipient, error)

func (f RecipientLookupFunc) GetRecipientByID(ctx context.Context, id string) (*model.Recipient, error) {
	return f(ctx, id)
}

// CampaignLookupFunc adapts a function to CampaignLookup.
type CampaignLookupFunc func(ctx context.Context, id string) (*model.Campaign, error)

func (f CampaignLookupFunc) GetCampaignByID(ctx context.Context, id string) (*model.Campaign, error) {
	return f(ctx, id)
}

// CampaignFinderFunc adapts a function to CampaignFinder.
type CampaignFinderFunc func(ctx context.Context, filter *model.CampaignFilter) ([]*model.Campaign, error)

func (f CampaignFinderFunc) ListCampaigns(ctx context.Context, filter *model.CampaignFilter) ([]*model.Campaign, error) {
	return f(ctx, filter)
}

// RecipientExists must hold before a campaign is created or updated.
func RecipientExists(ctx context.Context, recipients RecipientLookup, id string) error {
	recipient, err := recipients.GetRecipientByID(ctx, id)
	if err != nil {
		return err
	}
	if recipient == nil {
		return missingRecipient(id)
	}
	return nil
}

// CampaignExists must hold before a donation is created.
func CampaignExists(ctx context.Context, campaigns CampaignLookup, id string) error {
	campaign, err := campaigns.GetCampaignByID(ctx, id)
	if err != nil {
		return err
	}
	if campaign == nil {
		return missingCampaign(id)
	}
	return nil
}

// NoDependentCampaigns must hold before a recipient is deleted.
func NoDependentCampaigns(ctx context.Context, campaigns CampaignFinder, recipientID string) error {
	found, err := campaigns.ListCampaigns(ctx, &model.CampaignFilter{RecipientID: recipientID})
	if err != nil {
		return err
	}
	if len(found) > 0 {
		return ErrRecipientHasCampaigns
	}
	return nil
}
