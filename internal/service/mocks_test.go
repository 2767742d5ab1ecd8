package service

import (
	"context"

	"github.com/tesfafund/api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockRecipientRepo struct {
	createFunc  func(ctx context.Context, recipient *model.Recipient) error
	getByIDFunc func(ctx context.Context, id string) (*model.Recipient, error)
	replaceFunc func(ctx context.Context, recipient *model.Recipient) (int, error)
	deleteFunc  func(ctx context.Context, id string) (int, error)
	listFunc    func(ctx context.Context, filter *model.RecipientFilter) ([]*model.Recipient, error)
}

func (m *mockRecipientRepo) Create(ctx context.Context, recipient *model.Recipient) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, recipient)
	}
	return nil
}

func (m *mockRecipientRepo) GetByID(ctx context.Context, id string) (*model.Recipient, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRecipientRepo) Replace(ctx context.Context, recipient *model.Recipient) (int, error) {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, recipient)
	}
	return 1, nil
}

func (m *mockRecipientRepo) Delete(ctx context.Context, id string) (int, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return 1, nil
}

func (m *mockRecipientRepo) List(ctx context.Context, filter *model.RecipientFilter) ([]*model.Recipient, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

type mockCampaignRepo struct {
	createFunc  func(ctx context.Context, campaign *model.Campaign) error
	getByIDFunc func(ctx context.Context, id string) (*model.Campaign, error)
	replaceFunc func(ctx context.Context, campaign *model.Campaign) (int, error)
	deleteFunc  func(ctx context.Context, id string) (int, error)
	listFunc    func(ctx context.Context, filter *model.CampaignFilter) ([]*model.Campaign, error)
}

func (m *mockCampaignRepo) Create(ctx context.Context, campaign *model.Campaign) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, campaign)
	}
	return nil
}

func (m *mockCampaignRepo) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCampaignRepo) Replace(ctx context.Context, campaign *model.Campaign) (int, error) {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, campaign)
	}
	return 1, nil
}

func (m *mockCampaignRepo) Delete(ctx context.Context, id string) (int, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return 1, nil
}

func (m *mockCampaignRepo) List(ctx context.Context, filter *model.CampaignFilter) ([]*model.Campaign, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

type mockDonationRepo struct {
	createFunc  func(ctx context.Context, donation *model.Donation) error
	getByIDFunc func(ctx context.Context, id string) (*model.Donation, error)
	listFunc    func(ctx context.Context, filter *model.DonationFilter) ([]*model.Donation, error)
	sumFunc     func(ctx context.Context, campaignID string) (int, error)
}

func (m *mockDonationRepo) Create(ctx context.Context, donation *model.Donation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, donation)
	}
	return nil
}

func (m *mockDonationRepo) GetByID(ctx context.Context, id string) (*model.Donation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDonationRepo) List(ctx context.Context, filter *model.DonationFilter) ([]*model.Donation, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockDonationRepo) SumByCampaign(ctx context.Context, campaignID string) (int, error) {
	if m.sumFunc != nil {
		return m.sumFunc(ctx, campaignID)
	}
	return 0, nil
}

// ============================================================================
// Lookups
// ============================================================================

const (
	testRecipientID = "0b6f9e57-8a44-4c1e-9d3a-5f2b7c8e1a90"
	testCampaignID  = "7d2e4c11-0f3a-4b6d-8e9f-1a2b3c4d5e6f"
	testDonationID  = "c4a1e2b3-9f8d-4e7c-a6b5-d4c3b2a1f0e9"
)

func knownRecipient() RecipientLookupFunc {
	return func(_ context.Context, id string) (*model.Recipient, error) {
		return &model.Recipient{ID: id}, nil
	}
}

func noRecipient() RecipientLookupFunc {
	return func(context.Context, string) (*model.Recipient, error) {
		return nil, nil
	}
}

func knownCampaign(goal int) CampaignLookupFunc {
	return func(_ context.Context, id string) (*model.Campaign, error) {
		return &model.Campaign{ID: id, FundraisingGoal: goal, RecipientID: testRecipientID}, nil
	}
}

func noCampaign() CampaignLookupFunc {
	return func(context.Context, string) (*model.Campaign, error) {
		return nil, nil
	}
}

func strPtr(s string) *string { return &s }
