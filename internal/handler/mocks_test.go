package handler

import (
	"context"
	"net/http"

	"github.com/tesfafund/api/internal/model"
)

// ============================================================================
// Mock Services
// ============================================================================

type mockRecipientStore struct {
	createFunc func(ctx context.Context, req *model.CreateRecipientRequest) (*model.Recipient, error)
	getFunc    func(ctx context.Context, id string) (*model.Recipient, error)
	updateFunc func(ctx context.Context, id string, req *model.UpdateRecipientRequest) (*model.Recipient, error)
	deleteFunc func(ctx context.Context, id string) error
	listFunc   func(ctx context.Context, filter *model.RecipientFilter) ([]*model.Recipient, error)
}

func (m *mockRecipientStore) CreateRecipient(ctx context.Context, req *model.CreateRecipientRequest) (*model.Recipient, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockRecipientStore) GetRecipientByID(ctx context.Context, id string) (*model.Recipient, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRecipientStore) UpdateRecipient(ctx context.Context, id string, req *model.UpdateRecipientRequest) (*model.Recipient, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *mockRecipientStore) DeleteRecipient(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockRecipientStore) ListRecipients(ctx context.Context, filter *model.RecipientFilter) ([]*model.Recipient, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

type mockCampaignStore struct {
	createFunc   func(ctx context.Context, req *model.CreateCampaignRequest) (*model.Campaign, error)
	getFunc      func(ctx context.Context, id string) (*model.Campaign, error)
	updateFunc   func(ctx context.Context, id string, req *model.UpdateCampaignRequest) (*model.Campaign, error)
	deleteFunc   func(ctx context.Context, id string) (bool, error)
	listFunc     func(ctx context.Context, filter *model.CampaignFilter) ([]*model.Campaign, error)
	progressFunc func(ctx context.Context, id string) (*model.DonationProgress, error)
}

func (m *mockCampaignStore) CreateCampaign(ctx context.Context, req *model.CreateCampaignRequest) (*model.Campaign, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockCampaignStore) GetCampaignByID(ctx context.Context, id string) (*model.Campaign, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCampaignStore) UpdateCampaign(ctx context.Context, id string, req *model.UpdateCampaignRequest) (*model.Campaign, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *mockCampaignStore) DeleteCampaign(ctx context.Context, id string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return true, nil
}

func (m *mockCampaignStore) ListCampaigns(ctx context.Context, filter *model.CampaignFilter) ([]*model.Campaign, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockCampaignStore) GetDonationProgress(ctx context.Context, id string) (*model.DonationProgress, error) {
	if m.progressFunc != nil {
		return m.progressFunc(ctx, id)
	}
	return nil, nil
}

type mockDonationStore struct {
	createFunc func(ctx context.Context, req *model.CreateDonationRequest) (*model.Donation, error)
	getFunc    func(ctx context.Context, id string) (*model.Donation, error)
	listFunc   func(ctx context.Context, filter *model.DonationFilter) ([]*model.Donation, error)
}

func (m *mockDonationStore) CreateDonation(ctx context.Context, req *model.CreateDonationRequest) (*model.Donation, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockDonationStore) GetDonationByID(ctx context.Context, id string) (*model.Donation, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDonationStore) ListDonations(ctx context.Context, filter *model.DonationFilter) ([]*model.Donation, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

// ============================================================================
// Router Setup
// ============================================================================

const (
	recipientID = "0b6f9e57-8a44-4c1e-9d3a-5f2b7c8e1a90"
	campaignID  = "7d2e4c11-0f3a-4b6d-8e9f-1a2b3c4d5e6f"
	donationID  = "c4a1e2b3-9f8d-4e7c-a6b5-d4c3b2a1f0e9"
)

func newTestRouter(recipients *mockRecipientStore, campaigns *mockCampaignStore, donations *mockDonationStore) http.Handler {
	if recipients == nil {
		recipients = &mockRecipientStore{}
	}
	if campaigns == nil {
		campaigns = &mockCampaignStore{}
	}
	if donations == nil {
		donations = &mockDonationStore{}
	}
	return NewRouter(Handlers{
		Health:     NewHealthHandler(&mockPinger{}),
		Recipients: NewRecipientHandler(recipients),
		Campaigns:  NewCampaignHandler(campaigns, campaigns),
		Donations:  NewDonationHandler(donations),
	})
}
