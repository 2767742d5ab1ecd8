package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/model"
)

func newTestRecipientService(repo *mockRecipientRepo, campaigns CampaignFinder) *RecipientService {
	return NewRecipientService(RecipientServiceConfig{
		RecipientRepo: repo,
		Campaigns:     campaigns,
		BcryptCost:    bcrypt.MinCost,
	})
}

func validCreateRecipient() *model.CreateRecipientRequest {
	return &model.CreateRecipientRequest{
		FirstName: " Abebe ",
		LastName:  "Kebede",
		Email:     "  Abebe@Example.COM ",
		Password:  strPtr("correct-horse"),
	}
}

func TestCreateRecipient_NormalizesAndHashes(t *testing.T) {
	t.Parallel()

	var stored *model.Recipient
	svc := newTestRecipientService(&mockRecipientRepo{
		createFunc: func(_ context.Context, r *model.Recipient) error {
			stored = r
			return nil
		},
	}, nil)

	got, err := svc.CreateRecipient(context.Background(), validCreateRecipient())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != stored {
		t.Error("returned recipient should be the stored one")
	}
	if !model.IsValidID(got.ID) {
		t.Errorf("expected generated UUID, got %q", got.ID)
	}
	if got.FirstName != "Abebe" {
		t.Errorf("first name = %q, want trimmed", got.FirstName)
	}
	if got.Email != "abebe@example.com" {
		t.Errorf("email = %q, want lower-cased", got.Email)
	}
	if got.PasswordHash == nil {
		t.Fatal("expected password hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*got.PasswordHash), []byte("correct-horse")); err != nil {
		t.Errorf("hash does not match password: %v", err)
	}
}

func TestCreateRecipient_KeepsClientID(t *testing.T) {
	t.Parallel()

	svc := newTestRecipientService(&mockRecipientRepo{}, nil)
	req := validCreateRecipient()
	req.ID = strPtr("0B6F9E57-8A44-4C1E-9D3A-5F2B7C8E1A90")

	got, err := svc.CreateRecipient(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != testRecipientID {
		t.Errorf("id = %q, want canonical %q", got.ID, testRecipientID)
	}
}

func TestCreateRecipient_ValidationError(t *testing.T) {
	t.Parallel()

	called := false
	svc := newTestRecipientService(&mockRecipientRepo{
		createFunc: func(context.Context, *model.Recipient) error {
			called = true
			return nil
		},
	}, nil)

	_, err := svc.CreateRecipient(context.Background(), &model.CreateRecipientRequest{Email: "nope"})

	var pd *model.ProblemDetails
	if !errors.As(err, &pd) {
		t.Fatalf("expected ProblemDetails, got %v", err)
	}
	if pd.Code != model.ErrCodeValidation {
		t.Errorf("code = %d, want %d", pd.Code, model.ErrCodeValidation)
	}
	if called {
		t.Error("repository should not be called for invalid input")
	}
}

func TestCreateRecipient_Duplicate(t *testing.T) {
	t.Parallel()

	svc := newTestRecipientService(&mockRecipientRepo{
		createFunc: func(context.Context, *model.Recipient) error {
			return database.ErrDuplicate
		},
	}, nil)

	_, err := svc.CreateRecipient(context.Background(), validCreateRecipient())
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateRecipient_StoreFailureIsHidden(t *testing.T) {
	t.Parallel()

	svc := newTestRecipientService(&mockRecipientRepo{
		createFunc: func(context.Context, *model.Recipient) error {
			return errors.New("ws: connection reset by peer")
		},
	}, nil)

	_, err := svc.CreateRecipient(context.Background(), validCreateRecipient())
	if !errors.Is(err, ErrStoreFailure) {
		t.Fatalf("expected ErrStoreFailure, got %v", err)
	}
	if got := err.Error(); got != "failed to create recipient: storage operation failed" {
		t.Errorf("error text leaks driver detail: %q", got)
	}
}

func TestGetRecipientByID(t *testing.T) {
	t.Parallel()

	svc := newTestRecipientService(&mockRecipientRepo{
		getByIDFunc: func(_ context.Context, id string) (*model.Recipient, error) {
			if id == testRecipientID {
				return &model.Recipient{ID: id}, nil
			}
			return nil, nil
		},
	}, nil)

	got, err := svc.GetRecipientByID(context.Background(), testRecipientID)
	if err != nil || got == nil {
		t.Fatalf("expected recipient, got %v, %v", got, err)
	}

	got, err = svc.GetRecipientByID(context.Background(), "7d2e4c11-0f3a-4b6d-8e9f-1a2b3c4d5e6f")
	if err != nil || got != nil {
		t.Errorf("expected (nil, nil) for unknown id, got %v, %v", got, err)
	}

	got, err = svc.GetRecipientByID(context.Background(), "  ")
	if err != nil || got != nil {
		t.Errorf("expected (nil, nil) for blank id, got %v, %v", got, err)
	}
}

func TestUpdateRecipient_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestRecipientService(&mockRecipientRepo{
		replaceFunc: func(context.Context, *model.Recipient) (int, error) {
			return 0, nil
		},
	}, nil)

	_, err := svc.UpdateRecipient(context.Background(), testRecipientID, &model.UpdateRecipientRequest{
		FirstName: "Abebe",
		LastName:  "Kebede",
		Email:     "abebe@example.com",
	})
	if !errors.Is(err, ErrRecipientNotFound) {
		t.Errorf("expected ErrRecipientNotFound, got %v", err)
	}
}

func TestUpdateRecipient_KeepsHashWithoutPassword(t *testing.T) {
	t.Parallel()

	svc := newTestRecipientService(&mockRecipientRepo{
		replaceFunc: func(_ context.Context, r *model.Recipient) (int, error) {
			if r.PasswordHash != nil {
				t.Error("no password given, hash should be left to the store")
			}
			return 1, nil
		},
	}, nil)

	got, err := svc.UpdateRecipient(context.Background(), testRecipientID, &model.UpdateRecipientRequest{
		FirstName: "Abebe",
		LastName:  "Kebede",
		Email:     "abebe@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != testRecipientID {
		t.Errorf("id = %q", got.ID)
	}
}

func TestDeleteRecipient_BlockedByCampaigns(t *testing.T) {
	t.Parallel()

	deleted := false
	svc := newTestRecipientService(&mockRecipientRepo{
		deleteFunc: func(context.Context, string) (int, error) {
			deleted = true
			return 1, nil
		},
	}, CampaignFinderFunc(func(_ context.Context, f *model.CampaignFilter) ([]*model.Campaign, error) {
		if f.RecipientID != testRecipientID {
			t.Errorf("filter recipient = %q", f.RecipientID)
		}
		return []*model.Campaign{{ID: testCampaignID}}, nil
	}))

	err := svc.DeleteRecipient(context.Background(), testRecipientID)
	if !errors.Is(err, ErrRecipientHasCampaigns) {
		t.Errorf("expected ErrRecipientHasCampaigns, got %v", err)
	}
	if deleted {
		t.Error("recipient with campaigns must not be deleted")
	}
}

func TestDeleteRecipient(t *testing.T) {
	t.Parallel()

	noCampaigns := CampaignFinderFunc(func(context.Context, *model.CampaignFilter) ([]*model.Campaign, error) {
		return nil, nil
	})

	tests := []struct {
		name    string
		removed int
		wantErr error
	}{
		{"removes recipient", 1, nil},
		{"unknown recipient", 0, ErrRecipientNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestRecipientService(&mockRecipientRepo{
				deleteFunc: func(context.Context, string) (int, error) {
					return tt.removed, nil
				},
			}, noCampaigns)

			err := svc.DeleteRecipient(context.Background(), testRecipientID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeleteRecipient_FinderLateBinding(t *testing.T) {
	t.Parallel()

	svc := newTestRecipientService(&mockRecipientRepo{}, nil)
	if err := svc.DeleteRecipient(context.Background(), testRecipientID); err == nil {
		t.Fatal("expected error without a campaign finder")
	}

	svc.SetCampaignFinder(CampaignFinderFunc(func(context.Context, *model.CampaignFilter) ([]*model.Campaign, error) {
		return nil, nil
	}))
	if err := svc.DeleteRecipient(context.Background(), testRecipientID); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
