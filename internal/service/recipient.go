package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/model"
)

// RecipientRepository defines the interface for recipient storage
type RecipientRepository interface {
	Create(ctx context.Context, recipient *model.Recipient) error
	GetByID(ctx context.Context, id string) (*model.Recipient, error)
	Replace(ctx context.Context, recipient *model.Recipient) (int, error)
	Delete(ctx context.Context, id string) (int, error)
	List(ctx context.Context, filter *model.RecipientFilter) ([]*model.Recipient, error)
}

// RecipientService handles recipient business logic
type RecipientService struct {
	recipientRepo RecipientRepository
	campaigns     CampaignFinder
	bcryptCost    int
}

// RecipientServiceConfig holds configuration for the recipient service
type RecipientServiceConfig struct {
	RecipientRepo RecipientRepository
	// Campaigns is consulted before a delete. It can also be wired later
	// with SetCampaignFinder when the campaign service depends on this one.
	Campaigns  CampaignFinder
	BcryptCost int
}

// NewRecipientService creates a new recipient service
func NewRecipientService(cfg RecipientServiceConfig) *RecipientService {
	return &RecipientService{
		recipientRepo: cfg.RecipientRepo,
		campaigns:     cfg.Campaigns,
		bcryptCost:    cfg.BcryptCost,
	}
}

// SetCampaignFinder wires the campaign lookup used by DeleteRecipient.
func (s *RecipientService) SetCampaignFinder(campaigns CampaignFinder) {
	s.campaigns = campaigns
}

// CreateRecipient registers a new recipient
func (s *RecipientService) CreateRecipient(ctx context.Context, req *model.CreateRecipientRequest) (*model.Recipient, error) {
	if errors := req.Validate(); len(errors) > 0 {
		return nil, model.NewValidationError(errors)
	}

	recipient := &model.Recipient{
		ID:         assignID(req.ID),
		FirstName:  strings.TrimSpace(req.FirstName),
		MiddleName: req.MiddleName,
		LastName:   strings.TrimSpace(req.LastName),
		Email:      normalizeEmail(req.Email),
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		recipient.PasswordHash = &hash
	}

	if err := s.recipientRepo.Create(ctx, recipient); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, storeFailure("create recipient", err, slog.String("recipient_id", recipient.ID))
	}

	return recipient, nil
}

// GetRecipientByID returns the recipient, or (nil, nil) if there is none.
func (s *RecipientService) GetRecipientByID(ctx context.Context, id string) (*model.Recipient, error) {
	id = model.CanonicalID(id)
	if id == "" {
		return nil, nil
	}

	recipient, err := s.recipientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure("get recipient", err, slog.String("recipient_id", id))
	}
	return recipient, nil
}

// UpdateRecipient replaces a recipient's profile. The password hash only
// changes when the request carries a new password.
func (s *RecipientService) UpdateRecipient(ctx context.Context, id string, req *model.UpdateRecipientRequest) (*model.Recipient, error) {
	if errors := req.Validate(); len(errors) > 0 {
		return nil, model.NewValidationError(errors)
	}
	id = model.CanonicalID(id)
	if id == "" {
		return nil, ErrRecipientNotFound
	}

	recipient := &model.Recipient{
		ID:         id,
		FirstName:  strings.TrimSpace(req.FirstName),
		MiddleName: req.MiddleName,
		LastName:   strings.TrimSpace(req.LastName),
		Email:      normalizeEmail(req.Email),
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		recipient.PasswordHash = &hash
	}

	changed, err := s.recipientRepo.Replace(ctx, recipient)
	if err != nil {
		return nil, storeFailure("update recipient", err, slog.String("recipient_id", id))
	}
	if changed == 0 {
		return nil, ErrRecipientNotFound
	}

	return recipient, nil
}

// DeleteRecipient removes a recipient that no campaign references.
func (s *RecipientService) DeleteRecipient(ctx context.Context, id string) error {
	id = model.CanonicalID(id)
	if id == "" {
		return ErrRecipientNotFound
	}
	if s.campaigns == nil {
		return errors.New("recipient service: campaign finder not configured")
	}

	if err := NoDependentCampaigns(ctx, s.campaigns, id); err != nil {
		return err
	}

	removed, err := s.recipientRepo.Delete(ctx, id)
	if err != nil {
		return storeFailure("delete recipient", err, slog.String("recipient_id", id))
	}
	if removed == 0 {
		return ErrRecipientNotFound
	}
	return nil
}

// ListRecipients returns recipients matching filter; nil returns all.
func (s *RecipientService) ListRecipients(ctx context.Context, filter *model.RecipientFilter) ([]*model.Recipient, error) {
	recipients, err := s.recipientRepo.List(ctx, filter)
	if err != nil {
		return nil, storeFailure("list recipients", err)
	}
	return recipients, nil
}
