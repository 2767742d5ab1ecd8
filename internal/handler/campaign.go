package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tesfafund/api/internal/model"
)

// CampaignStore is the campaign service as seen by the HTTP layer
type CampaignStore interface {
	CreateCampaign(ctx context.Context, req *model.CreateCampaignRequest) (*model.Campaign, error)
	GetCampaignByID(ctx context.Context, id string) (*model.Campaign, error)
	UpdateCampaign(ctx context.Context, id string, req *model.UpdateCampaignRequest) (*model.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) (bool, error)
	ListCampaigns(ctx context.Context, filter *model.CampaignFilter) ([]*model.Campaign, error)
}

// ProgressCalculator computes donation progress for a campaign
type ProgressCalculator interface {
	GetDonationProgress(ctx context.Context, campaignID string) (*model.DonationProgress, error)
}

// CampaignHandler handles campaign HTTP requests
type CampaignHandler struct {
	svc      CampaignStore
	progress ProgressCalculator
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(svc CampaignStore, progress ProgressCalculator) *CampaignHandler {
	return &CampaignHandler{svc: svc, progress: progress}
}

// Routes registers the campaign endpoints
func (h *CampaignHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/progress", h.Progress)
}

func campaignLinks(c *model.Campaign) map[string]string {
	return map[string]string{
		"self":      "/api/campaigns/" + c.ID,
		"recipient": "/api/recipients/" + c.RecipientID,
		"progress":  "/api/campaigns/" + c.ID + "/progress",
		"donations": "/api/donations?campaign_id=" + c.ID,
	}
}

// Create handles POST /api/campaigns
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCampaignRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	campaign, err := h.svc.CreateCampaign(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Location", "/api/campaigns/"+campaign.ID)
	WriteData(w, http.StatusCreated, campaign, campaignLinks(campaign))
}

// Get handles GET /api/campaigns/{id}
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	campaign, err := h.svc.GetCampaignByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if campaign == nil {
		WriteError(w, model.NewNotFoundError("campaign"))
		return
	}

	WriteData(w, http.StatusOK, campaign, campaignLinks(campaign))
}

// Update handles PUT /api/campaigns/{id}
func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdateCampaignRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	campaign, err := h.svc.UpdateCampaign(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, campaign, campaignLinks(campaign))
}

// Delete handles DELETE /api/campaigns/{id}
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	removed, err := h.svc.DeleteCampaign(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if !removed {
		WriteError(w, model.NewNotFoundError("campaign"))
		return
	}

	WriteNoContent(w)
}

// List handles GET /api/campaigns
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := &model.CampaignFilter{
		Title:              q.str("title"),
		RecipientID:        q.id("recipient_id"),
		MinFundraisingGoal: q.int("min_fundraising_goal"),
		MaxFundraisingGoal: q.int("max_fundraising_goal"),
	}
	if pd := q.problem(); pd != nil {
		WriteError(w, pd)
		return
	}

	campaigns, err := h.svc.ListCampaigns(r.Context(), filter)
	if err != nil {
		handleError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, campaigns, nil)
}

// Progress handles GET /api/campaigns/{id}/progress
func (h *CampaignHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	progress, err := h.progress.GetDonationProgress(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if progress == nil {
		WriteError(w, model.NewNotFoundError("campaign"))
		return
	}

	WriteData(w, http.StatusOK, progress, map[string]string{
		"self":     "/api/campaigns/" + id + "/progress",
		"campaign": "/api/campaigns/" + id,
	})
}
