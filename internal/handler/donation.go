package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tesfafund/api/internal/model"
)

// DonationStore is the donation service as seen by the HTTP layer
type DonationStore interface {
	CreateDonation(ctx context.Context, req *model.CreateDonationRequest) (*model.Donation, error)
	GetDonationByID(ctx context.Context, id string) (*model.Donation, error)
	ListDonations(ctx context.Context, filter *model.DonationFilter) ([]*model.Donation, error)
}

// DonationHandler handles donation HTTP requests. Donations are immutable,
// so there are no update or delete endpoints.
type DonationHandler struct {
	svc DonationStore
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(svc DonationStore) *DonationHandler {
	return &DonationHandler{svc: svc}
}

// Routes registers the donation endpoints
func (h *DonationHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

func donationLinks(d *model.Donation) map[string]string {
	return map[string]string{
		"self":     "/api/donations/" + d.ID,
		"campaign": "/api/campaigns/" + d.CampaignID,
	}
}

// Create handles POST /api/donations
func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateDonationRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	donation, err := h.svc.CreateDonation(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Location", "/api/donations/"+donation.ID)
	WriteData(w, http.StatusCreated, donation, donationLinks(donation))
}

// Get handles GET /api/donations/{id}
func (h *DonationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	donation, err := h.svc.GetDonationByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if donation == nil {
		WriteError(w, model.NewNotFoundError("donation"))
		return
	}

	WriteData(w, http.StatusOK, donation, donationLinks(donation))
}

// List handles GET /api/donations
func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := &model.DonationFilter{
		CampaignID: q.id("campaign_id"),
		MinAmount:  q.int("min_amount"),
		MaxAmount:  q.int("max_amount"),
		StartDate:  q.time("start_date"),
		EndDate:    q.time("end_date"),
	}
	if pd := q.problem(); pd != nil {
		WriteError(w, pd)
		return
	}

	donations, err := h.svc.ListDonations(r.Context(), filter)
	if err != nil {
		handleError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, donations, nil)
}
