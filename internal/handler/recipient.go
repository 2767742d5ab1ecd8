package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tesfafund/api/internal/model"
)

// RecipientStore is the recipient service as seen by the HTTP layer
type RecipientStore interface {
	CreateRecipient(ctx context.Context, req *model.CreateRecipientRequest) (*model.Recipient, error)
	GetRecipientByID(ctx context.Context, id string) (*model.Recipient, error)
	UpdateRecipient(ctx context.Context, id string, req *model.UpdateRecipientRequest) (*model.Recipient, error)
	DeleteRecipient(ctx context.Context, id string) error
	ListRecipients(ctx context.Context, filter *model.RecipientFilter) ([]*model.Recipient, error)
}

// RecipientHandler handles recipient HTTP requests
type RecipientHandler struct {
	svc RecipientStore
}

// NewRecipientHandler creates a new recipient handler
func NewRecipientHandler(svc RecipientStore) *RecipientHandler {
	return &RecipientHandler{svc: svc}
}

// Routes registers the recipient endpoints
func (h *RecipientHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func recipientLinks(id string) map[string]string {
	return map[string]string{
		"self":      "/api/recipients/" + id,
		"campaigns": "/api/campaigns?recipient_id=" + id,
	}
}

// Create handles POST /api/recipients
func (h *RecipientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRecipientRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	recipient, err := h.svc.CreateRecipient(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Location", "/api/recipients/"+recipient.ID)
	WriteData(w, http.StatusCreated, recipient, recipientLinks(recipient.ID))
}

// Get handles GET /api/recipients/{id}
func (h *RecipientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	recipient, err := h.svc.GetRecipientByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if recipient == nil {
		WriteError(w, model.NewNotFoundError("recipient"))
		return
	}

	WriteData(w, http.StatusOK, recipient, recipientLinks(recipient.ID))
}

// Update handles PUT /api/recipients/{id}
func (h *RecipientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdateRecipientRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	recipient, err := h.svc.UpdateRecipient(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, recipient, recipientLinks(recipient.ID))
}

// Delete handles DELETE /api/recipients/{id}
func (h *RecipientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteRecipient(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	WriteNoContent(w)
}

// List handles GET /api/recipients
func (h *RecipientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := &model.RecipientFilter{
		FirstName:  q.str("first_name"),
		MiddleName: q.str("middle_name"),
		LastName:   q.str("last_name"),
		Email:      q.str("email"),
	}

	recipients, err := h.svc.ListRecipients(r.Context(), filter)
	if err != nil {
		handleError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, recipients, nil)
}
