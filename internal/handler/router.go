package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tesfafund/api/internal/model"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
// Nil entries are not mounted.
type Handlers struct {
	Health     *HealthHandler
	Recipients *RecipientHandler
	Campaigns  *CampaignHandler
	Donations  *DonationHandler
	Events     *EventsHandler
}

// NewRouter builds the API router with the given global middleware
func NewRouter(h Handlers, middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, model.NewRouteNotFoundError(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, model.NewMethodNotAllowedError(r.Method))
	})

	if h.Health != nil {
		r.Get("/health", h.Health.Check)
	}

	r.Route("/api", func(api chi.Router) {
		if h.Recipients != nil {
			api.Route("/recipients", h.Recipients.Routes)
		}
		if h.Campaigns != nil {
			api.Route("/campaigns", func(r chi.Router) {
				h.Campaigns.Routes(r)
				if h.Events != nil {
					r.Get("/{id}/events", h.Events.Stream)
				}
			})
		}
		if h.Donations != nil {
			api.Route("/donations", h.Donations.Routes)
		}
	})

	return r
}
