package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tesfafund/api/internal/model"
	"github.com/tesfafund/api/internal/service"
)

// CampaignEvents is the event hub as seen by the HTTP layer
type CampaignEvents interface {
	Subscribe(campaignID, subscriberID string) *service.Subscriber
	Unsubscribe(campaignID, subscriberID string)
}

// EventsHandler handles SSE event streaming
type EventsHandler struct {
	hub       CampaignEvents
	campaigns CampaignStore
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub CampaignEvents, campaigns CampaignStore) *EventsHandler {
	return &EventsHandler{hub: hub, campaigns: campaigns}
}

// Stream handles GET /api/campaigns/{id}/events
// Donations to the campaign are pushed as they are recorded. The stream
// ends when the campaign is deleted.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathID(w, r)
	if !ok {
		return
	}

	campaign, err := h.campaigns.GetCampaignByID(r.Context(), campaignID)
	if err != nil {
		handleError(w, err)
		return
	}
	if campaign == nil {
		WriteError(w, model.NewNotFoundError("campaign"))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, model.NewInternalError("streaming not supported"))
		return
	}

	// Streams outlive the server's write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	subscriberID := uuid.New().String()
	sub := h.hub.Subscribe(campaign.ID, subscriberID)
	defer h.hub.Unsubscribe(campaign.ID, subscriberID)

	fmt.Fprintf(w, "event: connected\ndata: {\"subscriber_id\":%q,\"campaign_id\":%q}\n\n", subscriberID, campaign.ID)
	flusher.Flush()

	for {
		select {
		case event, ok := <-sub.Events:
			if !ok {
				return
			}
			fmt.Fprint(w, event.Format())
			flusher.Flush()
			if event.Type == service.EventCampaignDeleted {
				return
			}

		case <-sub.Done:
			return

		case <-r.Context().Done():
			return
		}
	}
}
