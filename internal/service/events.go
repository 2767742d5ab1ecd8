package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/tesfafund/api/internal/model"
)

// EventType represents the type of event
type EventType string

const (
	// Campaign events
	EventDonationReceived EventType = "donation.received"
	EventCampaignDeleted  EventType = "campaign.deleted"

	// System events
	EventHeartbeat EventType = "heartbeat"
)

// DefaultHeartbeatInterval keeps idle streams open through proxies
const DefaultHeartbeatInterval = 30 * time.Second

// Event represents a server-sent event
type Event struct {
	Type       EventType   `json:"type"`
	Data       interface{} `json:"data"`
	CampaignID string      `json:"-"` // Used for routing, not sent to client
}

// Format returns the SSE formatted string
func (e *Event) Format() string {
	data, _ := json.Marshal(e.Data)
	return "event: " + string(e.Type) + "\ndata: " + string(data) + "\n\n"
}

// EventPublisher receives campaign events from the services
type EventPublisher interface {
	Publish(event *Event)
}

// DonationReceived is the payload of EventDonationReceived. Progress is
// omitted when it could not be computed.
type DonationReceived struct {
	Donation *model.Donation         `json:"donation"`
	Progress *model.DonationProgress `json:"progress,omitempty"`
}

// NewDonationEvent creates the event announcing a recorded donation
func NewDonationEvent(donation *model.Donation, progress *model.DonationProgress) *Event {
	return &Event{
		Type:       EventDonationReceived,
		CampaignID: donation.CampaignID,
		Data:       DonationReceived{Donation: donation, Progress: progress},
	}
}

// NewCampaignDeletedEvent creates the event sent when a campaign is removed
func NewCampaignDeletedEvent(campaignID string) *Event {
	return &Event{
		Type:       EventCampaignDeleted,
		CampaignID: campaignID,
		Data:       map[string]string{"campaign_id": campaignID},
	}
}

// Subscriber represents a connected SSE client
type Subscriber struct {
	ID         string
	CampaignID string
	Events     chan *Event
	Done       chan struct{}
}

// EventHub fans campaign events out to SSE subscribers. Slow subscribers
// miss events rather than block publishers.
type EventHub struct {
	mu          sync.RWMutex
	subscribers map[string]map[string]*Subscriber // campaignID -> subscriberID -> subscriber
	heartbeat   *time.Ticker
	done        chan struct{}
	closeOnce   sync.Once
}

// NewEventHub creates an event hub sending heartbeats every interval
// (DefaultHeartbeatInterval when zero).
func NewEventHub(interval time.Duration) *EventHub {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	hub := &EventHub{
		subscribers: make(map[string]map[string]*Subscriber),
		heartbeat:   time.NewTicker(interval),
		done:        make(chan struct{}),
	}
	go hub.sendHeartbeats()
	return hub
}

// Subscribe adds a new subscriber for a campaign
func (h *EventHub) Subscribe(campaignID, subscriberID string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscriber{
		ID:         subscriberID,
		CampaignID: campaignID,
		Events:     make(chan *Event, 100),
		Done:       make(chan struct{}),
	}

	if h.subscribers[campaignID] == nil {
		h.subscribers[campaignID] = make(map[string]*Subscriber)
	}
	h.subscribers[campaignID][subscriberID] = sub

	return sub
}

// Unsubscribe removes a subscriber
func (h *EventHub) Unsubscribe(campaignID, subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if campaignSubs, ok := h.subscribers[campaignID]; ok {
		if sub, ok := campaignSubs[subscriberID]; ok {
			close(sub.Done)
			close(sub.Events)
			delete(campaignSubs, subscriberID)
		}
		if len(campaignSubs) == 0 {
			delete(h.subscribers, campaignID)
		}
	}
}

// Publish sends an event to all subscribers of its campaign
func (h *EventHub) Publish(event *Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers[event.CampaignID] {
		select {
		case sub.Events <- event:
		default:
			// Buffer full, skip this subscriber
		}
	}
}

func (h *EventHub) sendHeartbeats() {
	for {
		select {
		case <-h.heartbeat.C:
			h.mu.RLock()
			data := map[string]string{"timestamp": time.Now().UTC().Format(time.RFC3339)}
			for campaignID, campaignSubs := range h.subscribers {
				event := &Event{Type: EventHeartbeat, CampaignID: campaignID, Data: data}
				for _, sub := range campaignSubs {
					select {
					case sub.Events <- event:
					default:
					}
				}
			}
			h.mu.RUnlock()
		case <-h.done:
			return
		}
	}
}

// Close stops the heartbeat and disconnects every subscriber
func (h *EventHub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.heartbeat.Stop()

		h.mu.Lock()
		defer h.mu.Unlock()

		for campaignID, campaignSubs := range h.subscribers {
			for _, sub := range campaignSubs {
				close(sub.Done)
				close(sub.Events)
			}
			delete(h.subscribers, campaignID)
		}
	})
}

// SubscriberCount returns the number of subscribers for a campaign
func (h *EventHub) SubscriberCount(campaignID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[campaignID])
}
