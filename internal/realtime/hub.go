// Package realtime broadcasts attendance events to live roster subscribers.
package realtime

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/events"
	"github.com/noah-isme/gema-activities-api/internal/observability"
)

const subscriberBufferSize = 16

// Hub keeps per-activity subscriber channels and implements events.Publisher.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int]map[chan events.Event]struct{}
	logger      zerolog.Logger
}

// NewHub constructs an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[int]map[chan events.Event]struct{}),
		logger:      logger.With().Str("component", "attendance_hub").Logger(),
	}
}

// Subscribe registers a listener for one activity. The returned cleanup
// closes the channel and must be called exactly once.
func (h *Hub) Subscribe(activityID int) (<-chan events.Event, func()) {
	ch := make(chan events.Event, subscriberBufferSize)

	h.mu.Lock()
	if _, ok := h.subscribers[activityID]; !ok {
		h.subscribers[activityID] = make(map[chan events.Event]struct{})
	}
	h.subscribers[activityID][ch] = struct{}{}
	h.mu.Unlock()
	observability.AttendanceStreams().Inc()

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if subscribers, ok := h.subscribers[activityID]; ok {
				delete(subscribers, ch)
				if len(subscribers) == 0 {
					delete(h.subscribers, activityID)
				}
			}
			close(ch)
			observability.AttendanceStreams().Dec()
		})
	}
	return ch, cleanup
}

// Subscribers reports how many listeners are attached to an activity.
func (h *Hub) Subscribers(activityID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[activityID])
}

// Publish delivers the event to subscribers of its activity. Slow
// subscribers miss events rather than block the publisher.
func (h *Hub) Publish(_ context.Context, event events.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[event.ActivityID] {
		select {
		case ch <- event:
		default:
			h.logger.Debug().Int("activity_id", event.ActivityID).Str("event", string(event.Type)).Msg("dropping event for slow subscriber")
		}
	}
	return nil
}
