// Package events publishes domain events about activities and attendance.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type names a domain event.
type Type string

const (
	ActivityCreated   Type = "activity.created"
	ActivitySignup    Type = "activity.signup"
	AttendanceMarked  Type = "attendance.marked"
	FeedbackSubmitted Type = "feedback.submitted"
)

// Event is the envelope shared by every publisher.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	ActivityID int       `json:"activity_id"`
	Actor      string    `json:"actor"`
	Data       any       `json:"data,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType Type, activityID int, actor string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ActivityID: activityID,
		Actor:      actor,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Fanout delivers an event to every wrapped publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, publisher := range f {
		if publisher == nil {
			continue
		}
		if err := publisher.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
