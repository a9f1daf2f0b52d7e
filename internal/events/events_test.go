package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, event Event) error {
	r.events = append(r.events, event)
	return r.err
}

func TestNewStampsEvent(t *testing.T) {
	event := New(ActivitySignup, 3, "ana", map[string]string{"k": "v"})
	require.NotEmpty(t, event.ID)
	require.Equal(t, ActivitySignup, event.Type)
	require.Equal(t, 3, event.ActivityID)
	require.Equal(t, "ana", event.Actor)
	require.False(t, event.OccurredAt.IsZero())
}

func TestFanoutDeliversToEveryPublisher(t *testing.T) {
	failure := errors.New("broker down")
	first := &recordingPublisher{err: failure}
	second := &recordingPublisher{}

	err := Fanout{first, nil, second}.Publish(context.Background(), New(ActivityCreated, 1, "teacher", nil))
	require.ErrorIs(t, err, failure)
	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)
}

func TestNATSPublisherSubject(t *testing.T) {
	require.Equal(t, "eca.attendance.marked", NewNATSPublisher(nil, "eca:").Subject(AttendanceMarked))
	require.Equal(t, "activities.feedback.submitted", NewNATSPublisher(nil, " ").Subject(FeedbackSubmitted))
}

func TestNATSPublisherWithoutConnectionIsNoop(t *testing.T) {
	require.NoError(t, NewNATSPublisher(nil, "eca").Publish(context.Background(), New(ActivitySignup, 1, "ana", nil)))
	require.NoError(t, NopPublisher{}.Publish(context.Background(), Event{}))
}
