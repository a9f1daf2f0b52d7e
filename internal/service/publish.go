package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/events"
)

// publishEvent delivers a domain event. Delivery failures are logged and never
// fail the request that produced the event.
func publishEvent(ctx context.Context, publisher events.Publisher, logger zerolog.Logger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn().Err(err).Str("event", string(event.Type)).Int("activity_id", event.ActivityID).Msg("failed to publish event")
	}
}
