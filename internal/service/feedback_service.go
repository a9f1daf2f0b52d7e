package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/events"
	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/repository"
)

// FeedbackService records activity feedback.
type FeedbackService interface {
	Submit(ctx context.Context, username string, activityID int, payload dto.FeedbackRequest) (dto.FeedbackResponse, error)
}

type feedbackService struct {
	activities repository.ActivityRepository
	feedback   repository.FeedbackRepository
	publisher  events.Publisher
	validator  *validator.Validate
	sanitizer  textSanitizer
	logger     zerolog.Logger
}

// NewFeedbackService constructs the feedback service.
func NewFeedbackService(activities repository.ActivityRepository, feedback repository.FeedbackRepository, publisher events.Publisher, validate *validator.Validate, logger zerolog.Logger) FeedbackService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &feedbackService{
		activities: activities,
		feedback:   feedback,
		publisher:  publisher,
		validator:  validate,
		sanitizer:  newTextSanitizer(),
		logger:     logger.With().Str("component", "feedback_service").Logger(),
	}
}

func (s *feedbackService) Submit(ctx context.Context, username string, activityID int, payload dto.FeedbackRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return dto.FeedbackResponse{}, mapActivityError(err)
	}

	entry := models.Feedback{
		Username:   username,
		ActivityID: activityID,
		Comments:   s.sanitizer.Clean(payload.Comments),
		Rating:     payload.Rating,
	}
	if err := s.feedback.Create(ctx, entry); err != nil {
		return dto.FeedbackResponse{}, err
	}

	response := dto.NewFeedbackResponse(entry, activity.Name)
	publishEvent(ctx, s.publisher, s.logger, events.New(events.FeedbackSubmitted, activityID, username, response))
	return response, nil
}
