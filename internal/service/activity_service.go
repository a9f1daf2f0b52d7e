package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/events"
	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/observability"
	"github.com/noah-isme/gema-activities-api/internal/repository"
)

// ActivityService lists, creates and joins activities.
type ActivityService interface {
	List(ctx context.Context, username string) (dto.ActivityListResponse, error)
	Get(ctx context.Context, username string, id int) (dto.ActivityResponse, error)
	Create(ctx context.Context, actor string, payload dto.CreateActivityRequest) (dto.ActivityResponse, error)
	SignUp(ctx context.Context, username string, activityID int) (dto.SignupResponse, error)
}

type activityService struct {
	activities repository.ActivityRepository
	signups    repository.SignupRepository
	publisher  events.Publisher
	validator  *validator.Validate
	sanitizer  textSanitizer
	logger     zerolog.Logger
}

// NewActivityService constructs the activity service.
func NewActivityService(activities repository.ActivityRepository, signups repository.SignupRepository, publisher events.Publisher, validate *validator.Validate, logger zerolog.Logger) ActivityService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &activityService{
		activities: activities,
		signups:    signups,
		publisher:  publisher,
		validator:  validate,
		sanitizer:  newTextSanitizer(),
		logger:     logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) List(ctx context.Context, username string) (dto.ActivityListResponse, error) {
	activities, err := s.activities.List(ctx)
	if err != nil {
		return dto.ActivityListResponse{}, err
	}
	joined, err := s.signups.ListByUsername(ctx, username)
	if err != nil {
		return dto.ActivityListResponse{}, err
	}

	signedUp := make(map[int]struct{}, len(joined))
	ids := make([]int, 0, len(joined))
	for _, signup := range joined {
		signedUp[signup.ActivityID] = struct{}{}
		ids = append(ids, signup.ActivityID)
	}

	response := dto.ActivityListResponse{
		Activities:  make([]dto.ActivityResponse, 0, len(activities)),
		SignedUpIDs: ids,
	}
	for _, activity := range activities {
		_, ok := signedUp[activity.ID]
		response.Activities = append(response.Activities, dto.NewActivityResponse(activity, ok))
	}
	return response, nil
}

func (s *activityService) Get(ctx context.Context, username string, id int) (dto.ActivityResponse, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return dto.ActivityResponse{}, mapActivityError(err)
	}
	joined, err := s.signups.ListByUsername(ctx, username)
	if err != nil {
		return dto.ActivityResponse{}, err
	}

	signedUp := false
	for _, signup := range joined {
		if signup.ActivityID == id {
			signedUp = true
			break
		}
	}
	return dto.NewActivityResponse(activity, signedUp), nil
}

func (s *activityService) Create(ctx context.Context, actor string, payload dto.CreateActivityRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	name := s.sanitizer.Clean(payload.Name)
	if name == "" {
		return dto.ActivityResponse{}, fmt.Errorf("name: %w", ErrEmptyAfterSanitize)
	}

	activity, err := s.activities.Create(ctx, name, s.sanitizer.Clean(payload.Description))
	if err != nil {
		return dto.ActivityResponse{}, err
	}

	s.logger.Info().Int("activity_id", activity.ID).Str("actor", actor).Msg("activity created")
	publishEvent(ctx, s.publisher, s.logger, events.New(events.ActivityCreated, activity.ID, actor, dto.NewActivityResponse(activity, false)))
	return dto.NewActivityResponse(activity, false), nil
}

func (s *activityService) SignUp(ctx context.Context, username string, activityID int) (dto.SignupResponse, error) {
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return dto.SignupResponse{}, mapActivityError(err)
	}

	signup := models.Signup{Username: username, ActivityID: activityID}
	if err := s.signups.Create(ctx, signup); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			observability.ActivitySignups().WithLabelValues("duplicate").Inc()
			return dto.SignupResponse{}, ErrAlreadySignedUp
		}
		return dto.SignupResponse{}, err
	}

	observability.ActivitySignups().WithLabelValues("created").Inc()
	response := dto.SignupResponse{Username: username, ActivityID: activityID}
	publishEvent(ctx, s.publisher, s.logger, events.New(events.ActivitySignup, activityID, username, response))
	return response, nil
}

func mapActivityError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrActivityNotFound
	}
	return err
}
