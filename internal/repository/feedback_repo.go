package repository

import (
	"context"

	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/store"
)

// FeedbackRepository provides access to activity feedback.
type FeedbackRepository interface {
	List(ctx context.Context) ([]models.Feedback, error)
	Create(ctx context.Context, feedback models.Feedback) error
}

type feedbackRepository struct {
	feedback *store.Collection[models.Feedback]
}

// NewFeedbackRepository constructs a feedback repository.
func NewFeedbackRepository(feedback *store.Collection[models.Feedback]) FeedbackRepository {
	return &feedbackRepository{feedback: feedback}
}

func (r *feedbackRepository) List(ctx context.Context) ([]models.Feedback, error) {
	return r.feedback.Load(ctx)
}

func (r *feedbackRepository) Create(ctx context.Context, feedback models.Feedback) error {
	return r.feedback.Update(ctx, func(records []models.Feedback) ([]models.Feedback, error) {
		return append(records, feedback), nil
	})
}
