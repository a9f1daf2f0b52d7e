package repository

import (
	"context"

	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/store"
)

// ActivityRepository provides access to activities.
type ActivityRepository interface {
	List(ctx context.Context) ([]models.Activity, error)
	GetByID(ctx context.Context, id int) (models.Activity, error)
	Create(ctx context.Context, name, description string) (models.Activity, error)
}

type activityRepository struct {
	activities *store.Collection[models.Activity]
}

// NewActivityRepository constructs an activity repository.
func NewActivityRepository(activities *store.Collection[models.Activity]) ActivityRepository {
	return &activityRepository{activities: activities}
}

func (r *activityRepository) List(ctx context.Context) ([]models.Activity, error) {
	return r.activities.Load(ctx)
}

func (r *activityRepository) GetByID(ctx context.Context, id int) (models.Activity, error) {
	activities, err := r.activities.Load(ctx)
	if err != nil {
		return models.Activity{}, err
	}
	for _, activity := range activities {
		if activity.ID == id {
			return activity, nil
		}
	}
	return models.Activity{}, ErrNotFound
}

// Create assigns the next id inside the collection update so concurrent
// creates never reuse an id.
func (r *activityRepository) Create(ctx context.Context, name, description string) (models.Activity, error) {
	var created models.Activity
	err := r.activities.Update(ctx, func(activities []models.Activity) ([]models.Activity, error) {
		created = models.Activity{
			ID:          models.NextActivityID(activities),
			Name:        name,
			Description: description,
		}
		return append(activities, created), nil
	})
	if err != nil {
		return models.Activity{}, err
	}
	return created, nil
}
