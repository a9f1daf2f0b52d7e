package repository

import (
	"context"

	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/store"
)

// SignupRepository provides access to activity signups.
type SignupRepository interface {
	List(ctx context.Context) ([]models.Signup, error)
	ListByUsername(ctx context.Context, username string) ([]models.Signup, error)
	ListByActivity(ctx context.Context, activityID int) ([]models.Signup, error)
	Create(ctx context.Context, signup models.Signup) error
}

type signupRepository struct {
	signups *store.Collection[models.Signup]
}

// NewSignupRepository constructs a signup repository.
func NewSignupRepository(signups *store.Collection[models.Signup]) SignupRepository {
	return &signupRepository{signups: signups}
}

func (r *signupRepository) List(ctx context.Context) ([]models.Signup, error) {
	return r.signups.Load(ctx)
}

func (r *signupRepository) ListByUsername(ctx context.Context, username string) ([]models.Signup, error) {
	return r.filter(ctx, func(s models.Signup) bool { return s.Username == username })
}

func (r *signupRepository) ListByActivity(ctx context.Context, activityID int) ([]models.Signup, error) {
	return r.filter(ctx, func(s models.Signup) bool { return s.ActivityID == activityID })
}

// Create rejects a second signup for the same pair with ErrDuplicate and
// leaves the collection untouched.
func (r *signupRepository) Create(ctx context.Context, signup models.Signup) error {
	return r.signups.Update(ctx, func(signups []models.Signup) ([]models.Signup, error) {
		for _, existing := range signups {
			if existing.Matches(signup.Username, signup.ActivityID) {
				return nil, ErrDuplicate
			}
		}
		return append(signups, signup), nil
	})
}

func (r *signupRepository) filter(ctx context.Context, keep func(models.Signup) bool) ([]models.Signup, error) {
	signups, err := r.signups.Load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Signup, 0)
	for _, signup := range signups {
		if keep(signup) {
			result = append(result, signup)
		}
	}
	return result, nil
}
