package repository

import (
	"context"

	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/store"
)

// UserRepository provides access to user accounts.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Create(ctx context.Context, user models.User) error
	Update(ctx context.Context, username string, mutate func(user *models.User) error) (models.User, error)
	ExistsWithRole(ctx context.Context, role models.Role) (bool, error)
}

type userRepository struct {
	users *store.Collection[models.User]
}

// NewUserRepository constructs a user repository.
func NewUserRepository(users *store.Collection[models.User]) UserRepository {
	return &userRepository{users: users}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	return r.users.Load(ctx)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	users, err := r.users.Load(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, user := range users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *userRepository) Create(ctx context.Context, user models.User) error {
	return r.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		for _, existing := range users {
			if existing.Username == user.Username {
				return nil, ErrDuplicate
			}
		}
		return append(users, user), nil
	})
}

func (r *userRepository) Update(ctx context.Context, username string, mutate func(user *models.User) error) (models.User, error) {
	var updated models.User
	err := r.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].Username != username {
				continue
			}
			if err := mutate(&users[i]); err != nil {
				return nil, err
			}
			updated = users[i]
			return users, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return models.User{}, err
	}
	return updated, nil
}

func (r *userRepository) ExistsWithRole(ctx context.Context, role models.Role) (bool, error) {
	users, err := r.users.Load(ctx)
	if err != nil {
		return false, err
	}
	for _, user := range users {
		if user.Role == role {
			return true, nil
		}
	}
	return false, nil
}
