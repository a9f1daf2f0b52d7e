package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/repository"
)

// AccountService manages profiles and role assignments.
type AccountService interface {
	Profile(ctx context.Context, username string) (dto.UserResponse, error)
	UpdateProfile(ctx context.Context, username string, payload dto.UpdateProfileRequest) (dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	ChangeRole(ctx context.Context, username string, payload dto.ChangeRoleRequest) (dto.UserResponse, error)
}

type accountService struct {
	users     repository.UserRepository
	validator *validator.Validate
	sanitizer textSanitizer
	logger    zerolog.Logger
}

// NewAccountService constructs the account service.
func NewAccountService(users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) AccountService {
	return &accountService{
		users:     users,
		validator: validate,
		sanitizer: newTextSanitizer(),
		logger:    logger.With().Str("component", "account_service").Logger(),
	}
}

func (s *accountService) Profile(ctx context.Context, username string) (dto.UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return dto.UserResponse{}, mapUserError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *accountService) UpdateProfile(ctx context.Context, username string, payload dto.UpdateProfileRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	name := s.sanitizer.Clean(payload.Name)
	if name == "" {
		return dto.UserResponse{}, fmt.Errorf("name: %w", ErrEmptyAfterSanitize)
	}
	description := s.sanitizer.Clean(payload.Description)
	grade := s.sanitizer.Clean(payload.Grade)

	updated, err := s.users.Update(ctx, username, func(user *models.User) error {
		user.DisplayName = name
		user.Description = description
		user.Grade = grade
		return nil
	})
	if err != nil {
		return dto.UserResponse{}, mapUserError(err)
	}
	return dto.NewUserResponse(updated), nil
}

func (s *accountService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(users), nil
}

func (s *accountService) ChangeRole(ctx context.Context, username string, payload dto.ChangeRoleRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}
	role, ok := models.ParseRole(payload.Role)
	if !ok {
		return dto.UserResponse{}, fmt.Errorf("%w: %q", ErrInvalidRole, payload.Role)
	}

	updated, err := s.users.Update(ctx, username, func(user *models.User) error {
		user.Role = role
		return nil
	})
	if err != nil {
		return dto.UserResponse{}, mapUserError(err)
	}

	s.logger.Info().Str("username", username).Str("role", string(role)).Msg("user role changed")
	return dto.NewUserResponse(updated), nil
}

func mapUserError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
