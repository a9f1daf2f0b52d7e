package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/observability"
	"github.com/noah-isme/gema-activities-api/internal/repository"
)

// TokenIssuer signs identity tokens for a username.
type TokenIssuer interface {
	Generate(username string) (string, time.Time, error)
}

// AdminSeed describes the account created when no admin exists.
type AdminSeed struct {
	Username string
	Password string
	Name     string
}

// AuthService handles registration, login and identity lookups.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
	Identify(ctx context.Context, username string) (models.User, error)
	EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error)
}

type authService struct {
	users     repository.UserRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	validator *validator.Validate
	sanitizer textSanitizer
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewAuthService constructs the auth service.
func NewAuthService(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		validator: validate,
		sanitizer: newTextSanitizer(),
		logger:    logger.With().Str("component", "auth_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/gema-activities-api/internal/service/auth"),
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error) {
	payload.Username = strings.TrimSpace(payload.Username)
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "auth.register", trace.WithAttributes(attribute.String("user.username", payload.Username)))
	defer span.End()

	name := s.sanitizer.Clean(payload.Name)
	if name == "" {
		return dto.UserResponse{}, fmt.Errorf("name: %w", ErrEmptyAfterSanitize)
	}

	hash, err := s.hasher.Hash(payload.Password)
	if err != nil {
		span.RecordError(err)
		return dto.UserResponse{}, err
	}

	user := models.User{
		Username:     payload.Username,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		DisplayName:  name,
		Description:  s.sanitizer.Clean(payload.Description),
		Grade:        s.sanitizer.Clean(payload.Grade),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return dto.UserResponse{}, ErrUsernameTaken
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "create_user_failed")
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("username", user.Username).Msg("student registered")
	return dto.NewUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	payload.Username = strings.TrimSpace(payload.Username)
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "auth.login", trace.WithAttributes(attribute.String("user.username", payload.Username)))
	defer span.End()

	user, err := s.users.GetByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			observability.AuthLogins().WithLabelValues("failure").Inc()
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		span.RecordError(err)
		return dto.AuthResponse{}, err
	}
	if !s.hasher.Verify(user.PasswordHash, payload.Password) {
		observability.AuthLogins().WithLabelValues("failure").Inc()
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.Generate(user.Username)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "issue_token_failed")
		return dto.AuthResponse{}, err
	}

	observability.AuthLogins().WithLabelValues("success").Inc()
	return dto.AuthResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Identify(ctx context.Context, username string) (models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// EnsureAdmin creates the seed admin when no user holds the Admin role. It
// reports whether an account was created. An existing account that holds the
// seed username is left untouched.
func (s *authService) EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	exists, err := s.users.ExistsWithRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	username := strings.TrimSpace(seed.Username)
	if username == "" || seed.Password == "" {
		return false, errors.New("admin seed requires username and password")
	}

	hash, err := s.hasher.Hash(seed.Password)
	if err != nil {
		return false, err
	}

	admin := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		DisplayName:  seed.Name,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Warn().Str("username", username).Msg("admin seed username belongs to an existing account; not promoting it")
			return false, nil
		}
		return false, err
	}

	s.logger.Info().Str("username", username).Msg("admin account bootstrapped")
	return true, nil
}
