package dto

import (
	"time"

	"github.com/noah-isme/gema-activities-api/internal/models"
)

// RegisterRequest captures a self-service student registration.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,username"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
	Grade       string `json:"grade" validate:"max=32"`
}

// LoginRequest carries credentials for a token exchange.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// UpdateProfileRequest edits the caller's own profile fields.
type UpdateProfileRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
	Grade       string `json:"grade" validate:"max=32"`
}

// ChangeRoleRequest assigns a new role to a user.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UserResponse is the public view of a user; the password hash never leaves the service.
type UserResponse struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Grade       string `json:"grade"`
}

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// NewUserResponse maps a user model to its response.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		Username:    user.Username,
		Role:        string(user.Role),
		Name:        user.DisplayName,
		Description: user.Description,
		Grade:       user.Grade,
	}
}

// NewUserResponseSlice maps users to responses.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
