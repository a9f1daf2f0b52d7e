package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/service"
	"github.com/noah-isme/gema-activities-api/internal/utils"
)

const (
	localUsername = "username"
	localUserRole = "user_role"
)

// TokenParser turns a bearer token into the username it identifies.
type TokenParser interface {
	Parse(raw string) (string, error)
}

// IdentityResolver loads the current account for a username.
type IdentityResolver interface {
	Identify(ctx context.Context, username string) (models.User, error)
}

// Authenticate binds the caller's identity to the request. The role is read
// from the user store on every request so role changes apply immediately.
// Websocket upgrades may pass the token as the "token" query parameter.
func Authenticate(tokens TokenParser, identities IdentityResolver, logger zerolog.Logger) fiber.Handler {
	log := logger.With().Str("component", "auth_middleware").Logger()

	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		username, err := tokens.Parse(raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		user, err := identities.Identify(c.UserContext(), username)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				return utils.SendError(c, fiber.StatusUnauthorized, "account no longer exists")
			}
			log.Error().Err(err).Str("correlation_id", GetCorrelationID(c)).Msg("failed to resolve identity")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve identity")
		}

		c.Locals(localUsername, user.Username)
		c.Locals(localUserRole, string(user.Role))
		return c.Next()
	}
}

// CurrentUsername returns the authenticated username, or "" when none is bound.
func CurrentUsername(c *fiber.Ctx) string {
	if value, ok := c.Locals(localUsername).(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

// CurrentRole returns the authenticated user's role.
func CurrentRole(c *fiber.Ctx) models.Role {
	role, _ := models.ParseRole(normalizeRoleValue(c.Locals(localUserRole)))
	return role
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	const bearer = "bearer "
	authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authorization != "" {
		if len(authorization) <= len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
			return "", false
		}
		token := strings.TrimSpace(authorization[len(bearer):])
		return token, token != ""
	}

	if websocket.IsWebSocketUpgrade(c) {
		token := strings.TrimSpace(c.Query("token"))
		return token, token != ""
	}
	return "", false
}
