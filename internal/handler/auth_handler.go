package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/middleware"
	"github.com/noah-isme/gema-activities-api/internal/service"
	"github.com/noah-isme/gema-activities-api/internal/utils"
)

// AuthHandler exposes registration, login and logout.
type AuthHandler struct {
	service      service.AuthService
	authenticate fiber.Handler
	limiter      fiber.Handler
	logger       zerolog.Logger
}

// NewAuthHandler constructs an auth handler. authenticate guards logout and
// limiter throttles the credential endpoints; either may be nil.
func NewAuthHandler(svc service.AuthService, authenticate, limiter fiber.Handler, logger zerolog.Logger) *AuthHandler {
	passthrough := func(c *fiber.Ctx) error { return c.Next() }
	if authenticate == nil {
		authenticate = passthrough
	}
	if limiter == nil {
		limiter = passthrough
	}
	return &AuthHandler{
		service:      svc,
		authenticate: authenticate,
		limiter:      limiter,
		logger:       logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register binds auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.limiter, h.register)
	router.Post("/login", h.limiter, h.login)
	router.Post("/logout", h.authenticate, h.logout)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := parseBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.service.Register(requestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to register user")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "registration successful", user)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := parseBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.service.Login(requestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to log in")
	}
	return utils.SendSuccess(c, "login successful", session)
}

// logout is stateless: tokens are not tracked server side, so the client
// discarding its token ends the session.
func (h *AuthHandler) logout(c *fiber.Ctx) error {
	requestLogger(h.logger, c).Info().Str("username", middleware.CurrentUsername(c)).Msg("user logged out")
	return utils.SendSuccess(c, "logged out", nil)
}
