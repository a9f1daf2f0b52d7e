package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/middleware"
	"github.com/noah-isme/gema-activities-api/internal/service"
	"github.com/noah-isme/gema-activities-api/internal/utils"
)

// AccountHandler lets users read and edit their own profile.
type AccountHandler struct {
	service service.AccountService
	logger  zerolog.Logger
}

// NewAccountHandler constructs an account handler.
func NewAccountHandler(svc service.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		service: svc,
		logger:  logger.With().Str("component", "account_handler").Logger(),
	}
}

// Register binds account routes.
func (h *AccountHandler) Register(router fiber.Router) {
	router.Get("/", h.profile)
	router.Put("/", h.update)
}

func (h *AccountHandler) profile(c *fiber.Ctx) error {
	username := middleware.CurrentUsername(c)
	if username == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	user, err := h.service.Profile(requestContext(c), username)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load account")
	}
	return utils.SendSuccess(c, "account retrieved", user)
}

func (h *AccountHandler) update(c *fiber.Ctx) error {
	username := middleware.CurrentUsername(c)
	if username == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.UpdateProfileRequest
	if err := parseBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.service.UpdateProfile(requestContext(c), username, payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update account")
	}
	return utils.SendSuccess(c, "account details updated", user)
}
