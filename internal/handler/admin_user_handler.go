package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/middleware"
	"github.com/noah-isme/gema-activities-api/internal/service"
	"github.com/noah-isme/gema-activities-api/internal/utils"
)

// AdminUserHandler lists users and changes their roles.
type AdminUserHandler struct {
	service service.AccountService
	logger  zerolog.Logger
}

// NewAdminUserHandler constructs the admin user handler.
func NewAdminUserHandler(svc service.AccountService, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		service: svc,
		logger:  logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register binds admin user routes. Every route requires the Admin role.
func (h *AdminUserHandler) Register(router fiber.Router) {
	router.Use(middleware.AdminOnly())
	router.Get("/", h.list)
	router.Patch("/:username/role", h.changeRole)
}

func (h *AdminUserHandler) list(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(requestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list users")
	}
	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *AdminUserHandler) changeRole(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Params("username"))
	if username == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "username required")
	}

	var payload dto.ChangeRoleRequest
	if err := parseBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.service.ChangeRole(requestContext(c), username, payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update role")
	}

	requestLogger(h.logger, c).Info().
		Str("actor", middleware.CurrentUsername(c)).
		Str("username", user.Username).
		Str("role", user.Role).
		Msg("user role updated")
	return utils.SendSuccess(c, "user role updated", user)
}
