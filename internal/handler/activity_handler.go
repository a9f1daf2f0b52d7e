package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/middleware"
	"github.com/noah-isme/gema-activities-api/internal/service"
	"github.com/noah-isme/gema-activities-api/internal/utils"
)

// ActivityHandler serves activity browsing, creation, signup and feedback.
type ActivityHandler struct {
	activities service.ActivityService
	feedback   service.FeedbackService
	logger     zerolog.Logger
}

// NewActivityHandler constructs an activity handler.
func NewActivityHandler(activities service.ActivityService, feedback service.FeedbackService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		activities: activities,
		feedback:   feedback,
		logger:     logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register binds activity routes.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/", middleware.StaffOnly(), h.create)
	router.Get("/:id", h.get)
	router.Post("/:id/signup", h.signUp)
	router.Post("/:id/feedback", h.submitFeedback)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	response, err := h.activities.List(requestContext(c), middleware.CurrentUsername(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list activities")
	}
	return utils.SendSuccess(c, "activities retrieved", response)
}

func (h *ActivityHandler) get(c *fiber.Ctx) error {
	id, ok := parseActivityID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	activity, err := h.activities.Get(requestContext(c), middleware.CurrentUsername(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load activity")
	}
	return utils.SendSuccess(c, "activity retrieved", activity)
}

func (h *ActivityHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateActivityRequest
	if err := parseBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	activity, err := h.activities.Create(requestContext(c), middleware.CurrentUsername(c), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create activity")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity created successfully", activity)
}

func (h *ActivityHandler) signUp(c *fiber.Ctx) error {
	id, ok := parseActivityID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	signup, err := h.activities.SignUp(requestContext(c), middleware.CurrentUsername(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to sign up")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "signed up for the activity", signup)
}

func (h *ActivityHandler) submitFeedback(c *fiber.Ctx) error {
	id, ok := parseActivityID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	var payload dto.FeedbackRequest
	if err := parseBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	feedback, err := h.feedback.Submit(requestContext(c), middleware.CurrentUsername(c), id, payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to submit feedback")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "thank you for your feedback", feedback)
}
