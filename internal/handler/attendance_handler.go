package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/middleware"
	"github.com/noah-isme/gema-activities-api/internal/service"
	"github.com/noah-isme/gema-activities-api/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AttendanceHandler serves attendance views, rosters, marking and export.
type AttendanceHandler struct {
	attendance service.AttendanceService
	activities service.ActivityService
	export     service.ExportService
	logger     zerolog.Logger
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(attendance service.AttendanceService, activities service.ActivityService, export service.ExportService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		attendance: attendance,
		activities: activities,
		export:     export,
		logger:     logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register binds attendance routes. Everything except the caller's own view
// is restricted to staff.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Get("/", h.view)

	router.Get("/overview", middleware.StaffOnly(), h.overview)
	router.Get("/overview/export", middleware.StaffOnly(), h.exportOverview)
	router.Get("/activities/:id", middleware.StaffOnly(), h.roster)
	router.Put("/activities/:id", middleware.StaffOnly(), h.mark)
}

// view returns the caller's own statuses for students and the activity
// picker for staff.
func (h *AttendanceHandler) view(c *fiber.Ctx) error {
	username := middleware.CurrentUsername(c)
	if username == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	role := middleware.CurrentRole(c)
	ctx := requestContext(c)
	if role.IsStaff() {
		list, err := h.activities.List(ctx, username)
		if err != nil {
			return respondError(c, h.logger, err, "failed to load activities")
		}
		return utils.SendSuccess(c, "attendance activities retrieved", dto.AttendanceViewResponse{
			Role:       string(role),
			Activities: list.Activities,
		})
	}

	records, err := h.attendance.StudentView(ctx, username)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load attendance")
	}
	return utils.SendSuccess(c, "attendance retrieved", dto.AttendanceViewResponse{
		Role:    string(role),
		Records: records,
	})
}

func (h *AttendanceHandler) overview(c *fiber.Ctx) error {
	overview, err := h.attendance.Overview(requestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to build attendance overview")
	}
	return utils.SendSuccess(c, "attendance overview retrieved", overview)
}

func (h *AttendanceHandler) exportOverview(c *fiber.Ctx) error {
	buffer, filename, err := h.export.AttendanceMatrix(requestContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to export attendance")
	}

	return utils.SendAttachment(c, xlsxContentType, filename, buffer.Bytes())
}

func (h *AttendanceHandler) roster(c *fiber.Ctx) error {
	id, ok := parseActivityID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	roster, err := h.attendance.Roster(requestContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load roster")
	}
	return utils.SendSuccess(c, "roster retrieved", roster)
}

func (h *AttendanceHandler) mark(c *fiber.Ctx) error {
	id, ok := parseActivityID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	var payload dto.MarkAttendanceRequest
	if err := parseBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.attendance.Mark(requestContext(c), middleware.CurrentUsername(c), id, payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to mark attendance")
	}
	return utils.SendSuccess(c, "attendance updated successfully", result)
}
