package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/events"
	"github.com/noah-isme/gema-activities-api/internal/middleware"
	"github.com/noah-isme/gema-activities-api/internal/service"
	"github.com/noah-isme/gema-activities-api/internal/utils"
)

const (
	localStreamActivity = "stream_activity_id"
	localStreamRoster   = "stream_roster"
	localRequestCtx     = "request_ctx"

	streamWriteTimeout = 5 * time.Second
	streamPingInterval = 30 * time.Second
)

// AttendanceSubscriber hands out per-activity event feeds.
type AttendanceSubscriber interface {
	Subscribe(activityID int) (<-chan events.Event, func())
}

// StreamMessage is a frame sent over the attendance websocket.
type StreamMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// AttendanceStreamHandler pushes roster updates for one activity to staff
// over a websocket.
type AttendanceStreamHandler struct {
	attendance service.AttendanceService
	hub        AttendanceSubscriber
	logger     zerolog.Logger
	pingEvery  time.Duration
}

// NewAttendanceStreamHandler constructs the stream handler.
func NewAttendanceStreamHandler(attendance service.AttendanceService, hub AttendanceSubscriber, logger zerolog.Logger) *AttendanceStreamHandler {
	return &AttendanceStreamHandler{
		attendance: attendance,
		hub:        hub,
		logger:     logger.With().Str("component", "attendance_stream_handler").Logger(),
		pingEvery:  streamPingInterval,
	}
}

// Register binds the websocket route. It must be mounted behind Authenticate.
func (h *AttendanceStreamHandler) Register(router fiber.Router) {
	router.Get("/activities/:id/ws", middleware.StaffOnly(), h.upgrade, websocket.New(h.stream))
}

// upgrade validates the request before the protocol switch so failures are
// still answered with the regular JSON envelope.
func (h *AttendanceStreamHandler) upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	id, ok := parseActivityID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	ctx := requestContext(c)
	roster, err := h.attendance.Roster(ctx, id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load roster")
	}

	c.Locals(localStreamActivity, id)
	c.Locals(localStreamRoster, roster)
	c.Locals(localRequestCtx, context.WithoutCancel(ctx))
	return c.Next()
}

func (h *AttendanceStreamHandler) stream(conn *websocket.Conn) {
	activityID, _ := conn.Locals(localStreamActivity).(int)
	roster, _ := conn.Locals(localStreamRoster).(dto.RosterResponse)
	ctx, _ := conn.Locals(localRequestCtx).(context.Context)
	if ctx == nil {
		ctx = context.Background()
	}
	username, _ := conn.Locals("username").(string)

	log := h.logger.With().Int("activity_id", activityID).Str("username", username).Logger()

	feed, unsubscribe := h.hub.Subscribe(activityID)
	defer unsubscribe()

	if err := h.send(conn, StreamMessage{Type: "roster", Data: roster}); err != nil {
		log.Debug().Err(err).Msg("failed to send initial roster")
		return
	}
	log.Info().Msg("attendance stream connected")
	defer log.Info().Msg("attendance stream disconnected")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteTimeout)); err != nil {
				return
			}
		case event, ok := <-feed:
			if !ok {
				return
			}
			if err := h.send(conn, StreamMessage{Type: "event", Data: event}); err != nil {
				return
			}
			refreshed, err := h.attendance.Roster(ctx, activityID)
			if err != nil {
				log.Warn().Err(err).Msg("failed to refresh roster")
				continue
			}
			if err := h.send(conn, StreamMessage{Type: "roster", Data: refreshed}); err != nil {
				return
			}
		}
	}
}

func (h *AttendanceStreamHandler) send(conn *websocket.Conn, message StreamMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(message)
}
