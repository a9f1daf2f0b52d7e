package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/gema-activities-api/internal/config"
	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/handler"
	"github.com/noah-isme/gema-activities-api/internal/middleware"
	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/realtime"
	"github.com/noah-isme/gema-activities-api/internal/repository"
	"github.com/noah-isme/gema-activities-api/internal/router"
	"github.com/noah-isme/gema-activities-api/internal/service"
	"github.com/noah-isme/gema-activities-api/internal/store"
	"github.com/noah-isme/gema-activities-api/pkg/token"
)

type apiEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
}

type testServer struct {
	app    *fiber.App
	store  *store.Store
	tokens *token.Manager
	hub    *realtime.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zerolog.Nop()
	s := store.New(store.NewMemoryBackend())
	repos := repository.New(s)
	tokens, err := token.NewManager("handler-test-secret", "activities-test", time.Hour)
	require.NoError(t, err)

	validate := dto.NewValidator()
	hub := realtime.NewHub(logger)

	authService := service.NewAuthService(repos.Users, service.NewBcryptHasher(bcrypt.MinCost), tokens, validate, logger)
	accountService := service.NewAccountService(repos.Users, validate, logger)
	activityService := service.NewActivityService(repos.Activities, repos.Signups, hub, validate, logger)
	attendanceService := service.NewAttendanceService(repos, hub, validate, logger)
	feedbackService := service.NewFeedbackService(repos.Activities, repos.Feedback, hub, validate, logger)
	dashboardService := service.NewDashboardService(repos, logger)
	exportService := service.NewExportService(attendanceService, logger)

	authenticate := middleware.Authenticate(tokens, authService, logger)

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, config.Config{AppName: "activities-test", AppEnv: "test", StorageDriver: config.StorageMemory}, router.Dependencies{
		AuthHandler:             handler.NewAuthHandler(authService, authenticate, middleware.RateLimit("auth", 3, time.Minute), logger),
		AccountHandler:          handler.NewAccountHandler(accountService, logger),
		ActivityHandler:         handler.NewActivityHandler(activityService, feedbackService, logger),
		AttendanceHandler:       handler.NewAttendanceHandler(attendanceService, activityService, exportService, logger),
		AttendanceStreamHandler: handler.NewAttendanceStreamHandler(attendanceService, hub, logger),
		DashboardHandler:        handler.NewDashboardHandler(dashboardService, logger),
		AdminUserHandler:        handler.NewAdminUserHandler(accountService, logger),
		Authenticate:            authenticate,
		HealthProbe: func(ctx context.Context) error {
			_, err := repos.Activities.List(ctx)
			return err
		},
	})

	return &testServer{app: app, store: s, tokens: tokens, hub: hub}
}

// seedSchool stores an admin, a teacher, two students and two activities.
// ana is signed up for Chess and marked Present; ben is signed up for both.
func (s *testServer) seedSchool(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.store.Users.Save(ctx, []models.User{
		{Username: "root", Role: models.RoleAdmin, DisplayName: "Root"},
		{Username: "mrs.lee", Role: models.RoleTeacher, DisplayName: "Mrs Lee"},
		{Username: "ana", Role: models.RoleStudent, DisplayName: "Ana", Grade: "10"},
		{Username: "ben", Role: models.RoleStudent, DisplayName: "Ben", Grade: "11"},
	}))
	require.NoError(t, s.store.Activities.Save(ctx, []models.Activity{
		{ID: 1, Name: "Chess", Description: "Board games"},
		{ID: 2, Name: "Robotics", Description: "Build robots"},
	}))
	require.NoError(t, s.store.Signups.Save(ctx, []models.Signup{
		{Username: "ana", ActivityID: 1},
		{Username: "ben", ActivityID: 1},
		{Username: "ben", ActivityID: 2},
	}))
	require.NoError(t, s.store.Attendance.Save(ctx, []models.Attendance{
		{Username: "ana", ActivityID: 1, Status: models.AttendancePresent, Timestamp: models.NewTimestamp(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))},
	}))
}

func (s *testServer) tokenFor(t *testing.T, username string) string {
	t.Helper()
	raw, _, err := s.tokens.Generate(username)
	require.NoError(t, err)
	return raw
}

func (s *testServer) do(t *testing.T, method, path, bearer string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

func decodeEnvelope(t *testing.T, resp *http.Response, data interface{}) apiEnvelope {
	t.Helper()
	var envelope apiEnvelope
	decodeResponse(t, resp, &envelope)
	if data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return envelope
}

func startFiberServer(t *testing.T, app *fiber.App) (string, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		if err := app.Listener(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Logf("fiber listener stopped: %v", err)
		}
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)

	shutdown := func() {
		_ = app.Shutdown()
		_ = listener.Close()
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	return listener.Addr().String(), shutdown
}
