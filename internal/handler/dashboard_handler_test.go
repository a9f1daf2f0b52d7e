package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/models"
)

func TestDashboardHandler_RequiresStaff(t *testing.T) {
	srv := newTestServer(t)
	srv.seedSchool(t)

	resp := srv.do(t, http.MethodGet, "/api/v1/dashboard", srv.tokenFor(t, "ana"), nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDashboardHandler_Summary(t *testing.T) {
	srv := newTestServer(t)
	srv.seedSchool(t)
	require.NoError(t, srv.store.Feedback.Save(t.Context(), []models.Feedback{
		{Username: "ana", ActivityID: 1, Comments: "Fun", Rating: 4},
	}))

	resp := srv.do(t, http.MethodGet, "/api/v1/dashboard", srv.tokenFor(t, "mrs.lee"), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary dto.DashboardResponse
	decodeEnvelope(t, resp, &summary)
	require.Len(t, summary.Feedback, 1)
	require.Equal(t, "Chess", summary.Feedback[0].ActivityName)
	require.Len(t, summary.Users, 4)
	require.Equal(t, map[int]string{1: "Chess", 2: "Robotics"}, summary.ActivityNames)
	require.Equal(t, dto.ChartData{Labels: []string{"Chess"}, Data: []int{1}}, summary.AttendanceChart)
}

func TestDashboardContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("testdata", "dashboard.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	srv := newTestServer(t)
	srv.seedSchool(t)
	require.NoError(t, srv.store.Feedback.Save(t.Context(), []models.Feedback{
		{Username: "ben", ActivityID: 2, Comments: "", Rating: 5},
		{Username: "ben", ActivityID: 8, Comments: "old club", Rating: 2},
	}))

	resp := srv.do(t, http.MethodGet, "/api/v1/dashboard", srv.tokenFor(t, "root"), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp, nil)
	require.True(t, envelope.Success)

	var payload interface{}
	decoder := json.NewDecoder(bytes.NewReader(envelope.Data))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(&payload))
	require.NoError(t, schema.Validate(payload))
}
