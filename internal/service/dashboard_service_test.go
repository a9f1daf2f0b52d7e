package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/models"
)

func TestDashboardServiceSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t,
		[]models.User{{Username: "S1", PasswordHash: "secret-hash", Role: models.RoleStudent}},
		[]models.Activity{{ID: 1, Name: "A1"}, {ID: 2, Name: "A2"}},
		nil,
		[]models.Attendance{
			{Username: "S1", ActivityID: 1, Status: models.AttendancePresent},
			{Username: "S2", ActivityID: 1, Status: models.AttendancePresent},
			{Username: "S1", ActivityID: 2, Status: models.AttendanceAbsent},
		},
	)
	require.NoError(t, f.repos.Feedback.Create(ctx, models.Feedback{Username: "S1", ActivityID: 5, Rating: 2}))
	svc := NewDashboardService(f.repos, zerolog.Nop())

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, dto.ChartData{Labels: []string{"A1"}, Data: []int{2}}, summary.AttendanceChart)
	require.Equal(t, map[int]string{1: "A1", 2: "A2"}, summary.ActivityNames)
	require.Len(t, summary.Attendance, 3)
	require.Equal(t, "A2", summary.Attendance[2].ActivityName)
	require.Equal(t, UnknownActivityLabel, summary.Feedback[0].ActivityName)
	require.Equal(t, []dto.UserResponse{{Username: "S1", Role: "Student"}}, summary.Users)
}

func TestDashboardServiceEmptyCollections(t *testing.T) {
	f := newFixture(t)
	summary, err := NewDashboardService(f.repos, zerolog.Nop()).Summary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary.AttendanceChart.Labels)
	require.Empty(t, summary.AttendanceChart.Labels)
	require.Empty(t, summary.Feedback)
}
