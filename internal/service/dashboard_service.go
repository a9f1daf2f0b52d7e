package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/repository"
)

// DashboardService aggregates the staff dashboard.
type DashboardService interface {
	Summary(ctx context.Context) (dto.DashboardResponse, error)
}

type dashboardService struct {
	repos  repository.Repositories
	logger zerolog.Logger
	tracer trace.Tracer
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(repos repository.Repositories, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		repos:  repos,
		logger: logger.With().Str("component", "dashboard_service").Logger(),
		tracer: otel.Tracer("github.com/noah-isme/gema-activities-api/internal/service/dashboard"),
	}
}

func (s *dashboardService) Summary(ctx context.Context) (dto.DashboardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.summary")
	defer span.End()

	feedback, err := s.repos.Feedback.List(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.DashboardResponse{}, err
	}
	attendance, err := s.repos.Attendance.List(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.DashboardResponse{}, err
	}
	users, err := s.repos.Users.List(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.DashboardResponse{}, err
	}
	activities, err := s.repos.Activities.List(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.DashboardResponse{}, err
	}

	names := activityNames(activities)
	label := func(id int) string {
		if name, ok := names[id]; ok {
			return name
		}
		return UnknownActivityLabel
	}

	response := dto.DashboardResponse{
		Feedback:      make([]dto.FeedbackResponse, 0, len(feedback)),
		Attendance:    make([]dto.AttendanceRecordResponse, 0, len(attendance)),
		Users:         dto.NewUserResponseSlice(users),
		ActivityNames: names,
		AttendanceChart: dto.ChartData{
			Labels: make([]string, 0),
			Data:   make([]int, 0),
		},
	}
	for _, entry := range feedback {
		response.Feedback = append(response.Feedback, dto.NewFeedbackResponse(entry, label(entry.ActivityID)))
	}
	for _, record := range attendance {
		item := dto.AttendanceRecordResponse{
			Username:     record.Username,
			ActivityID:   record.ActivityID,
			ActivityName: label(record.ActivityID),
			Status:       string(record.Status),
		}
		if !record.Timestamp.IsZero() {
			stamp := record.Timestamp.Time
			item.Timestamp = &stamp
		}
		response.Attendance = append(response.Attendance, item)
	}
	for _, count := range CountPresentByActivity(attendance, activities) {
		response.AttendanceChart.Labels = append(response.AttendanceChart.Labels, count.Label)
		response.AttendanceChart.Data = append(response.AttendanceChart.Data, count.Count)
	}

	span.SetAttributes(
		attribute.Int("dashboard.feedback", len(feedback)),
		attribute.Int("dashboard.attendance", len(attendance)),
		attribute.Int("dashboard.chart_labels", len(response.AttendanceChart.Labels)),
	)
	return response, nil
}
