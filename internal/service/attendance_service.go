package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/events"
	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/observability"
	"github.com/noah-isme/gema-activities-api/internal/repository"
)

const unknownStudentName = "Unknown"

// AttendanceService reads and marks attendance.
type AttendanceService interface {
	StudentView(ctx context.Context, username string) ([]dto.StudentAttendanceEntry, error)
	Overview(ctx context.Context) (dto.AttendanceOverviewResponse, error)
	Roster(ctx context.Context, activityID int) (dto.RosterResponse, error)
	Mark(ctx context.Context, actor string, activityID int, payload dto.MarkAttendanceRequest) (dto.MarkAttendanceResponse, error)
}

type attendanceService struct {
	repos     repository.Repositories
	publisher events.Publisher
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repos repository.Repositories, publisher events.Publisher, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &attendanceService{
		repos:     repos,
		publisher: publisher,
		validator: validate,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/gema-activities-api/internal/service/attendance"),
		now:       time.Now,
	}
}

// StudentView lists the caller's signed-up activities with their status.
// Signups pointing at a missing activity are skipped.
func (s *attendanceService) StudentView(ctx context.Context, username string) ([]dto.StudentAttendanceEntry, error) {
	activities, err := s.repos.Activities.List(ctx)
	if err != nil {
		return nil, err
	}
	signups, err := s.repos.Signups.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	records, err := s.repos.Attendance.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	names := activityNames(activities)
	entries := make([]dto.StudentAttendanceEntry, 0, len(signups))
	for _, signup := range signups {
		name, ok := names[signup.ActivityID]
		if !ok {
			continue
		}
		entries = append(entries, dto.StudentAttendanceEntry{
			ActivityID:   signup.ActivityID,
			ActivityName: name,
			Status:       string(ResolveStatus(username, signup.ActivityID, records, signups)),
		})
	}
	return entries, nil
}

// Overview builds the matrix of every student against every activity.
func (s *attendanceService) Overview(ctx context.Context) (dto.AttendanceOverviewResponse, error) {
	ctx, span := s.tracer.Start(ctx, "attendance.overview")
	defer span.End()

	users, err := s.repos.Users.List(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.AttendanceOverviewResponse{}, err
	}
	activities, err := s.repos.Activities.List(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.AttendanceOverviewResponse{}, err
	}
	signups, err := s.repos.Signups.List(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.AttendanceOverviewResponse{}, err
	}
	records, err := s.repos.Attendance.List(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.AttendanceOverviewResponse{}, err
	}

	response := dto.AttendanceOverviewResponse{
		Activities: make([]dto.ActivityResponse, 0, len(activities)),
		Students:   make([]dto.StudentAttendanceRow, 0),
	}
	for _, activity := range activities {
		response.Activities = append(response.Activities, dto.NewActivityResponse(activity, false))
	}

	for _, user := range users {
		if user.Role != models.RoleStudent {
			continue
		}
		row := dto.StudentAttendanceRow{
			Username: user.Username,
			Name:     user.DisplayName,
			Records:  make([]dto.ActivityStatus, 0, len(activities)),
		}
		for _, activity := range activities {
			row.Records = append(row.Records, dto.ActivityStatus{
				ActivityID:   activity.ID,
				ActivityName: activity.Name,
				Status:       string(ResolveStatus(user.Username, activity.ID, records, signups)),
			})
		}
		response.Students = append(response.Students, row)
	}

	span.SetAttributes(
		attribute.Int("attendance.students", len(response.Students)),
		attribute.Int("attendance.activities", len(activities)),
	)
	return response, nil
}

// Roster lists students signed up for one activity with their current status.
func (s *attendanceService) Roster(ctx context.Context, activityID int) (dto.RosterResponse, error) {
	activity, err := s.repos.Activities.GetByID(ctx, activityID)
	if err != nil {
		return dto.RosterResponse{}, mapActivityError(err)
	}
	return s.buildRoster(ctx, activity)
}

// Mark applies submitted statuses for one activity. Only usernames signed up
// for the activity are applied; the rest are returned as skipped.
func (s *attendanceService) Mark(ctx context.Context, actor string, activityID int, payload dto.MarkAttendanceRequest) (dto.MarkAttendanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MarkAttendanceResponse{}, err
	}

	marks := make(map[string]models.AttendanceStatus, len(payload.Marks))
	for username, raw := range payload.Marks {
		status := models.AttendanceStatus(strings.TrimSpace(raw))
		if !status.Markable() {
			return dto.MarkAttendanceResponse{}, fmt.Errorf("%w: %q for %s", ErrInvalidAttendanceStatus, raw, username)
		}
		key := strings.TrimSpace(username)
		if _, seen := marks[key]; seen {
			return dto.MarkAttendanceResponse{}, fmt.Errorf("%w: %s", ErrDuplicateMark, key)
		}
		marks[key] = status
	}

	ctx, span := s.tracer.Start(ctx, "attendance.mark", trace.WithAttributes(
		attribute.Int("attendance.activity_id", activityID),
		attribute.Int("attendance.submitted", len(marks)),
	))
	defer span.End()

	activity, err := s.repos.Activities.GetByID(ctx, activityID)
	if err != nil {
		return dto.MarkAttendanceResponse{}, mapActivityError(err)
	}

	signups, err := s.repos.Signups.ListByActivity(ctx, activityID)
	if err != nil {
		span.RecordError(err)
		return dto.MarkAttendanceResponse{}, err
	}
	enrolled := make(map[string]struct{}, len(signups))
	for _, signup := range signups {
		enrolled[signup.Username] = struct{}{}
	}

	applied := make(map[string]models.AttendanceStatus, len(marks))
	skipped := make([]string, 0)
	for username, status := range marks {
		if _, ok := enrolled[username]; !ok {
			skipped = append(skipped, username)
			continue
		}
		applied[username] = status
	}
	sort.Strings(skipped)

	now := s.now()
	if err := s.repos.Attendance.Replace(ctx, func(records []models.Attendance) ([]models.Attendance, error) {
		return ApplyAttendanceMarks(records, activityID, applied, now), nil
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist_attendance_failed")
		return dto.MarkAttendanceResponse{}, err
	}

	appliedNames := make([]string, 0, len(applied))
	changes := make(map[string]string, len(applied))
	for username, status := range applied {
		appliedNames = append(appliedNames, username)
		changes[username] = string(status)
		observability.AttendanceMarks().WithLabelValues(string(status)).Inc()
	}
	sort.Strings(appliedNames)

	roster, err := s.buildRoster(ctx, activity)
	if err != nil {
		return dto.MarkAttendanceResponse{}, err
	}

	s.logger.Info().
		Int("activity_id", activityID).
		Str("actor", actor).
		Int("applied", len(appliedNames)).
		Int("skipped", len(skipped)).
		Msg("attendance marked")
	publishEvent(ctx, s.publisher, s.logger, events.New(events.AttendanceMarked, activityID, actor, changes))

	return dto.MarkAttendanceResponse{
		Roster:  roster,
		Applied: appliedNames,
		Skipped: skipped,
	}, nil
}

func (s *attendanceService) buildRoster(ctx context.Context, activity models.Activity) (dto.RosterResponse, error) {
	signups, err := s.repos.Signups.ListByActivity(ctx, activity.ID)
	if err != nil {
		return dto.RosterResponse{}, err
	}
	records, err := s.repos.Attendance.List(ctx)
	if err != nil {
		return dto.RosterResponse{}, err
	}
	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return dto.RosterResponse{}, err
	}

	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.Username] = user.DisplayName
	}
	markedAt := make(map[string]time.Time)
	for _, record := range records {
		if record.ActivityID == activity.ID && record.Status != "" && !record.Timestamp.IsZero() {
			markedAt[record.Username] = record.Timestamp.Time
		}
	}

	response := dto.RosterResponse{
		Activity: dto.NewActivityResponse(activity, false),
		Students: make([]dto.RosterEntry, 0, len(signups)),
	}
	for _, signup := range signups {
		name, ok := names[signup.Username]
		if !ok {
			name = unknownStudentName
		}
		entry := dto.RosterEntry{
			Username: signup.Username,
			Name:     name,
			Status:   string(ResolveStatus(signup.Username, activity.ID, records, signups)),
		}
		if stamp, ok := markedAt[signup.Username]; ok {
			entry.MarkedAt = &stamp
		}
		response.Students = append(response.Students, entry)
	}
	return response, nil
}
