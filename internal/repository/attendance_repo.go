package repository

import (
	"context"

	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/store"
)

// AttendanceRepository provides access to attendance records.
type AttendanceRepository interface {
	List(ctx context.Context) ([]models.Attendance, error)
	ListByUsername(ctx context.Context, username string) ([]models.Attendance, error)
	// Replace runs fn over the full collection and persists its result.
	Replace(ctx context.Context, fn func(records []models.Attendance) ([]models.Attendance, error)) error
}

type attendanceRepository struct {
	records *store.Collection[models.Attendance]
}

// NewAttendanceRepository constructs an attendance repository.
func NewAttendanceRepository(records *store.Collection[models.Attendance]) AttendanceRepository {
	return &attendanceRepository{records: records}
}

func (r *attendanceRepository) List(ctx context.Context) ([]models.Attendance, error) {
	return r.records.Load(ctx)
}

func (r *attendanceRepository) ListByUsername(ctx context.Context, username string) ([]models.Attendance, error) {
	records, err := r.records.Load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Attendance, 0)
	for _, record := range records {
		if record.Username == username {
			result = append(result, record)
		}
	}
	return result, nil
}

func (r *attendanceRepository) Replace(ctx context.Context, fn func(records []models.Attendance) ([]models.Attendance, error)) error {
	return r.records.Update(ctx, fn)
}
