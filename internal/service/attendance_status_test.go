package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-activities-api/internal/models"
)

func TestResolveStatusPrecedence(t *testing.T) {
	signups := []models.Signup{{Username: "s1", ActivityID: 1}}
	attendance := []models.Attendance{
		{Username: "s1", ActivityID: 2, Status: models.AttendanceExcused},
		{Username: "s2", ActivityID: 3, Status: "Late"},
	}

	require.Equal(t, models.AttendanceNotEnrolled, ResolveStatus("s9", 1, attendance, signups))
	require.Equal(t, models.AttendanceNotMarked, ResolveStatus("s1", 1, attendance, signups))
	require.Equal(t, models.AttendanceExcused, ResolveStatus("s1", 2, attendance, signups))
	require.Equal(t, models.AttendanceStatus("Late"), ResolveStatus("s2", 3, attendance, nil))
	require.Equal(t, models.AttendanceNotEnrolled, ResolveStatus("s1", 1, nil, nil))
}

func TestResolveStatusRecordWinsOverSignup(t *testing.T) {
	signups := []models.Signup{{Username: "s1", ActivityID: 1}}
	attendance := []models.Attendance{{Username: "s1", ActivityID: 1, Status: models.AttendanceAbsent}}

	require.Equal(t, models.AttendanceAbsent, ResolveStatus("s1", 1, attendance, signups))
}

func TestResolveStatusIgnoresEmptyRecord(t *testing.T) {
	signups := []models.Signup{{Username: "s1", ActivityID: 1}}
	attendance := []models.Attendance{{Username: "s1", ActivityID: 1, Status: ""}}

	require.Equal(t, models.AttendanceNotMarked, ResolveStatus("s1", 1, attendance, signups))
}

func TestApplyAttendanceMarksIsIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	existing := []models.Attendance{
		{Username: "s1", ActivityID: 1, Status: models.AttendanceAbsent},
		{Username: "s3", ActivityID: 1, Status: models.AttendancePresent},
		{Username: "s1", ActivityID: 2, Status: models.AttendancePresent},
	}
	marks := map[string]models.AttendanceStatus{
		"s1": models.AttendancePresent,
		"s2": models.AttendanceExcused,
	}

	once := ApplyAttendanceMarks(existing, 1, marks, now)
	twice := ApplyAttendanceMarks(once, 1, marks, now)
	require.Equal(t, once, twice)

	require.Equal(t, []models.Attendance{
		{Username: "s3", ActivityID: 1, Status: models.AttendancePresent},
		{Username: "s1", ActivityID: 2, Status: models.AttendancePresent},
		{Username: "s1", ActivityID: 1, Status: models.AttendancePresent, Timestamp: models.NewTimestamp(now)},
		{Username: "s2", ActivityID: 1, Status: models.AttendanceExcused, Timestamp: models.NewTimestamp(now)},
	}, once)
}

func TestApplyAttendanceMarksSentinelClears(t *testing.T) {
	existing := []models.Attendance{
		{Username: "s1", ActivityID: 1, Status: models.AttendancePresent},
		{Username: "s2", ActivityID: 1, Status: models.AttendanceAbsent},
	}

	result := ApplyAttendanceMarks(existing, 1, map[string]models.AttendanceStatus{
		"s1": models.AttendanceNotMarked,
	}, time.Now())

	require.Equal(t, []models.Attendance{{Username: "s2", ActivityID: 1, Status: models.AttendanceAbsent}}, result)
	require.Equal(t, models.AttendanceNotEnrolled, ResolveStatus("s1", 1, result, nil))
}

func TestApplyAttendanceMarksNeverDuplicatesPair(t *testing.T) {
	now := time.Now()
	records := []models.Attendance{}
	for i := 0; i < 3; i++ {
		records = ApplyAttendanceMarks(records, 4, map[string]models.AttendanceStatus{"s1": models.AttendanceAbsent}, now)
	}
	require.Len(t, records, 1)
}

func TestCountPresentByActivity(t *testing.T) {
	activities := []models.Activity{{ID: 1, Name: "A1"}, {ID: 2, Name: "A2"}}
	attendance := []models.Attendance{
		{Username: "S1", ActivityID: 1, Status: models.AttendancePresent},
		{Username: "S2", ActivityID: 1, Status: models.AttendancePresent},
		{Username: "S1", ActivityID: 2, Status: models.AttendanceAbsent},
	}

	require.Equal(t, []ActivityCount{{Label: "A1", Count: 2}}, CountPresentByActivity(attendance, activities))
}

func TestCountPresentByActivityKeepsFirstOccurrenceOrder(t *testing.T) {
	activities := []models.Activity{{ID: 1, Name: "Chess"}, {ID: 2, Name: "Band"}}
	attendance := []models.Attendance{
		{Username: "a", ActivityID: 2, Status: models.AttendancePresent},
		{Username: "b", ActivityID: 9, Status: models.AttendancePresent},
		{Username: "c", ActivityID: 1, Status: models.AttendancePresent},
		{Username: "d", ActivityID: 2, Status: models.AttendancePresent},
	}

	require.Equal(t, []ActivityCount{
		{Label: "Band", Count: 2},
		{Label: UnknownActivityLabel, Count: 1},
		{Label: "Chess", Count: 1},
	}, CountPresentByActivity(attendance, activities))
	require.Empty(t, CountPresentByActivity(nil, activities))
}
