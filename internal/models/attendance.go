package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// AttendanceStatus is the stored or derived attendance label.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceExcused AttendanceStatus = "Excused"

	// AttendanceNotMarked means a signup exists but no decision is recorded.
	// In mark submissions it clears the record.
	AttendanceNotMarked AttendanceStatus = "Not Marked"
	// AttendanceNotEnrolled means neither a signup nor a record exists.
	AttendanceNotEnrolled AttendanceStatus = "Not Enrolled"
)

// Markable reports whether the status can be submitted when marking attendance.
func (s AttendanceStatus) Markable() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused, AttendanceNotMarked:
		return true
	default:
		return false
	}
}

// Attendance is the authoritative attendance record for a (user, activity) pair.
type Attendance struct {
	Username   string           `json:"username"`
	ActivityID int              `json:"activity_id"`
	Status     AttendanceStatus `json:"status"`
	Timestamp  Timestamp        `json:"timestamp"`
}

// Matches reports whether the record belongs to the given pair.
func (a Attendance) Matches(username string, activityID int) bool {
	return a.Username == username && a.ActivityID == activityID
}

const naiveISOLayout = "2006-01-02T15:04:05.999999"

// Timestamp encodes as RFC3339 and also accepts zone-less ISO-8601 values
// found in older data files.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed
		return nil
	}

	parsed, err := time.ParseInLocation(naiveISOLayout, raw, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}
