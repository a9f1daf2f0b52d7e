package dto

import "time"

// StudentAttendanceEntry is one row of a student's own attendance view.
type StudentAttendanceEntry struct {
	ActivityID   int    `json:"activity_id"`
	ActivityName string `json:"activity_name"`
	Status       string `json:"status"`
}

// AttendanceViewResponse answers GET /attendance for either audience.
type AttendanceViewResponse struct {
	Role       string                   `json:"role"`
	Records    []StudentAttendanceEntry `json:"records,omitempty"`
	Activities []ActivityResponse       `json:"activities,omitempty"`
}

// ActivityStatus is one cell of the attendance matrix.
type ActivityStatus struct {
	ActivityID   int    `json:"activity_id"`
	ActivityName string `json:"activity_name"`
	Status       string `json:"status"`
}

// StudentAttendanceRow is one student's row of the attendance matrix.
type StudentAttendanceRow struct {
	Username string           `json:"username"`
	Name     string           `json:"name"`
	Records  []ActivityStatus `json:"records"`
}

// AttendanceOverviewResponse is the students by activities matrix.
type AttendanceOverviewResponse struct {
	Activities []ActivityResponse     `json:"activities"`
	Students   []StudentAttendanceRow `json:"students"`
}

// RosterEntry is one signed-up student on an activity roster.
type RosterEntry struct {
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Status   string     `json:"status"`
	MarkedAt *time.Time `json:"marked_at,omitempty"`
}

// RosterResponse lists the students signed up for an activity.
type RosterResponse struct {
	Activity ActivityResponse `json:"activity"`
	Students []RosterEntry    `json:"students"`
}

// MarkAttendanceRequest maps usernames to a submitted status.
type MarkAttendanceRequest struct {
	Marks map[string]string `json:"marks" validate:"required,min=1,dive,keys,required,max=64,endkeys,required"`
}

// MarkAttendanceResponse reports the updated roster and which usernames were ignored.
type MarkAttendanceResponse struct {
	Roster  RosterResponse `json:"roster"`
	Applied []string       `json:"applied"`
	Skipped []string       `json:"skipped"`
}

// AttendanceRecordResponse is a stored attendance record with its activity label.
type AttendanceRecordResponse struct {
	Username     string     `json:"username"`
	ActivityID   int        `json:"activity_id"`
	ActivityName string     `json:"activity_name"`
	Status       string     `json:"status"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
}
