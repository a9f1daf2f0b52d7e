package service

import (
	"sort"
	"time"

	"github.com/noah-isme/gema-activities-api/internal/models"
)

// UnknownActivityLabel names attendance whose activity id has no match.
const UnknownActivityLabel = "Unknown Activity"

// ActivityCount is one bar of the present-by-activity chart.
type ActivityCount struct {
	Label string
	Count int
}

// ResolveStatus derives the status shown for a student and activity. A stored
// record wins verbatim, a signup alone yields "Not Marked", anything else is
// "Not Enrolled". Records with an empty status count as absent.
func ResolveStatus(username string, activityID int, attendance []models.Attendance, signups []models.Signup) models.AttendanceStatus {
	for _, record := range attendance {
		if record.Matches(username, activityID) && record.Status != "" {
			return record.Status
		}
	}
	for _, signup := range signups {
		if signup.Matches(username, activityID) {
			return models.AttendanceNotMarked
		}
	}
	return models.AttendanceNotEnrolled
}

// ApplyAttendanceMarks returns records with every username in marks rewritten
// for activityID: the old record is dropped and a fresh one stamped now is
// appended unless the status is empty or the "Not Marked" sentinel. Usernames
// absent from marks keep their records untouched.
func ApplyAttendanceMarks(records []models.Attendance, activityID int, marks map[string]models.AttendanceStatus, now time.Time) []models.Attendance {
	result := make([]models.Attendance, 0, len(records)+len(marks))
	for _, record := range records {
		if record.ActivityID == activityID {
			if _, marked := marks[record.Username]; marked {
				continue
			}
		}
		result = append(result, record)
	}

	usernames := make([]string, 0, len(marks))
	for username := range marks {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	stamp := models.NewTimestamp(now)
	for _, username := range usernames {
		status := marks[username]
		if status == "" || status == models.AttendanceNotMarked {
			continue
		}
		result = append(result, models.Attendance{
			Username:   username,
			ActivityID: activityID,
			Status:     status,
			Timestamp:  stamp,
		})
	}
	return result
}

// CountPresentByActivity counts Present records per activity name in order of
// first occurrence. Activities without a Present record are omitted.
func CountPresentByActivity(attendance []models.Attendance, activities []models.Activity) []ActivityCount {
	names := activityNames(activities)

	counts := make([]ActivityCount, 0)
	index := make(map[string]int)
	for _, record := range attendance {
		if record.Status != models.AttendancePresent {
			continue
		}
		label, ok := names[record.ActivityID]
		if !ok {
			label = UnknownActivityLabel
		}
		position, seen := index[label]
		if !seen {
			position = len(counts)
			index[label] = position
			counts = append(counts, ActivityCount{Label: label})
		}
		counts[position].Count++
	}
	return counts
}

func activityNames(activities []models.Activity) map[int]string {
	names := make(map[int]string, len(activities))
	for _, activity := range activities {
		names[activity.ID] = activity.Name
	}
	return names
}
