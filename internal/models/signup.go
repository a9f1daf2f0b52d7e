package models

// Signup joins a user to an activity.
type Signup struct {
	Username   string `json:"username"`
	ActivityID int    `json:"activity_id"`
}

// Matches reports whether the signup belongs to the given pair.
func (s Signup) Matches(username string, activityID int) bool {
	return s.Username == username && s.ActivityID == activityID
}
