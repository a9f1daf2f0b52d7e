package models

// Feedback is a student's comment and rating for an activity.
type Feedback struct {
	Username   string `json:"username"`
	ActivityID int    `json:"activity_id"`
	Comments   string `json:"comments"`
	Rating     int    `json:"rating"`
}
