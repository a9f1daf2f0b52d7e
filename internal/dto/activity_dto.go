package dto

import "github.com/noah-isme/gema-activities-api/internal/models"

// CreateActivityRequest defines a new activity.
type CreateActivityRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

// ActivityResponse describes an activity, flagged with the caller's signup state.
type ActivityResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SignedUp    bool   `json:"signed_up"`
}

// ActivityListResponse lists every activity plus the ids the caller joined.
type ActivityListResponse struct {
	Activities  []ActivityResponse `json:"activities"`
	SignedUpIDs []int              `json:"signed_up_ids"`
}

// SignupResponse confirms a signup.
type SignupResponse struct {
	Username   string `json:"username"`
	ActivityID int    `json:"activity_id"`
}

// FeedbackRequest rates an activity.
type FeedbackRequest struct {
	Comments string `json:"comments" validate:"max=2000"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

// FeedbackResponse echoes a stored feedback entry.
type FeedbackResponse struct {
	Username     string `json:"username"`
	ActivityID   int    `json:"activity_id"`
	ActivityName string `json:"activity_name,omitempty"`
	Comments     string `json:"comments"`
	Rating       int    `json:"rating"`
}

// NewActivityResponse maps an activity model.
func NewActivityResponse(activity models.Activity, signedUp bool) ActivityResponse {
	return ActivityResponse{
		ID:          activity.ID,
		Name:        activity.Name,
		Description: activity.Description,
		SignedUp:    signedUp,
	}
}

// NewFeedbackResponse maps a feedback model.
func NewFeedbackResponse(feedback models.Feedback, activityName string) FeedbackResponse {
	return FeedbackResponse{
		Username:     feedback.Username,
		ActivityID:   feedback.ActivityID,
		ActivityName: activityName,
		Comments:     feedback.Comments,
		Rating:       feedback.Rating,
	}
}
