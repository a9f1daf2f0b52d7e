package models

// Activity is an extracurricular activity students can sign up for.
type Activity struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NextActivityID returns max(id)+1, or 1 for an empty collection.
func NextActivityID(activities []Activity) int {
	next := 1
	for _, activity := range activities {
		if activity.ID >= next {
			next = activity.ID + 1
		}
	}
	return next
}
