package service

import "errors"

var (
	// ErrUserNotFound indicates the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrActivityNotFound indicates the activity does not exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrUsernameTaken indicates registration hit an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrAlreadySignedUp indicates a repeated signup for the same activity.
	ErrAlreadySignedUp = errors.New("already signed up for this activity")
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRole indicates an unknown role name.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidAttendanceStatus indicates a status outside the markable set.
	ErrInvalidAttendanceStatus = errors.New("invalid attendance status")
	// ErrDuplicateMark indicates two submitted usernames that are equal once trimmed.
	ErrDuplicateMark = errors.New("duplicate username in attendance marks")
	// ErrEmptyAfterSanitize indicates required text was stripped to nothing.
	ErrEmptyAfterSanitize = errors.New("text empty after sanitization")
)

// IsValidationFailure reports whether err is a domain validation error that maps to a client error.
func IsValidationFailure(err error) bool {
	return errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrInvalidAttendanceStatus) ||
		errors.Is(err, ErrDuplicateMark) ||
		errors.Is(err, ErrEmptyAfterSanitize)
}
