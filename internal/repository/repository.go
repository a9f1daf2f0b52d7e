package repository

import (
	"errors"

	"github.com/noah-isme/gema-activities-api/internal/store"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates the record would violate a uniqueness rule.
	ErrDuplicate = errors.New("record already exists")
)

// Repositories bundles the collection repositories.
type Repositories struct {
	Users      UserRepository
	Activities ActivityRepository
	Signups    SignupRepository
	Attendance AttendanceRepository
	Feedback   FeedbackRepository
}

// New builds every repository on top of the given store.
func New(s *store.Store) Repositories {
	return Repositories{
		Users:      NewUserRepository(s.Users),
		Activities: NewActivityRepository(s.Activities),
		Signups:    NewSignupRepository(s.Signups),
		Attendance: NewAttendanceRepository(s.Attendance),
		Feedback:   NewFeedbackRepository(s.Feedback),
	}
}
