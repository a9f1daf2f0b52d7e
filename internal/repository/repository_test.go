package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/repository"
	"github.com/noah-isme/gema-activities-api/internal/store"
)

func newRepos(t *testing.T) (repository.Repositories, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemoryBackend())
	return repository.New(s), s
}

func TestUserRepositoryCreateRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repos, s := newRepos(t)

	require.NoError(t, repos.Users.Create(ctx, models.User{Username: "ana", Role: models.RoleStudent}))
	err := repos.Users.Create(ctx, models.User{Username: "ana", Role: models.RoleTeacher})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	users, err := s.Users.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.User{{Username: "ana", Role: models.RoleStudent}}, users)
}

func TestUserRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)
	require.NoError(t, repos.Users.Create(ctx, models.User{Username: "ana", Role: models.RoleStudent}))

	updated, err := repos.Users.Update(ctx, "ana", func(user *models.User) error {
		user.Role = models.RoleTeacher
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, updated.Role)

	stored, err := repos.Users.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, stored.Role)

	_, err = repos.Users.Update(ctx, "ghost", func(*models.User) error { return nil })
	require.ErrorIs(t, err, repository.ErrNotFound)

	rejected := errors.New("rejected")
	_, err = repos.Users.Update(ctx, "ana", func(user *models.User) error {
		user.Role = models.RoleAdmin
		return rejected
	})
	require.ErrorIs(t, err, rejected)
	stored, err = repos.Users.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, stored.Role)
}

func TestUserRepositoryExistsWithRole(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	exists, err := repos.Users.ExistsWithRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, repos.Users.Create(ctx, models.User{Username: "root", Role: models.RoleAdmin}))
	exists, err = repos.Users.ExistsWithRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestActivityRepositoryAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	repos, s := newRepos(t)
	require.NoError(t, s.Activities.Save(ctx, []models.Activity{{ID: 4, Name: "Legacy"}}))

	created, err := repos.Activities.Create(ctx, "Chess", "Weekly club")
	require.NoError(t, err)
	require.Equal(t, 5, created.ID)

	fetched, err := repos.Activities.GetByID(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, "Chess", fetched.Name)

	_, err = repos.Activities.GetByID(ctx, 99)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSignupRepositoryKeepsPairsUnique(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	require.NoError(t, repos.Signups.Create(ctx, models.Signup{Username: "ana", ActivityID: 1}))
	require.ErrorIs(t, repos.Signups.Create(ctx, models.Signup{Username: "ana", ActivityID: 1}), repository.ErrDuplicate)
	require.NoError(t, repos.Signups.Create(ctx, models.Signup{Username: "ana", ActivityID: 2}))
	require.NoError(t, repos.Signups.Create(ctx, models.Signup{Username: "ben", ActivityID: 1}))

	byUser, err := repos.Signups.ListByUsername(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, byUser, 2)

	byActivity, err := repos.Signups.ListByActivity(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byActivity, 2)

	none, err := repos.Signups.ListByActivity(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestFeedbackRepositoryAllowsDuplicates(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	entry := models.Feedback{Username: "ana", ActivityID: 1, Comments: "fun", Rating: 5}
	require.NoError(t, repos.Feedback.Create(ctx, entry))
	require.NoError(t, repos.Feedback.Create(ctx, entry))

	all, err := repos.Feedback.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestAttendanceRepositoryReplaceAndFilter(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	require.NoError(t, repos.Attendance.Replace(ctx, func(records []models.Attendance) ([]models.Attendance, error) {
		return append(records,
			models.Attendance{Username: "ana", ActivityID: 1, Status: models.AttendancePresent},
			models.Attendance{Username: "ben", ActivityID: 1, Status: models.AttendanceAbsent},
		), nil
	}))

	anas, err := repos.Attendance.ListByUsername(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, anas, 1)
	require.Equal(t, models.AttendancePresent, anas[0].Status)
}
