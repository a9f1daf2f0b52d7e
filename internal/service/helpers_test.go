package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/events"
	"github.com/noah-isme/gema-activities-api/internal/models"
	"github.com/noah-isme/gema-activities-api/internal/repository"
	"github.com/noah-isme/gema-activities-api/internal/store"
)

type fixture struct {
	store  *store.Store
	repos  repository.Repositories
	events *eventRecorder
	valid  *validator.Validate
	hasher PasswordHasher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.New(store.NewMemoryBackend())
	return &fixture{
		store:  s,
		repos:  repository.New(s),
		events: &eventRecorder{},
		valid:  dto.NewValidator(),
		hasher: NewBcryptHasher(bcrypt.MinCost),
	}
}

func (f *fixture) seed(t *testing.T, users []models.User, activities []models.Activity, signups []models.Signup, attendance []models.Attendance) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Users.Save(ctx, users))
	require.NoError(t, f.store.Activities.Save(ctx, activities))
	require.NoError(t, f.store.Signups.Save(ctx, signups))
	require.NoError(t, f.store.Attendance.Save(ctx, attendance))
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) Publish(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]events.Type, 0, len(r.events))
	for _, event := range r.events {
		types = append(types, event.Type)
	}
	return types
}

type stubTokens struct{}

func (stubTokens) Generate(username string) (string, time.Time, error) {
	return "token-" + username, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}
