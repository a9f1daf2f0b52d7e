package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-activities-api/internal/dto"
	"github.com/noah-isme/gema-activities-api/internal/events"
	"github.com/noah-isme/gema-activities-api/internal/models"
)

func TestFeedbackServiceSubmit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, nil, []models.Activity{{ID: 1, Name: "Chess"}}, nil, nil)
	svc := NewFeedbackService(f.repos.Activities, f.repos.Feedback, f.events, f.valid, zerolog.Nop())

	response, err := svc.Submit(ctx, "ana", 1, dto.FeedbackRequest{Comments: "<b>Great</b> club", Rating: 5})
	require.NoError(t, err)
	require.Equal(t, "Great club", response.Comments)
	require.Equal(t, "Chess", response.ActivityName)

	_, err = svc.Submit(ctx, "ana", 1, dto.FeedbackRequest{Comments: "Great club", Rating: 5})
	require.NoError(t, err)

	stored, err := f.store.Feedback.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.Equal(t, []events.Type{events.FeedbackSubmitted, events.FeedbackSubmitted}, f.events.types())
}

func TestFeedbackServiceRejectsUnknownActivityAndBadRating(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewFeedbackService(f.repos.Activities, f.repos.Feedback, f.events, f.valid, zerolog.Nop())

	_, err := svc.Submit(ctx, "ana", 3, dto.FeedbackRequest{Rating: 4})
	require.ErrorIs(t, err, ErrActivityNotFound)

	_, err = svc.Submit(ctx, "ana", 3, dto.FeedbackRequest{Rating: 9})
	require.Error(t, err)

	stored, err := f.store.Feedback.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, stored)
}
