package dto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatorUsernameTag(t *testing.T) {
	validate := NewValidator()

	valid := RegisterRequest{Username: "ana.lee", Password: "secret1", Name: "Ana"}
	require.NoError(t, validate.Struct(valid))

	for _, username := range []string{"ab", "has space", "slash/name", ""} {
		request := valid
		request.Username = username
		require.Error(t, validate.Struct(request), username)
	}
}

func TestMarkAttendanceRequestValidation(t *testing.T) {
	validate := NewValidator()

	require.Error(t, validate.Struct(MarkAttendanceRequest{}))
	require.Error(t, validate.Struct(MarkAttendanceRequest{Marks: map[string]string{"ana": ""}}))
	require.Error(t, validate.Struct(MarkAttendanceRequest{Marks: map[string]string{"": "Present"}}))
	require.NoError(t, validate.Struct(MarkAttendanceRequest{Marks: map[string]string{"ana": "Present"}}))
}

func TestFeedbackRatingBounds(t *testing.T) {
	validate := NewValidator()

	require.Error(t, validate.Struct(FeedbackRequest{Rating: 0}))
	require.Error(t, validate.Struct(FeedbackRequest{Rating: 6}))
	require.NoError(t, validate.Struct(FeedbackRequest{Rating: 3, Comments: "good"}))
}
