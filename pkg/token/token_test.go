package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	manager, err := NewManager("secret", "eca", time.Hour)
	require.NoError(t, err)

	signed, expiresAt, err := manager.Generate("ana")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	username, err := manager.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, "ana", username)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	issuer, err := NewManager("secret", "eca", time.Hour)
	require.NoError(t, err)
	verifier, err := NewManager("other", "eca", time.Hour)
	require.NoError(t, err)

	signed, _, err := issuer.Generate("ana")
	require.NoError(t, err)

	_, err = verifier.Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager, err := NewManager("secret", "eca", time.Minute)
	require.NoError(t, err)
	manager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, _, err := manager.Generate("ana")
	require.NoError(t, err)

	manager.now = time.Now
	_, err = manager.Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager("  ", "eca", time.Hour)
	require.ErrorIs(t, err, ErrMissingSecret)

	manager, err := NewManager("secret", "", 0)
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, manager.TTL())

	_, err = manager.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
