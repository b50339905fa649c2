package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, now *time.Time) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret: []byte("test-secret-0123456789"),
		Issuer: "care-companion",
		TTL:    time.Hour,
		Now:    func() time.Time { return *now },
	})
	require.NoError(t, err)
	return m
}

func TestManager_IssueVerify_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	m := newTestManager(t, &now)

	tok, err := m.Issue(context.Background(), "family-1", "family")
	require.NoError(t, err)

	claims, err := m.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "family-1", claims.UserID)
	assert.Equal(t, "family", claims.Role)
	assert.Equal(t, now.Add(time.Hour), claims.ExpiresAt)
}

func TestManager_Verify_Expired(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	m := newTestManager(t, &now)

	tok, err := m.Issue(context.Background(), "elder-1", "elderly")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = m.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	m := newTestManager(t, &now)

	other, err := NewManager(Config{Secret: []byte("another-secret-999999"), Issuer: "care-companion", Now: func() time.Time { return now }})
	require.NoError(t, err)

	tok, err := other.Issue(context.Background(), "family-1", "family")
	require.NoError(t, err)

	_, err = m.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestManager_Verify_Empty(t *testing.T) {
	now := time.Now()
	m := newTestManager(t, &now)

	_, err := m.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
