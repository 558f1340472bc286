package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/lostfound/internal/model"
)

func TestSession_Login(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.session.IsAuthenticated())

	h.login(t)

	user, ok := h.session.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "ann", user.UserName)
	assert.Equal(t, Tokens{AccessToken: "access-1", RefreshToken: "refresh-1"}, *h.store.tokens)
}

func TestSession_Login_WrongPassword(t *testing.T) {
	h := newHarness(t)

	err := h.session.Login(context.Background(), "ann@example.com", "nope")
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
	assert.False(t, h.session.IsAuthenticated())
	assert.Nil(t, h.store.tokens)
}

func TestSession_Register_EmailTaken(t *testing.T) {
	h := newHarness(t)

	err := h.session.Register(context.Background(), "ann@example.com", "ann", "password1")
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestSession_Load_NoStoredSession(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.session.Load(context.Background()))
	assert.False(t, h.session.IsAuthenticated())
	assert.False(t, h.session.IsLoading())
}

func TestSession_Load_RenewsExpiredAccessToken(t *testing.T) {
	h := newHarness(t)
	h.store.tokens = &Tokens{AccessToken: "stale", RefreshToken: "refresh-1"}

	require.NoError(t, h.session.Load(context.Background()))

	assert.True(t, h.session.IsAuthenticated())
	assert.False(t, h.session.IsLoading())
	assert.Equal(t, 1, h.backend.refreshCalls)
	assert.Equal(t, Tokens{AccessToken: "access-2", RefreshToken: "refresh-2"}, *h.store.tokens)
}

func TestSession_Load_RevokedSessionIsDiscarded(t *testing.T) {
	h := newHarness(t)
	h.store.tokens = &Tokens{AccessToken: "stale", RefreshToken: "revoked"}

	require.NoError(t, h.session.Load(context.Background()))

	assert.False(t, h.session.IsAuthenticated())
	assert.Nil(t, h.store.tokens)
	assert.Equal(t, 1, h.store.deletes)
}

func TestSession_Refresh_RereadsAccount(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	h.backend.mu.Lock()
	h.backend.user.UserName = "renamed"
	h.backend.mu.Unlock()

	require.NoError(t, h.session.Refresh(context.Background()))
	user, _ := h.session.CurrentUser()
	assert.Equal(t, "renamed", user.UserName)
	assert.Equal(t, "refresh-2", h.session.Tokens().RefreshToken)
}

func TestSession_Logout(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	require.NoError(t, h.session.Logout(context.Background()))
	assert.False(t, h.session.IsAuthenticated())
	assert.Nil(t, h.store.tokens)

	assert.ErrorIs(t, h.session.Logout(context.Background()), ErrNoSession)
}

func TestSession_Logout_FailureKeepsSession(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.backend.logoutErr = status.Error(codes.Unavailable, "down")

	err := h.session.Logout(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, h.session.IsAuthenticated())
	assert.NotNil(t, h.store.tokens)
}

func TestSession_GetRequestMetadata(t *testing.T) {
	s := NewSession(&memoryTokenStore{}, nil)

	md, err := s.GetRequestMetadata(context.Background())
	require.NoError(t, err)
	assert.Empty(t, md)

	s.tokens = Tokens{AccessToken: "abc"}
	md, err = s.GetRequestMetadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"authorization": "Bearer abc"}, md)
	assert.False(t, s.RequireTransportSecurity())
}
