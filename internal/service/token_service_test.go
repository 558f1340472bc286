package service

import (
	"context"
	"crypto/sha256"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	servermocks "github.com/dtroode/lostfound/internal/mocks"
	"github.com/dtroode/lostfound/internal/model"
	"github.com/dtroode/lostfound/internal/testutil"
)

const testRefreshTTL = 24 * time.Hour

func hashOf(s string) []byte {
	h := sha256.Sum256([]byte(s))
	return h[:]
}

func TestTokenService_Issue(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	manager := &servermocks.TokenManager{}
	store := &servermocks.RefreshTokenStore{}

	manager.On("GenerateAccessToken", userID).Return("access", nil).Once()
	manager.On("GenerateRefreshToken", userID).Return("refresh", "jti-1", nil).Once()
	store.On("Create", ctx, mock.MatchedBy(func(rt model.RefreshToken) bool {
		return rt.JTI == "jti-1" && rt.UserID == userID &&
			assert.ObjectsAreEqual(hashOf("refresh"), rt.TokenHash) &&
			rt.ExpiresAt.Sub(rt.IssuedAt) == testRefreshTTL
	})).Return(nil).Once()

	svc := NewTokenService(manager, store, testRefreshTTL, testutil.MakeNoopLogger())

	pair, err := svc.Issue(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, model.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, pair)
	store.AssertExpectations(t)
}

func TestTokenService_Issue_ManagerError(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	manager := &servermocks.TokenManager{}
	store := &servermocks.RefreshTokenStore{}

	manager.On("GenerateAccessToken", userID).Return("", assert.AnError).Once()

	svc := NewTokenService(manager, store, testRefreshTTL, testutil.MakeNoopLogger())

	_, err := svc.Issue(ctx, userID)
	require.ErrorIs(t, err, assert.AnError)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTokenService_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	jti := "jti-old"
	presented := "refresh-old"

	manager := &servermocks.TokenManager{}
	store := &servermocks.RefreshTokenStore{}

	manager.On("ParseRefreshToken", presented).Return(userID, jti, nil).Once()
	store.On("GetByJTI", ctx, jti).Return(model.RefreshToken{
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashOf(presented),
		IssuedAt:  time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil).Once()
	manager.On("GenerateAccessToken", userID).Return("access-new", nil).Once()
	manager.On("GenerateRefreshToken", userID).Return("refresh-new", "jti-new", nil).Once()
	store.On("Rotate", ctx, jti, mock.MatchedBy(func(rt model.RefreshToken) bool {
		return rt.JTI == "jti-new"
	})).Return(nil).Once()

	svc := NewTokenService(manager, store, testRefreshTTL, testutil.MakeNoopLogger())

	pair, err := svc.Refresh(ctx, presented)
	require.NoError(t, err)
	assert.Equal(t, "access-new", pair.AccessToken)
	assert.Equal(t, "refresh-new", pair.RefreshToken)
	store.AssertExpectations(t)
}

func TestTokenService_Refresh_Rejected(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	jti := "jti"
	presented := "refresh"
	now := time.Now()

	tests := []struct {
		name   string
		record model.RefreshToken
		err    error
		want   error
	}{
		{
			name:   "revoked",
			record: model.RefreshToken{TokenHash: hashOf(presented), ExpiresAt: now.Add(time.Hour), RevokedAt: &now},
			want:   model.ErrTokenRevoked,
		},
		{
			name:   "expired",
			record: model.RefreshToken{TokenHash: hashOf(presented), ExpiresAt: now.Add(-time.Minute)},
			want:   model.ErrTokenExpired,
		},
		{
			name:   "mismatch",
			record: model.RefreshToken{TokenHash: hashOf("other"), ExpiresAt: now.Add(time.Hour)},
			want:   model.ErrTokenMismatch,
		},
		{
			name: "unknown jti",
			err:  model.ErrNotFound,
			want: model.ErrTokenMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := &servermocks.TokenManager{}
			store := &servermocks.RefreshTokenStore{}

			manager.On("ParseRefreshToken", presented).Return(userID, jti, nil).Once()
			store.On("GetByJTI", ctx, jti).Return(tt.record, tt.err).Once()

			svc := NewTokenService(manager, store, testRefreshTTL, testutil.MakeNoopLogger())

			_, err := svc.Refresh(ctx, presented)
			require.ErrorIs(t, err, tt.want)
			store.AssertNotCalled(t, "Rotate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTokenService_Refresh_LostRace(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	presented := "refresh"

	manager := &servermocks.TokenManager{}
	store := &servermocks.RefreshTokenStore{}

	manager.On("ParseRefreshToken", presented).Return(userID, "jti", nil).Once()
	store.On("GetByJTI", ctx, "jti").Return(model.RefreshToken{
		TokenHash: hashOf(presented),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil).Once()
	manager.On("GenerateAccessToken", userID).Return("a", nil).Once()
	manager.On("GenerateRefreshToken", userID).Return("r", "jti-2", nil).Once()
	store.On("Rotate", ctx, "jti", mock.Anything).Return(model.ErrTokenRevoked).Once()

	svc := NewTokenService(manager, store, testRefreshTTL, testutil.MakeNoopLogger())

	_, err := svc.Refresh(ctx, presented)
	require.ErrorIs(t, err, model.ErrTokenRevoked)
}

func TestTokenService_Refresh_InvalidToken(t *testing.T) {
	manager := &servermocks.TokenManager{}
	store := &servermocks.RefreshTokenStore{}

	manager.On("ParseRefreshToken", "garbage").Return(uuid.Nil, "", model.ErrUnauthenticated).Once()

	svc := NewTokenService(manager, store, testRefreshTTL, testutil.MakeNoopLogger())

	_, err := svc.Refresh(context.Background(), "garbage")
	require.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestTokenService_RevokeByToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	presented := "refresh"
	manager := &servermocks.TokenManager{}
	store := &servermocks.RefreshTokenStore{}

	manager.On("ParseRefreshToken", presented).Return(userID, "jti", nil).Once()
	store.On("RevokeAllByUser", ctx, userID).Return(nil).Once()

	svc := NewTokenService(manager, store, testRefreshTTL, testutil.MakeNoopLogger())

	require.NoError(t, svc.RevokeByToken(ctx, presented))
	store.AssertExpectations(t)
}

func TestTokenService_GetUserID(t *testing.T) {
	manager := &servermocks.TokenManager{}
	store := &servermocks.RefreshTokenStore{}

	u := uuid.New()
	manager.On("ParseAccessToken", "access").Return(u, nil).Once()

	svc := NewTokenService(manager, store, testRefreshTTL, testutil.MakeNoopLogger())

	got, err := svc.GetUserID(context.Background(), "access")
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestTokenService_RevokeAllForUser_Error(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	manager := &servermocks.TokenManager{}
	store := &servermocks.RefreshTokenStore{}

	store.On("RevokeAllByUser", ctx, userID).Return(assert.AnError).Once()

	svc := NewTokenService(manager, store, testRefreshTTL, testutil.MakeNoopLogger())

	require.ErrorIs(t, svc.RevokeAllForUser(ctx, userID), assert.AnError)
}
