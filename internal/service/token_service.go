package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/model"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager and RefreshTokenStore.
type TokenService struct {
	manager    model.TokenManager
	store      model.RefreshTokenStore
	refreshTTL time.Duration
	logger     *logger.Logger
	now        func() time.Time
}

// NewTokenService creates a TokenService. refreshTTL must match the lifetime
// the manager signs refresh tokens with.
func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, refreshTTL time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{
		manager:    manager,
		store:      store,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Issue creates a fresh token pair for userID.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (model.TokenPair, error) {
	pair, rt, err := s.generate(userID)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.store.Create(ctx, rt); err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return pair, nil
}

// Refresh spends presentedRefresh and returns a new pair. The old refresh token
// is revoked in the same step the new one is stored.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (model.TokenPair, error) {
	userID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrTokenMismatch
		}
		return model.TokenPair{}, fmt.Errorf("failed to get refresh token: %w", err)
	}

	if err := validateRecord(rt, hashRefresh(presentedRefresh), s.now()); err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			s.logger.Warn("TokenService: revoked refresh token presented", "user_id", userID, "jti", jti)
		}
		return model.TokenPair{}, err
	}

	pair, next, err := s.generate(userID)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.store.Rotate(ctx, jti, next); err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			return model.TokenPair{}, err
		}
		return model.TokenPair{}, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	s.logger.Debug("TokenService: refresh token rotated", "user_id", userID, "from", jti, "to", next.JTI)

	return pair, nil
}

// RevokeByToken revokes every refresh token of the owner of presentedRefresh.
func (s *TokenService) RevokeByToken(ctx context.Context, presentedRefresh string) error {
	userID, _, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return err
	}
	return s.RevokeAllForUser(ctx, userID)
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// GetUserID returns the user an access token was issued to.
func (s *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(token)
}

func (s *TokenService) generate(userID uuid.UUID) (model.TokenPair, model.RefreshToken, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return model.TokenPair{}, model.RefreshToken{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return model.TokenPair{}, model.RefreshToken{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	now := s.now()
	rt := model.RefreshToken{
		ID:        uuid.New(),
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashRefresh(refresh),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, rt, nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if subtle.ConstantTimeCompare(rt.TokenHash, presentedHash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}
