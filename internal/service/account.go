package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/model"
)

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Account serves the signed-in user's own account.
type Account struct {
	userStore    model.UserStore
	itemStore    model.ItemStore
	cache        model.UserCache
	storage      model.Storage
	tokenService *TokenService
	maxAvatar    int64
	hashCost     int
	logger       *logger.Logger
}

// NewAccount creates an Account service. cache may be nil.
func NewAccount(
	userStore model.UserStore,
	itemStore model.ItemStore,
	cache model.UserCache,
	storage model.Storage,
	tokenService *TokenService,
	maxAvatarBytes int64,
	logger *logger.Logger,
) *Account {
	return &Account{
		userStore:    userStore,
		itemStore:    itemStore,
		cache:        cache,
		storage:      storage,
		tokenService: tokenService,
		maxAvatar:    maxAvatarBytes,
		hashCost:     bcrypt.DefaultCost,
		logger:       logger,
	}
}

// GetMe returns the user, reading through the cache.
func (s *Account) GetMe(ctx context.Context, userID uuid.UUID) (model.User, error) {
	if s.cache != nil {
		user, err := s.cache.Get(ctx, userID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Warn("Account service: cache read failed",
				"user_id", userID,
				"error", err.Error())
		}
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	s.cacheUser(ctx, user)

	return user, nil
}

// UploadAvatar stores a JPEG or PNG image and returns its public URL. The type
// is sniffed from the bytes; the declared content type is only logged.
func (s *Account) UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, declaredType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", model.ErrInvalidArgument)
	}
	if s.maxAvatar > 0 && int64(len(data)) > s.maxAvatar {
		return "", fmt.Errorf("%w: %d bytes, limit is %d", model.ErrImageTooLarge, len(data), s.maxAvatar)
	}

	detected := mimetype.Detect(data)
	ext, ok := avatarExtensions[detected.String()]
	if !ok {
		s.logger.Info("Account service: rejected avatar",
			"user_id", userID,
			"declared", declaredType,
			"detected", detected.String())
		return "", model.ErrUnsupportedImage
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), detected.String()); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	s.logger.Info("Account service: avatar uploaded",
		"user_id", userID,
		"key", key,
		"size", len(data))

	return s.storage.URL(key), nil
}

// UpdateMe applies a partial update. A changed password is re-hashed. When a
// new avatar URL replaces an avatar object this service stored, the old object
// is removed.
func (s *Account) UpdateMe(ctx context.Context, userID uuid.UUID, update model.UserUpdate) (model.User, error) {
	current, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.prepareUpdate(ctx, current, &update); err != nil {
		return model.User{}, err
	}

	updated, err := s.userStore.Update(ctx, userID, update)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrEmailTaken) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.evict(ctx, userID)

	if update.AvatarKey != nil && current.AvatarKey != "" && current.AvatarKey != *update.AvatarKey {
		s.removeObject(ctx, userID, current.AvatarKey)
	}

	s.logger.Info("Account service: user updated",
		"user_id", userID,
		"email_changed", update.Email != nil && *update.Email != current.Email,
		"password_changed", update.PasswordHash != nil,
		"avatar_changed", update.AvatarURL != nil && *update.AvatarURL != current.AvatarURL)

	return updated, nil
}

func (s *Account) prepareUpdate(ctx context.Context, current model.User, update *model.UserUpdate) error {
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if err := validateVar("email", email, "required,email"); err != nil {
			return err
		}
		update.Email = &email

		if !strings.EqualFold(email, current.Email) {
			other, err := s.userStore.GetByEmail(ctx, email)
			if err != nil && !errors.Is(err, model.ErrNotFound) {
				return fmt.Errorf("failed to get user by email: %w", err)
			}
			if other.ID != uuid.Nil && other.ID != current.ID {
				return model.ErrEmailTaken
			}
		}
	}

	if update.UserName != nil {
		name := strings.TrimSpace(*update.UserName)
		if err := validateVar("userName", name, "required,min=3,max=50"); err != nil {
			return err
		}
		update.UserName = &name
	}

	if update.Password != nil {
		if err := validateVar("password", *update.Password, "min=8,bcrypt"); err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.hashCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		update.PasswordHash = hash
		update.Password = nil
	}

	if update.AvatarURL != nil {
		url := strings.TrimSpace(*update.AvatarURL)
		if url != "" {
			if err := validateVar("avatarUrl", url, "url"); err != nil {
				return err
			}
		}
		key, managed := s.storage.KeyFromURL(url)
		if !managed {
			key = ""
		}
		update.AvatarURL = &url
		update.AvatarKey = &key
	}

	return nil
}

// DeleteMe soft-deletes the account, revokes its sessions and removes its avatar.
func (s *Account) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	current, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.userStore.SoftDelete(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	retired, err := s.itemStore.SoftDeleteByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("Account service: failed to retire items of deleted user",
			"user_id", userID,
			"error", err.Error())
	}

	if err := s.tokenService.RevokeAllForUser(ctx, userID); err != nil {
		s.logger.Error("Account service: failed to revoke tokens of deleted user",
			"user_id", userID,
			"error", err.Error())
	}

	s.evict(ctx, userID)

	if current.AvatarKey != "" {
		s.removeObject(ctx, userID, current.AvatarKey)
	}

	s.logger.Info("Account service: user deleted",
		"user_id", userID,
		"items_retired", retired)

	return nil
}

func (s *Account) cacheUser(ctx context.Context, user model.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, user); err != nil {
		s.logger.Warn("Account service: cache write failed",
			"user_id", user.ID,
			"error", err.Error())
	}
}

func (s *Account) evict(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.logger.Warn("Account service: cache eviction failed",
			"user_id", userID,
			"error", err.Error())
	}
}

func (s *Account) removeObject(ctx context.Context, userID uuid.UUID, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Account service: failed to remove old avatar",
			"user_id", userID,
			"key", key,
			"error", err.Error())
	}
}
