// Package redis caches users in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dtroode/lostfound/internal/model"
)

const keyPrefix = "lostfound:user"

// redisAPI is the subset of *redis.Client the cache needs.
type redisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// entry is the cached form of a user. The password hash is never cached.
type entry struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	UserName  string     `json:"userName"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	AvatarKey string     `json:"avatarKey,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

var _ model.UserCache = (*UserCache)(nil)

// UserCache is a read-through cache of users keyed by id.
type UserCache struct {
	client redisAPI
	ttl    time.Duration
}

// Connect opens a client and checks the server answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// NewUserCache creates a cache on top of client whose entries live for ttl.
func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	return newUserCache(client, ttl)
}

func newUserCache(client redisAPI, ttl time.Duration) *UserCache {
	return &UserCache{client: client, ttl: ttl}
}

func buildKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:id:%s", keyPrefix, id)
}

// Get returns model.ErrNotFound on a cache miss.
func (c *UserCache) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	data, err := c.client.Get(ctx, buildKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return model.User{}, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return model.User{
		ID:        e.ID,
		Email:     e.Email,
		UserName:  e.UserName,
		AvatarURL: e.AvatarURL,
		AvatarKey: e.AvatarKey,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		DeletedAt: e.DeletedAt,
	}, nil
}

func (c *UserCache) Set(ctx context.Context, user model.User) error {
	data, err := json.Marshal(entry{
		ID:        user.ID,
		Email:     user.Email,
		UserName:  user.UserName,
		AvatarURL: user.AvatarURL,
		AvatarKey: user.AvatarKey,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		DeletedAt: user.DeletedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, buildKey(user.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

func (c *UserCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, buildKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}
