package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (User, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// UserCache caches users by id.
type UserCache interface {
	Get(ctx context.Context, id uuid.UUID) (User, error)
	Set(ctx context.Context, user User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a stored account.
type User struct {
	ID           uuid.UUID
	Email        string
	UserName     string
	PasswordHash []byte
	AvatarURL    string
	AvatarKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// UserUpdate is a partial update. Nil fields are left unchanged.
// Password carries the plain text from the client; services replace it with PasswordHash before it reaches a store.
type UserUpdate struct {
	Email        *string
	UserName     *string
	Password     *string
	PasswordHash []byte
	AvatarURL    *string
	AvatarKey    *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.UserName == nil && u.PasswordHash == nil && u.AvatarURL == nil && u.AvatarKey == nil
}

// RegisterParams contains parameters to register an account.
type RegisterParams struct {
	Email    string `validate:"required,email"`
	UserName string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=8,bcrypt"`
}
