package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NotificationStore persists match notifications.
type NotificationStore interface {
	// Save stores notifications, skipping pairs that were already recorded, and returns how many were new.
	Save(ctx context.Context, notifications []MatchNotification) (int, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]MatchNotification, error)
}

// MatchNotification tells a user that one of their items may match another user's item.
type MatchNotification struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ItemID        uuid.UUID
	MatchedItemID uuid.UUID
	ItemName      string
	MatchedName   string
	Category      string
	CreatedAt     time.Time
}
