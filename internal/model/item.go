package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItemStore defines persistence operations for lost and found items.
type ItemStore interface {
	Create(ctx context.Context, item Item) (Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (Item, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]Item, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)
	FindCandidates(ctx context.Context, itemType ItemType, category string, excludeOwner uuid.UUID) ([]Item, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	SoftDeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

// ItemType enumerates item kinds.
type ItemType string

const (
	// ItemTypeLost is an item reported lost by its owner.
	ItemTypeLost ItemType = "lost"
	// ItemTypeFound is an item reported found by its owner.
	ItemTypeFound ItemType = "found"
)

// ParseItemType normalizes raw input into an ItemType.
func ParseItemType(raw string) (ItemType, error) {
	switch t := ItemType(strings.ToLower(strings.TrimSpace(raw))); t {
	case ItemTypeLost, ItemTypeFound:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown item type %q", ErrInvalidArgument, raw)
	}
}

// Opposite returns the type a match has to be of.
func (t ItemType) Opposite() ItemType {
	if t == ItemTypeLost {
		return ItemTypeFound
	}
	return ItemTypeLost
}

// Item represents a posted lost or found item.
type Item struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	LegacyUserID string
	Type         ItemType
	Name         string
	Description  string
	Category     string
	Location     Location
	LostAt       *time.Time
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Location is either a free-form place or a coordinate pair.
type Location struct {
	Text string
	Lat  *float64
	Lng  *float64
}

// HasCoordinates reports whether the location carries a coordinate pair.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

// CreateItemParams contains parameters to create an item.
type CreateItemParams struct {
	OwnerID     uuid.UUID
	Type        ItemType
	Name        string `validate:"required,max=255"`
	Description string `validate:"max=2000"`
	Category    string `validate:"required,max=100"`
	Location    Location
	LostAt      *time.Time
	ImageURL    string `validate:"omitempty,url"`
}
