package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/model"
)

// Item manages the items a user posted.
type Item struct {
	itemStore model.ItemStore
	logger    *logger.Logger
}

func NewItem(itemStore model.ItemStore, logger *logger.Logger) *Item {
	return &Item{
		itemStore: itemStore,
		logger:    logger,
	}
}

// ListMine returns the items owned by userID.
func (s *Item) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Item, error) {
	items, err := s.itemStore.GetByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	return items, nil
}

// Create posts a new item owned by params.OwnerID.
func (s *Item) Create(ctx context.Context, params model.CreateItemParams) (model.Item, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Category = strings.TrimSpace(params.Category)

	if err := validateStruct(params); err != nil {
		return model.Item{}, err
	}
	if _, err := model.ParseItemType(string(params.Type)); err != nil {
		return model.Item{}, err
	}
	if (params.Location.Lat == nil) != (params.Location.Lng == nil) {
		return model.Item{}, fmt.Errorf("%w: location needs both latitude and longitude", model.ErrInvalidArgument)
	}

	now := time.Now()
	item, err := s.itemStore.Create(ctx, model.Item{
		ID:          uuid.New(),
		OwnerID:     params.OwnerID,
		Type:        params.Type,
		Name:        params.Name,
		Description: params.Description,
		Category:    params.Category,
		Location:    params.Location,
		LostAt:      params.LostAt,
		ImageURL:    params.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("Item service: item created",
		"user_id", params.OwnerID,
		"item_id", item.ID,
		"type", item.Type)

	return item, nil
}

// Delete removes an item of userID. Items of other users are reported as not found.
func (s *Item) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.itemStore.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get item: %w", err)
	}

	if !ownedBy(item, userID) {
		s.logger.Warn("Item service: delete of foreign item",
			"user_id", userID,
			"item_id", itemID)
		return model.ErrNotFound
	}

	if err := s.itemStore.SoftDelete(ctx, itemID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.logger.Info("Item service: item deleted",
		"user_id", userID,
		"item_id", itemID)

	return nil
}

func ownedBy(item model.Item, userID uuid.UUID) bool {
	if item.OwnerID == userID {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(item.LegacyUserID), userID.String())
}
