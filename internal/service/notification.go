package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/model"
)

// Notification pairs lost items with found ones and records a notification
// for both owners.
type Notification struct {
	itemStore         model.ItemStore
	notificationStore model.NotificationStore
	logger            *logger.Logger
}

func NewNotification(itemStore model.ItemStore, notificationStore model.NotificationStore, logger *logger.Logger) *Notification {
	return &Notification{
		itemStore:         itemStore,
		notificationStore: notificationStore,
		logger:            logger,
	}
}

// Match looks for counterparts of the given items and returns how many new
// notifications were recorded. Item ids not owned by userID are ignored.
func (s *Notification) Match(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}

	items, err := s.itemStore.GetByIDs(ctx, itemIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to get items: %w", err)
	}

	now := time.Now()
	var pending []model.MatchNotification
	for _, item := range items {
		if !ownedBy(item, userID) {
			continue
		}

		candidates, err := s.itemStore.FindCandidates(ctx, item.Type.Opposite(), item.Category, userID)
		if err != nil {
			return 0, fmt.Errorf("failed to find candidates for item %s: %w", item.ID, err)
		}

		for _, c := range candidates {
			pending = append(pending,
				model.MatchNotification{
					UserID: userID, ItemID: item.ID, MatchedItemID: c.ID,
					ItemName: item.Name, MatchedName: c.Name, Category: item.Category, CreatedAt: now,
				},
				model.MatchNotification{
					UserID: c.OwnerID, ItemID: c.ID, MatchedItemID: item.ID,
					ItemName: c.Name, MatchedName: item.Name, Category: c.Category, CreatedAt: now,
				},
			)
		}
	}

	if len(pending) == 0 {
		return 0, nil
	}

	saved, err := s.notificationStore.Save(ctx, pending)
	if err != nil {
		return 0, fmt.Errorf("failed to save notifications: %w", err)
	}

	if saved > 0 {
		s.logger.Info("Notification service: matches recorded",
			"user_id", userID,
			"items", len(items),
			"new", saved)
	}

	return saved, nil
}

// List returns the notifications of userID, newest first.
func (s *Notification) List(ctx context.Context, userID uuid.UUID) ([]model.MatchNotification, error) {
	list, err := s.notificationStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, nil
}
