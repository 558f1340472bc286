package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/dtroode/lostfound/internal/api/grpc/rpc"
	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/model"
)

// ItemService defines operations on the caller's items.
type ItemService interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Item, error)
	Create(ctx context.Context, params model.CreateItemParams) (model.Item, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

// Items handles gRPC endpoints for lost and found items.
type Items struct {
	itemService    ItemService
	contextManager model.ContextManager
	logger         *logger.Logger
}

var _ rpc.ItemsServer = (*Items)(nil)

// NewItems creates a new Items handler.
func NewItems(itemService ItemService, contextManager model.ContextManager, logger *logger.Logger) *Items {
	return &Items{
		itemService:    itemService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// ListMine returns every item the caller posted.
func (h *Items) ListMine(ctx context.Context, _ *emptypb.Empty) (*rpc.ItemList, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	items, err := h.itemService.ListMine(ctx, userID)
	if err != nil {
		h.logger.Error("Items handler: list items failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := &rpc.ItemList{Items: make([]rpc.Item, 0, len(items))}
	for _, item := range items {
		out.Items = append(out.Items, toItem(item))
	}

	h.logger.Debug("Items handler: items listed",
		"user_id", userID,
		"count", len(out.Items))

	return out, nil
}

// Create posts an item owned by the caller.
func (h *Items) Create(ctx context.Context, req *rpc.CreateItemRequest) (*rpc.Item, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	itemType, err := model.ParseItemType(req.ItemType)
	if err != nil {
		return nil, handleError(err)
	}

	lostAt, err := parseDate(req.Date)
	if err != nil {
		return nil, handleError(err)
	}

	item, err := h.itemService.Create(ctx, model.CreateItemParams{
		OwnerID:     userID,
		Type:        itemType,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Location: model.Location{
			Text: req.Location.Text,
			Lat:  req.Location.Lat,
			Lng:  req.Location.Lng,
		},
		LostAt:   lostAt,
		ImageURL: req.ImgURL,
	})
	if err != nil {
		h.logger.Error("Items handler: create item failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Items handler: item created",
		"user_id", userID,
		"item_id", item.ID,
		"type", item.Type)

	out := toItem(item)
	return &out, nil
}

// Delete removes one of the caller's items.
func (h *Items) Delete(ctx context.Context, req *rpc.ItemRequest) (*emptypb.Empty, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	itemID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid item id")
	}

	if err := h.itemService.Delete(ctx, userID, itemID); err != nil {
		h.logger.Error("Items handler: delete item failed",
			"user_id", userID,
			"item_id", itemID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Items handler: item deleted",
		"user_id", userID,
		"item_id", itemID)

	return &emptypb.Empty{}, nil
}

// parseDate accepts an RFC 3339 timestamp or a plain date.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: date %q is not a valid date", model.ErrInvalidArgument, raw)
}

func toItem(item model.Item) rpc.Item {
	out := rpc.Item{
		ID:          item.ID.String(),
		UserID:      item.LegacyUserID,
		ItemType:    string(item.Type),
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Location: rpc.Location{
			Text: item.Location.Text,
			Lat:  item.Location.Lat,
			Lng:  item.Location.Lng,
		},
		ImgURL: item.ImageURL,
	}
	if item.OwnerID != uuid.Nil {
		out.Owner = item.OwnerID.String()
	}
	if item.LostAt != nil {
		out.Date = item.LostAt.UTC().Format(time.RFC3339)
	}
	return out
}
