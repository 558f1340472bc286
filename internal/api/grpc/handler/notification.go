package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/dtroode/lostfound/internal/api/grpc/rpc"
	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/model"
)

// NotificationService defines match notification operations.
type NotificationService interface {
	Match(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.MatchNotification, error)
}

// Notifications handles gRPC endpoints for match notifications.
type Notifications struct {
	notificationService NotificationService
	contextManager      model.ContextManager
	logger              *logger.Logger
}

var _ rpc.NotificationsServer = (*Notifications)(nil)

// NewNotifications creates a new Notifications handler.
func NewNotifications(notificationService NotificationService, contextManager model.ContextManager, logger *logger.Logger) *Notifications {
	return &Notifications{
		notificationService: notificationService,
		contextManager:      contextManager,
		logger:              logger,
	}
}

// Match looks for counterparts of the given items and records notifications
// for both owners.
func (h *Notifications) Match(ctx context.Context, req *rpc.MatchRequest) (*rpc.MatchResponse, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid item id %q", raw)
		}
		itemIDs = append(itemIDs, id)
	}

	created, err := h.notificationService.Match(ctx, userID, itemIDs)
	if err != nil {
		h.logger.Error("Notifications handler: match failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Notifications handler: match completed",
		"user_id", userID,
		"items", len(itemIDs),
		"created", created)

	return &rpc.MatchResponse{Created: created}, nil
}

// List returns the caller's notifications, newest first.
func (h *Notifications) List(ctx context.Context, _ *emptypb.Empty) (*rpc.NotificationList, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	notifications, err := h.notificationService.List(ctx, userID)
	if err != nil {
		h.logger.Error("Notifications handler: list failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := &rpc.NotificationList{Notifications: make([]rpc.Notification, 0, len(notifications))}
	for _, n := range notifications {
		out.Notifications = append(out.Notifications, rpc.Notification{
			ID:            n.ID.String(),
			ItemID:        n.ItemID.String(),
			MatchedItemID: n.MatchedItemID.String(),
			ItemName:      n.ItemName,
			MatchedName:   n.MatchedName,
			Category:      n.Category,
			CreatedAt:     n.CreatedAt,
		})
	}

	return out, nil
}
