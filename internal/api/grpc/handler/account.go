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

// AccountService defines operations on the caller's own account.
type AccountService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (model.User, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, declaredType string) (string, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, update model.UserUpdate) (model.User, error)
	DeleteMe(ctx context.Context, userID uuid.UUID) error
}

// Account handles gRPC endpoints for the authenticated account.
type Account struct {
	accountService AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

var _ rpc.AccountServer = (*Account)(nil)

// NewAccount creates a new Account handler.
func NewAccount(accountService AccountService, contextManager model.ContextManager, logger *logger.Logger) *Account {
	return &Account{
		accountService: accountService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// GetMe returns the caller's account.
func (h *Account) GetMe(ctx context.Context, _ *emptypb.Empty) (*rpc.User, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	user, err := h.accountService.GetMe(ctx, userID)
	if err != nil {
		h.logger.Error("Account handler: get account failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toUser(user), nil
}

// UploadAvatar stores an image and returns its public address. The account
// is not changed until the address is sent with UpdateMe.
func (h *Account) UploadAvatar(ctx context.Context, req *rpc.UploadAvatarRequest) (*rpc.UploadAvatarResponse, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Account handler: processing avatar upload",
		"user_id", userID,
		"file_name", req.FileName,
		"size", len(req.Data))

	if len(req.Data) == 0 {
		return nil, status.Error(codes.InvalidArgument, "image data is required")
	}

	url, err := h.accountService.UploadAvatar(ctx, userID, req.Data, req.ContentType)
	if err != nil {
		h.logger.Error("Account handler: avatar upload failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Account handler: avatar uploaded",
		"user_id", userID)

	return &rpc.UploadAvatarResponse{URL: url}, nil
}

// UpdateMe applies a partial update to the caller's account.
func (h *Account) UpdateMe(ctx context.Context, req *rpc.UpdateMeRequest) (*rpc.User, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Account handler: processing account update",
		"user_id", userID,
		"email", req.Email != nil,
		"user_name", req.UserName != nil,
		"password", req.Password != nil,
		"avatar", req.AvatarURL != nil)

	user, err := h.accountService.UpdateMe(ctx, userID, model.UserUpdate{
		Email:     req.Email,
		UserName:  req.UserName,
		Password:  req.Password,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		h.logger.Error("Account handler: account update failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Account handler: account updated",
		"user_id", userID)

	return toUser(user), nil
}

// DeleteMe deletes the caller's account and ends all of its sessions.
func (h *Account) DeleteMe(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	if err := h.accountService.DeleteMe(ctx, userID); err != nil {
		h.logger.Error("Account handler: account deletion failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Account handler: account deleted",
		"user_id", userID)

	return &emptypb.Empty{}, nil
}

func userIDFromContext(ctx context.Context, contextManager model.ContextManager) (uuid.UUID, error) {
	userID, ok := contextManager.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}
	return userID, nil
}
