package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/dtroode/lostfound/internal/api/grpc/rpc"
	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/model"
)

// AuthService defines registration, login and session token operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.User, error)
	Login(ctx context.Context, email, password string) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Auth handles gRPC endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

var _ rpc.AuthServer = (*Auth)(nil)

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// Register creates an account.
func (h *Auth) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.User, error) {
	h.logger.Debug("Auth handler: processing registration request",
		"email", req.Email)

	user, err := h.authService.Register(ctx, model.RegisterParams{
		Email:    req.Email,
		UserName: req.UserName,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: registration completed",
		"user_id", user.ID)

	return toUser(user), nil
}

// Login exchanges credentials for a token pair.
func (h *Auth) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.TokenPair, error) {
	h.logger.Debug("Auth handler: processing login request",
		"email", req.Email)

	pair, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: login completed",
		"email", req.Email)

	return toTokenPair(pair), nil
}

// Refresh rotates a refresh token.
func (h *Auth) Refresh(ctx context.Context, req *rpc.RefreshRequest) (*rpc.TokenPair, error) {
	h.logger.Debug("Auth handler: processing token refresh request")

	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	pair, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: token refresh successful")

	return toTokenPair(pair), nil
}

// Logout revokes the session the refresh token belongs to.
func (h *Auth) Logout(ctx context.Context, req *rpc.RefreshRequest) (*emptypb.Empty, error) {
	h.logger.Debug("Auth handler: processing logout request")

	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	if err := h.authService.Logout(ctx, req.RefreshToken); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: logout successful")

	return &emptypb.Empty{}, nil
}

func toTokenPair(pair model.TokenPair) *rpc.TokenPair {
	return &rpc.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}

func toUser(user model.User) *rpc.User {
	return &rpc.User{
		ID:        user.ID.String(),
		Email:     user.Email,
		UserName:  user.UserName,
		AvatarURL: user.AvatarURL,
	}
}
