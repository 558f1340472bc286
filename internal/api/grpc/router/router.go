package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/dtroode/lostfound/internal/api/grpc/handler"
	"github.com/dtroode/lostfound/internal/api/grpc/middleware"
	"github.com/dtroode/lostfound/internal/api/grpc/rpc"
	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/model"
)

// Services groups the business services exposed over gRPC.
type Services struct {
	Auth          handler.AuthService
	Account       handler.AccountService
	Items         handler.ItemService
	Notifications handler.NotificationService
	Tokens        middleware.TokenService
}

// Router builds the lost and found gRPC server.
type Router struct {
	services        Services
	contextManager  model.ContextManager
	maxMessageBytes int
	logger          *logger.Logger
}

// New creates new gRPC Router instance. maxMessageBytes bounds incoming
// messages and must leave room for a base64 encoded avatar; zero keeps the
// gRPC default.
func New(services Services, contextManager model.ContextManager, maxMessageBytes int, logger *logger.Logger) *Router {
	return &Router{
		services:        services,
		contextManager:  contextManager,
		maxMessageBytes: maxMessageBytes,
		logger:          logger,
	}
}

// authSkip selects the calls that need a bearer token: everything outside
// the Auth service.
func authSkip(_ context.Context, c interceptors.CallMeta) bool {
	return !strings.HasPrefix(c.FullMethod(), "/"+rpc.AuthServiceName+"/")
}

// Register creates the gRPC server with logging and authentication
// interceptors and registers every service on it.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.services.Tokens, r.contextManager, r.logger)

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
		grpc.ChainStreamInterceptor(
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
	}
	if r.maxMessageBytes > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(r.maxMessageBytes))
	}

	s := grpc.NewServer(opts...)
	rpc.RegisterAuthServer(s, handler.NewAuth(r.services.Auth, r.logger))
	rpc.RegisterAccountServer(s, handler.NewAccount(r.services.Account, r.contextManager, r.logger))
	rpc.RegisterItemsServer(s, handler.NewItems(r.services.Items, r.contextManager, r.logger))
	rpc.RegisterNotificationsServer(s, handler.NewNotifications(r.services.Notifications, r.contextManager, r.logger))

	return s
}
