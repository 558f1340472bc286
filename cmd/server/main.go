package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	grpcctx "github.com/dtroode/lostfound/internal/api/grpc/context"
	"github.com/dtroode/lostfound/internal/api/grpc/router"
	grpcServer "github.com/dtroode/lostfound/internal/api/grpc/server"
	"github.com/dtroode/lostfound/internal/cache/redis"
	"github.com/dtroode/lostfound/internal/config"
	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/model"
	"github.com/dtroode/lostfound/internal/repository/postgres"
	"github.com/dtroode/lostfound/internal/server"
	"github.com/dtroode/lostfound/internal/service"
	storage "github.com/dtroode/lostfound/internal/storage/minio"
	"github.com/dtroode/lostfound/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	itemRepo := postgres.NewItemRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db.DB)

	var userCache model.UserCache
	if cfg.Redis.Addr != "" {
		redisClient, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		userCache = redis.NewUserCache(redisClient, cfg.Redis.TTL)
		logger.Info("user cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket, publicURL(cfg.Storage))
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, cfg.JWT.RefreshTTL, logger)

	services := router.Services{
		Auth:          service.NewAuth(userRepo, tokenService, logger),
		Account:       service.NewAccount(userRepo, itemRepo, userCache, storageClient, tokenService, cfg.Avatar.MaxBytes, logger),
		Items:         service.NewItem(itemRepo, logger),
		Notifications: service.NewNotification(itemRepo, notificationRepo, logger),
		Tokens:        tokenService,
	}

	r := router.New(services, grpcctx.NewManager(), maxMessageBytes(cfg.Avatar.MaxBytes), logger)
	srv := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))
	sl := server.NewSecurityLayer(cfg.GRPC)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "tls", cfg.GRPC.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// publicURL falls back to the MinIO endpoint when no public address is set.
func publicURL(cfg config.Storage) string {
	if cfg.PublicURL != "" {
		return cfg.PublicURL
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}

// maxMessageBytes leaves room for a base64 encoded avatar plus the envelope.
func maxMessageBytes(maxAvatar int64) int {
	return int(maxAvatar/3*4) + 64<<10
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
