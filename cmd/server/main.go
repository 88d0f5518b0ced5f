// Command server starts the shelfmark bookmark manager HTTP API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/akarneev/shelfmark/internal/config"
	"github.com/akarneev/shelfmark/internal/metadata"
	"github.com/akarneev/shelfmark/internal/migrate"
	"github.com/akarneev/shelfmark/internal/repository/postgres"
	"github.com/akarneev/shelfmark/internal/server/httpapi"
	"github.com/akarneev/shelfmark/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Server.Addr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.Database.DSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.Database.DSN, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal("postgres pool", zap.Error(err))
	}
	defer db.Close()

	// Optional page-metadata cache; the fetcher works without it.
	var cache metadata.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, metadata cache disabled", zap.Error(err))
		} else {
			cache = metadata.NewRedisCache(rdb, cfg.Metadata.CacheTTL, logger)
		}
	}

	profileRepo := postgres.NewProfileRepo(db)
	bookmarkRepo := postgres.NewBookmarkRepo(db)

	fetcher := metadata.NewFetcher(cfg.Metadata.FetchTimeout, cfg.Metadata.MaxBodyBytes, cache, logger)
	profileSvc := service.NewProfileService(profileRepo)
	bookmarkSvc := service.NewBookmarkService(bookmarkRepo, profileRepo, fetcher)

	srv := httpapi.New(cfg.Server, cfg.Auth, logger, profileSvc, bookmarkSvc, db.Pool)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
