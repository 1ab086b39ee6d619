package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"news_backend/internal/app/di"
	"news_backend/internal/app/router"
	"news_backend/internal/config"
	commentadapters "news_backend/internal/feature/comments/adapters"
	commenthandler "news_backend/internal/feature/comments/transport/handler"
	commentusecase "news_backend/internal/feature/comments/usecase"
	"news_backend/internal/platform/db"
	platformhandler "news_backend/internal/platform/http/handler"
	"news_backend/internal/platform/logger"
	"news_backend/internal/platform/metrics"
	infraredis "news_backend/internal/platform/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file or directory")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.Database, zl)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis, zl)
	if err != nil {
		zl.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				zl.Error("failed to close Redis client", zap.Error(err))
			}
		}()
	}

	// NATS
	publisher, closePublisher, err := di.NewPublisher(cfg.NATS, zl)
	if err != nil {
		zl.Warn("NATS unavailable, comment events are not published", zap.Error(err))
		publisher = nil
	}
	defer closePublisher()

	m := metrics.NewManager("news")

	// Repository
	commentRepo := commentadapters.NewCommentRepository(gdb)
	newsRepo := di.NewNewsRepository(rdb, gdb, cfg.Redis.NewsTTL)

	// Usecase
	commentUC := commentusecase.NewCommentUsecase(commentRepo, newsRepo, publisher, m, zl)

	// Handler
	checks := map[string]platformhandler.Check{
		"database": func(ctx context.Context) error { return sqlDB.PingContext(ctx) },
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	health := platformhandler.NewHealthHandler(checks)
	commentH := commenthandler.NewCommentHandler(commentUC, zl)

	r := router.NewRouter(commentH, health, m.Handler(), zl)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
