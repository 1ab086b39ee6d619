// Command seed loads users and news items from a YAML fixture.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"news_backend/internal/config"
	newsadapters "news_backend/internal/feature/news/adapters"
	"news_backend/internal/feature/seed"
	useradapters "news_backend/internal/feature/users/adapters"
	"news_backend/internal/platform/cache"
	"news_backend/internal/platform/db"
	"news_backend/internal/platform/logger"
	infraredis "news_backend/internal/platform/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file or directory")
	fixturePath := flag.String("fixture", "configs/seed.yaml", "path to the seed fixture")
	cost := flag.Int("bcrypt-cost", bcrypt.DefaultCost, "bcrypt cost for seeded passwords")
	flag.Parse()

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

	fixture, err := seed.LoadFixture(*fixturePath)
	if err != nil {
		zl.Fatal("failed to load fixture", zap.String("path", *fixturePath), zap.Error(err))
	}

	// Seeding always migrates.
	cfg.Database.AutoMigrate = true
	gdb, err := db.Open(cfg.Database, zl)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}

	ctx := context.Background()
	newsRepo := newsadapters.NewNewsRepository(gdb)
	s := seed.NewSeeder(useradapters.NewUserRepository(gdb), newsRepo, *cost, zl)
	res, err := s.Seed(ctx, fixture)
	if err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}

	// Drop cached lookups so the service sees the new rows.
	if rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis, zl); err != nil {
		zl.Warn("Redis unavailable, cache not invalidated", zap.Error(err))
	} else if rdb != nil {
		defer func() { _ = rdb.Close() }()
		if err := cache.NewCachingNewsRepository(rdb, cfg.Redis.NewsTTL, newsRepo, "news").InvalidateAll(ctx); err != nil {
			zl.Warn("failed to invalidate news cache", zap.Error(err))
		}
	}

	zl.Info("seeded", zap.Int64("users", res.Users), zap.Int64("news", res.News))
}
