// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"news_backend/internal/feature/comments/usecase"
	newsadapters "news_backend/internal/feature/news/adapters"
	"news_backend/internal/platform/cache"
)

// NewNewsRepository creates the NewsRepository used by the comment usecase.
// If Redis is available, lookups are cached for ttl.
// Otherwise, the GORM repository is queried directly.
func NewNewsRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.NewsRepository {
	repo := newsadapters.NewNewsRepository(db)
	if rdb != nil {
		return cache.NewCachingNewsRepository(rdb, ttl, repo, "news")
	}
	return repo
}
