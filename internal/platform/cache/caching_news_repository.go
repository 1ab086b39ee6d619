// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"news_backend/internal/feature/comments/usecase"
	"news_backend/internal/feature/news/domain/entity"
)

// DefaultNewsTTL is used when no positive TTL is given.
const DefaultNewsTTL = time.Minute

// CachingNewsRepository decorates a NewsRepository with Redis caching.
// Only found news items are cached; lookups of unknown ids always reach the
// underlying repository.
type CachingNewsRepository struct {
	inner     usecase.NewsRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.NewsRepository = (*CachingNewsRepository)(nil)

// NewCachingNewsRepository decorates a NewsRepository with Redis caching.
// If ttl is 0, it defaults to one minute. If namespace is empty, it uses "news".
func NewCachingNewsRepository(rdb *redis.Client, ttl time.Duration, inner usecase.NewsRepository, namespace string) *CachingNewsRepository {
	if ttl <= 0 {
		ttl = DefaultNewsTTL
	}
	if namespace == "" {
		namespace = "news"
	}
	return &CachingNewsRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByID retrieves a news item, checking cache first then falling back to the database.
func (c *CachingNewsRepository) FindByID(ctx context.Context, id string) (*entity.News, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.News
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Invalidate removes the cached entries of the given news ids.
func (c *CachingNewsRepository) Invalidate(ctx context.Context, ids ...string) error {
	if c.rdb == nil || len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, c.cacheKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// InvalidateAll removes every news entry in the namespace.
func (c *CachingNewsRepository) InvalidateAll(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":*")
}

// cacheKey generates the cache key of a news item.
func (c *CachingNewsRepository) cacheKey(id string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(id))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingNewsRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
