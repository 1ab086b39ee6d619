package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	newsdomain "news_backend/internal/feature/news/domain"
	"news_backend/internal/feature/news/domain/entity"
)

// mockNewsRepository is a NewsRepository mock for testing.
type mockNewsRepository struct {
	findFn func(ctx context.Context, id string) (*entity.News, error)
	calls  int
}

// FindByID calls the mock find function.
func (m *mockNewsRepository) FindByID(ctx context.Context, id string) (*entity.News, error) {
	m.calls++
	if m.findFn != nil {
		return m.findFn(ctx, id)
	}
	return nil, newsdomain.ErrNewsNotFound
}

func testNews() *entity.News {
	return &entity.News{
		ID:          "news-1",
		Title:       "First news title",
		Description: "First news description",
		UserID:      "1",
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func TestNewCachingNewsRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{name: "default values when zero/empty", expectedTTL: time.Minute, expectedNamespace: "news"},
		{name: "negative ttl uses default", ttl: -time.Minute, expectedTTL: time.Minute, expectedNamespace: "news"},
		{name: "custom values preserved", ttl: 10 * time.Minute, namespace: "custom", expectedTTL: 10 * time.Minute, expectedNamespace: "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingNewsRepository(nil, tt.ttl, &mockNewsRepository{}, tt.namespace)

			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

func TestCachingNewsRepository_FindByID_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockNewsRepository{
		findFn: func(ctx context.Context, id string) (*entity.News, error) { return testNews(), nil },
	}
	repo := NewCachingNewsRepository(nil, time.Minute, inner, "news")

	got, err := repo.FindByID(context.Background(), "news-1")

	require.NoError(t, err)
	assert.Equal(t, "news-1", got.ID)
	assert.Equal(t, 1, inner.calls)
}

func TestCachingNewsRepository_FindByID_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(testNews())
	mock.ExpectGet("news:news-1").SetVal(string(cachedJSON))

	inner := &mockNewsRepository{}
	repo := NewCachingNewsRepository(rdb, time.Minute, inner, "news")

	got, err := repo.FindByID(context.Background(), "news-1")

	require.NoError(t, err)
	assert.Equal(t, "First news title", got.Title)
	assert.Zero(t, inner.calls, "inner repository should not be called on cache hit")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingNewsRepository_FindByID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	n := testNews()
	expectedJSON, _ := json.Marshal(n)

	mock.ExpectGet("news:news-1").RedisNil()
	mock.ExpectSet("news:news-1", expectedJSON, time.Minute).SetVal("OK")

	inner := &mockNewsRepository{
		findFn: func(ctx context.Context, id string) (*entity.News, error) { return n, nil },
	}
	repo := NewCachingNewsRepository(rdb, time.Minute, inner, "news")

	got, err := repo.FindByID(context.Background(), "news-1")

	require.NoError(t, err)
	assert.Equal(t, n, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingNewsRepository_FindByID_NotFoundIsNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("news:missing").RedisNil()

	repo := NewCachingNewsRepository(rdb, time.Minute, &mockNewsRepository{}, "news")

	_, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, newsdomain.ErrNewsNotFound)
	assert.NoError(t, mock.ExpectationsWereMet(), "no SET expected for a miss")
}

func TestCachingNewsRepository_FindByID_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("news:news-1").RedisNil()

	inner := &mockNewsRepository{
		findFn: func(ctx context.Context, id string) (*entity.News, error) { return nil, expectedErr },
	}
	repo := NewCachingNewsRepository(rdb, time.Minute, inner, "news")

	_, err := repo.FindByID(context.Background(), "news-1")

	assert.ErrorIs(t, err, expectedErr)
}

func TestCachingNewsRepository_FindByID_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	n := testNews()
	expectedJSON, _ := json.Marshal(n)

	mock.ExpectGet("news:news-1").SetVal("invalid json")
	mock.ExpectDel("news:news-1").SetVal(1)
	mock.ExpectSet("news:news-1", expectedJSON, time.Minute).SetVal("OK")

	inner := &mockNewsRepository{
		findFn: func(ctx context.Context, id string) (*entity.News, error) { return n, nil },
	}
	repo := NewCachingNewsRepository(rdb, time.Minute, inner, "news")

	got, err := repo.FindByID(context.Background(), "news-1")

	require.NoError(t, err)
	assert.Equal(t, "news-1", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingNewsRepository_Invalidate(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("news:a", "news:b").SetVal(2)

	repo := NewCachingNewsRepository(rdb, time.Minute, &mockNewsRepository{}, "news")

	require.NoError(t, repo.Invalidate(context.Background(), "a", "b"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingNewsRepository_InvalidateAll(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "news:*", 200).SetVal([]string{"news:a", "news:b"}, 0)
	mock.ExpectDel("news:a", "news:b").SetVal(2)

	repo := NewCachingNewsRepository(rdb, time.Minute, &mockNewsRepository{}, "news")

	require.NoError(t, repo.InvalidateAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingNewsRepository_NilRedisInvalidation(t *testing.T) {
	t.Parallel()

	repo := NewCachingNewsRepository(nil, time.Minute, &mockNewsRepository{}, "news")

	assert.NoError(t, repo.Invalidate(context.Background(), "a"))
	assert.NoError(t, repo.InvalidateAll(context.Background()))
}

func TestCachingNewsRepository_Miniredis(t *testing.T) {
	rdb, mr := setupTestRedis(t)

	inner := &mockNewsRepository{
		findFn: func(ctx context.Context, id string) (*entity.News, error) { return testNews(), nil },
	}
	repo := NewCachingNewsRepository(rdb, time.Minute, inner, "news")
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "news-1")
	require.NoError(t, err)
	_, err = repo.FindByID(ctx, "news-1")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls, "second lookup should be served from cache")
	assert.True(t, mr.Exists("news:news-1"))
	assert.Equal(t, time.Minute, mr.TTL("news:news-1"))

	mr.FastForward(2 * time.Minute)

	_, err = repo.FindByID(ctx, "news-1")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "expired entry should be refetched")
}

func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"news-1", "news-1"},
		{"a b", "a_b"},
		{"key:value", "key_value"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, safe(tt.input))
		})
	}
}
