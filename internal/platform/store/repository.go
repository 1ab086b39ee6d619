// Package store provides the GORM unit-of-work repository shared by the feature adapters.
//
// A Repository stages entities with Add and writes them with SaveChanges in a
// single transaction. All returns the rows that are not soft-deleted, in
// insertion order.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// ErrNilEntity is returned by Add when the entity pointer is nil.
var ErrNilEntity = errors.New("entity is nil")

// Repository is a unit-of-work repository over a single GORM model.
// T must be a GORM model with CreatedAt and ID columns.
type Repository[T any] struct {
	db           *gorm.DB
	beforeInsert func(tx *gorm.DB, entity *T) error

	mu      sync.Mutex
	pending []*T
}

// Option configures a Repository.
type Option[T any] func(*Repository[T])

// WithBeforeInsert runs check inside the SaveChanges transaction before each
// entity is inserted. An error from check rolls back the whole batch and is
// returned by SaveChanges unchanged.
func WithBeforeInsert[T any](check func(tx *gorm.DB, entity *T) error) Option[T] {
	return func(r *Repository[T]) {
		r.beforeInsert = check
	}
}

// NewRepository creates a Repository for the model T.
func NewRepository[T any](db *gorm.DB, opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DB returns the underlying connection for model-specific queries.
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// Add stages an entity for insertion on the next SaveChanges.
// It fails when the database connection is unavailable.
func (r *Repository[T]) Add(ctx context.Context, entity *T) error {
	if entity == nil {
		return ErrNilEntity
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("connection unavailable: %w", err)
	}

	r.mu.Lock()
	r.pending = append(r.pending, entity)
	r.mu.Unlock()
	return nil
}

// SaveChanges inserts every staged entity in one transaction and returns the
// number of affected rows. The staged list is cleared whether or not the
// commit succeeds; on failure nothing from the batch is persisted.
func (r *Repository[T]) SaveChanges(ctx context.Context) (int64, error) {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(batch) == 0 {
		return 0, nil
	}

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range batch {
			if r.beforeInsert != nil {
				if err := r.beforeInsert(tx, e); err != nil {
					return err
				}
			}
			res := tx.Create(e)
			if res.Error != nil {
				return res.Error
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Pending returns the number of staged entities.
func (r *Repository[T]) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Discard drops every staged entity without writing it.
func (r *Repository[T]) Discard() {
	r.mu.Lock()
	r.pending = nil
	r.mu.Unlock()
}

// All returns every non-deleted row ordered by creation time, then id.
func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
