// Package adapters provides repository implementations for the news feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"news_backend/internal/feature/news/domain"
	"news_backend/internal/feature/news/domain/entity"
	"news_backend/internal/platform/store"
)

// newsGorm stores news items with GORM.
type newsGorm struct {
	*store.Repository[entity.News]
}

// NewNewsRepository creates a news repository backed by db.
func NewNewsRepository(db *gorm.DB) *newsGorm {
	return &newsGorm{Repository: store.NewRepository[entity.News](db)}
}

// FindByID returns the non-deleted news item with the given id.
// It returns domain.ErrNewsNotFound when no such item exists.
func (r *newsGorm) FindByID(ctx context.Context, id string) (*entity.News, error) {
	var n entity.News
	if err := r.DB().WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNewsNotFound
		}
		return nil, err
	}
	return &n, nil
}
