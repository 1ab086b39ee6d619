// Package adapters provides repository implementations for the comments feature.
package adapters

import (
	"fmt"

	"gorm.io/gorm"

	"news_backend/internal/feature/comments/domain/entity"
	"news_backend/internal/feature/comments/usecase"
	newsdomain "news_backend/internal/feature/news/domain"
	newsentity "news_backend/internal/feature/news/domain/entity"
	"news_backend/internal/platform/store"
)

// commentGorm is the GORM implementation of usecase.CommentRepository.
type commentGorm struct {
	*store.Repository[entity.Comment]
}

var _ usecase.CommentRepository = (*commentGorm)(nil)

// NewCommentRepository creates a comment repository backed by db.
// SaveChanges refuses comments whose news item is missing or soft-deleted
// at commit time, returning an error that wraps newsdomain.ErrNewsNotFound.
func NewCommentRepository(db *gorm.DB) *commentGorm {
	return &commentGorm{
		Repository: store.NewRepository[entity.Comment](db, store.WithBeforeInsert(requireLiveNews)),
	}
}

// requireLiveNews checks, inside the insert transaction, that the comment's
// news item exists and is not soft-deleted.
func requireLiveNews(tx *gorm.DB, c *entity.Comment) error {
	var n int64
	if err := tx.Model(&newsentity.News{}).Where("id = ?", c.NewsID).Count(&n).Error; err != nil {
		return fmt.Errorf("check news %s: %w", c.NewsID, err)
	}
	if n == 0 {
		return fmt.Errorf("news %s: %w", c.NewsID, newsdomain.ErrNewsNotFound)
	}
	return nil
}
