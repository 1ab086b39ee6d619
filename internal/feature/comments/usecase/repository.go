package usecase

import (
	"context"

	"news_backend/internal/feature/comments/domain/entity"
	newsentity "news_backend/internal/feature/news/domain/entity"
)

// CommentRepository abstracts the comment store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CommentRepository interface {
	// Add stages a comment for insertion.
	Add(ctx context.Context, comment *entity.Comment) error

	// SaveChanges commits staged comments and returns the number of inserted rows.
	SaveChanges(ctx context.Context) (int64, error)

	// All returns the non-deleted comments in insertion order.
	All(ctx context.Context) ([]entity.Comment, error)
}

// NewsRepository looks up the news items that comments attach to.
type NewsRepository interface {
	// FindByID returns the non-deleted news item with the given id.
	// It returns domain.ErrNewsNotFound from the news feature when none exists.
	FindByID(ctx context.Context, id string) (*newsentity.News, error)
}

// EventPublisher announces persisted comments to other services.
type EventPublisher interface {
	PublishCommentCreated(ctx context.Context, comment *entity.Comment) error
}

// Metrics records comment creation outcomes.
type Metrics interface {
	CommentCreated()
	CommentRejected(reason string)
}
