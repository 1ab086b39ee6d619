// Package usecase implements the business logic for news comments.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"news_backend/internal/feature/comments/domain"
	"news_backend/internal/feature/comments/domain/entity"
	newsdomain "news_backend/internal/feature/news/domain"
)

const (
	// MaxContentLength is the maximum number of characters in a comment.
	MaxContentLength = 2000
)

// Rejection reasons reported to Metrics.
const (
	reasonInvalidInput = "invalid_input"
	reasonNewsNotFound = "news_not_found"
	reasonStorage      = "storage"
)

// CommentUsecase creates comments on existing news items.
type CommentUsecase struct {
	comments  CommentRepository
	news      NewsRepository
	publisher EventPublisher
	metrics   Metrics
	logger    *zap.Logger

	// saveMu keeps Add and SaveChanges of one comment together;
	// the repository stages entities in a list shared by all callers.
	saveMu sync.Mutex
}

// NewCommentUsecase creates a CommentUsecase.
// publisher, metrics and logger are optional and may be nil.
func NewCommentUsecase(comments CommentRepository, news NewsRepository, publisher EventPublisher, metrics Metrics, logger *zap.Logger) *CommentUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentUsecase{
		comments:  comments,
		news:      news,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.Named("comments"),
	}
}

// validateInput checks the identifiers and the content of a new comment.
func validateInput(newsID, userID, content string) error {
	if strings.TrimSpace(newsID) == "" {
		return &domain.ValidationError{Field: "news_id", Message: "news id must not be empty"}
	}
	if strings.TrimSpace(userID) == "" {
		return &domain.ValidationError{Field: "user_id", Message: "user id must not be empty"}
	}
	if strings.TrimSpace(content) == "" {
		return &domain.ValidationError{Field: "content", Message: "content must not be empty"}
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return &domain.ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content must be at most %d characters long", MaxContentLength),
		}
	}
	return nil
}

// CreateComment persists a new comment on the news item newsID and returns its id.
//
// It returns *domain.ValidationError when an input is empty or the news item
// does not exist (or is soft-deleted), and *domain.StorageError when the store
// fails. Nothing is retried.
func (u *CommentUsecase) CreateComment(ctx context.Context, newsID, userID, content string) (string, error) {
	if err := validateInput(newsID, userID, content); err != nil {
		u.reject(reasonInvalidInput)
		return "", err
	}

	if _, err := u.news.FindByID(ctx, newsID); err != nil {
		if errors.Is(err, newsdomain.ErrNewsNotFound) {
			return "", u.newsNotFound(newsID, err)
		}
		u.reject(reasonStorage)
		u.logger.Error("failed to look up news", zap.String("news_id", newsID), zap.Error(err))
		return "", &domain.StorageError{Op: "find news", Err: err}
	}

	comment := &entity.Comment{
		NewsID:    newsID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := u.persist(ctx, comment); err != nil {
		// The news item can disappear between the lookup and the commit,
		// and a cached lookup may not see a recent soft delete.
		if errors.Is(err, newsdomain.ErrNewsNotFound) {
			return "", u.newsNotFound(newsID, err)
		}
		u.reject(reasonStorage)
		u.logger.Error("failed to persist comment", zap.String("news_id", newsID), zap.Error(err))
		return "", err
	}

	if u.metrics != nil {
		u.metrics.CommentCreated()
	}
	u.logger.Info("comment created",
		zap.String("comment_id", comment.ID),
		zap.String("news_id", newsID),
		zap.String("user_id", userID),
	)

	if u.publisher != nil {
		if err := u.publisher.PublishCommentCreated(ctx, comment); err != nil {
			// The comment is already committed; the event is best effort.
			u.logger.Warn("failed to publish comment event", zap.String("comment_id", comment.ID), zap.Error(err))
		}
	}

	return comment.ID, nil
}

// persist runs the add-and-save sequence for one comment.
func (u *CommentUsecase) persist(ctx context.Context, comment *entity.Comment) error {
	u.saveMu.Lock()
	defer u.saveMu.Unlock()

	if err := u.comments.Add(ctx, comment); err != nil {
		return &domain.StorageError{Op: "add comment", Err: err}
	}
	if _, err := u.comments.SaveChanges(ctx); err != nil {
		return &domain.StorageError{Op: "save comments", Err: err}
	}
	return nil
}

// ListComments returns every non-deleted comment in insertion order.
func (u *CommentUsecase) ListComments(ctx context.Context) ([]entity.Comment, error) {
	cs, err := u.comments.All(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "list comments", Err: err}
	}
	return cs, nil
}

// newsNotFound records and builds the rejection for a missing news item.
func (u *CommentUsecase) newsNotFound(newsID string, err error) error {
	u.reject(reasonNewsNotFound)
	u.logger.Info("comment rejected: news not found", zap.String("news_id", newsID))
	return &domain.ValidationError{
		Field:   "news_id",
		Message: fmt.Sprintf(domain.MsgNewsNotFound, newsID),
		Err:     err,
	}
}

func (u *CommentUsecase) reject(reason string) {
	if u.metrics != nil {
		u.metrics.CommentRejected(reason)
	}
}
