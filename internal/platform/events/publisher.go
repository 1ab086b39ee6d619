// Package events publishes domain events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"news_backend/internal/feature/comments/domain/entity"
	"news_backend/internal/feature/comments/usecase"
)

// CommentCreatedSubject is the subject of the comment created event.
const CommentCreatedSubject = "comments.created"

// conn is the subset of *nats.Conn used by Publisher.
type conn interface {
	Publish(subj string, data []byte) error
	Drain() error
	IsClosed() bool
	Close()
}

// CommentCreatedPayload is the body of a comments.created message.
type CommentCreatedPayload struct {
	ID        string    `json:"id"`
	NewsID    string    `json:"news_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher publishes comment events over a NATS connection.
type Publisher struct {
	nc     conn
	logger *zap.Logger
}

var _ usecase.EventPublisher = (*Publisher)(nil)

// Connect dials NATS at url and returns a Publisher.
func Connect(url string, timeout time.Duration, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []nats.Option{
		nats.Name("news-comments"),
		nats.Timeout(timeout),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return newPublisher(nc, logger), nil
}

func newPublisher(nc conn, logger *zap.Logger) *Publisher {
	return &Publisher{nc: nc, logger: logger}
}

// PublishCommentCreated publishes a comments.created event for c.
func (p *Publisher) PublishCommentCreated(ctx context.Context, c *entity.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(CommentCreatedPayload{
		ID:        c.ID,
		NewsID:    c.NewsID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal comment for %s: %w", CommentCreatedSubject, err)
	}

	if err := p.nc.Publish(CommentCreatedSubject, data); err != nil {
		return fmt.Errorf("failed to publish NATS message for %s: %w", CommentCreatedSubject, err)
	}
	p.logger.Debug("published NATS message",
		zap.String("subject", CommentCreatedSubject),
		zap.String("comment_id", c.ID),
	)
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.nc == nil || p.nc.IsClosed() {
		return
	}
	// Drain flushes buffered messages before closing.
	if err := p.nc.Drain(); err != nil {
		p.logger.Error("error draining NATS connection", zap.Error(err))
	}
	p.nc.Close()
}
