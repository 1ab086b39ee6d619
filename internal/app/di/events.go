package di

import (
	"go.uber.org/zap"

	"news_backend/internal/config"
	"news_backend/internal/feature/comments/usecase"
	"news_backend/internal/platform/events"
)

// NewPublisher connects the comment event publisher. With no NATS URL
// configured it returns a nil publisher and a no-op close function.
func NewPublisher(cfg config.NATSConfig, logger *zap.Logger) (usecase.EventPublisher, func(), error) {
	if cfg.URL == "" {
		logger.Info("NATS URL not configured, comment events are not published")
		return nil, func() {}, nil
	}
	p, err := events.Connect(cfg.URL, cfg.ConnectTimeout, logger)
	if err != nil {
		return nil, func() {}, err
	}
	return p, p.Close, nil
}
