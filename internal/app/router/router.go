// Package router builds the HTTP routes of the service.
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	commenthandler "news_backend/internal/feature/comments/transport/handler"
	platformhandler "news_backend/internal/platform/http/handler"
)

// NewRouter registers every route. metrics may be nil to skip /metrics.
func NewRouter(comments *commenthandler.CommentHandler, health *platformhandler.HealthHandler,
	metrics http.Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	// コメント
	r.POST("/news/:newsId/comments", comments.Create)
	r.GET("/comments", comments.List)

	return r
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
