// Package metrics exposes Prometheus counters for the comment service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"news_backend/internal/feature/comments/usecase"
)

// Manager holds the service's Prometheus metrics on a private registry.
type Manager struct {
	Registry              *prometheus.Registry
	CommentsCreatedTotal  prometheus.Counter
	CommentsRejectedTotal *prometheus.CounterVec
}

var _ usecase.Metrics = (*Manager)(nil)

// NewManager creates and registers the metrics under namespace.
func NewManager(namespace string) *Manager {
	registry := prometheus.NewRegistry()

	created := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments created.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_rejected_total",
		Help:      "Total number of comment creations that failed, by reason.",
	}, []string{"reason"})

	registry.MustRegister(
		created,
		rejected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:              registry,
		CommentsCreatedTotal:  created,
		CommentsRejectedTotal: rejected,
	}
}

// CommentCreated counts a stored comment.
func (m *Manager) CommentCreated() {
	m.CommentsCreatedTotal.Inc()
}

// CommentRejected counts a failed creation.
func (m *Manager) CommentRejected(reason string) {
	m.CommentsRejectedTotal.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
