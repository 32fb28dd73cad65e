package runner

import (
	"log/slog"

	"github.com/aretw0/lattice/internal/metrics"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMetrics reports progress to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithCheckpointEvery saves a snapshot every n generations or moves.
// Zero saves only when the run stops.
func WithCheckpointEvery(n int) Option {
	return func(r *Runner) {
		r.every = max(n, 0)
	}
}
