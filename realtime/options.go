package realtime

import "go.uber.org/zap"

// Option applies configuration to a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records every tick into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithPublisher forwards a TickRecord to p after every tick.
func WithPublisher(p Publisher) Option {
	return func(r *Runner) {
		r.publisher = p
	}
}

// WithID overrides the generated runner ID used in logs and records.
func WithID(id string) Option {
	return func(r *Runner) {
		if id != "" {
			r.id = id
		}
	}
}
