package resolve

import (
	"time"

	"github.com/brownkon/StarWarsApp/pkg/logger"
)

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithConcurrency caps simultaneous per-identifier fetches.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithItemTimeout bounds each per-identifier fetch. A fetch exceeding
// the bound counts as a resolution failure for that item only.
func WithItemTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		if timeout > 0 {
			r.itemTimeout = timeout
		}
	}
}

// WithLogger sets a custom logger for the resolver.
func WithLogger(log logger.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.logger = log
		}
	}
}
