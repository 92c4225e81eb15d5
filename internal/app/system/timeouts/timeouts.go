// Package timeouts holds the deadlines for MongoDB work done on behalf of
// a request or a background job.
package timeouts

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	// Ping bounds health check round trips.
	Ping = 2 * time.Second
	// Page bounds the store reads behind one rendered page.
	Page = 5 * time.Second
	// Job bounds a single background job run.
	Job = 2 * time.Minute
)

// WithTimeout derives a context bounded by timeout. The returned cancel
// logs a warning when the deadline was what ended operation.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
