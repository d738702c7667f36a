package internal

import (
	"context"
	"time"
)

const defaultOperationTimeout = 5 * time.Second

// WithTimeout wraps ctx with a deadline, falling back to the default when
// the caller passes a non-positive duration.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = defaultOperationTimeout
	}
	return context.WithTimeout(ctx, duration)
}
