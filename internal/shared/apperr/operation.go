package apperr

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrOperationFailed marks a storage or infrastructure failure that the
// caller may retry. The cause stays reachable through errors.Is/As.
var ErrOperationFailed = errors.New("operation failed, try again")

// OperationFailed wraps cause with ErrOperationFailed.
func OperationFailed(cause error) error {
	return fmt.Errorf("%w: %w", ErrOperationFailed, cause)
}

// WithTimeout bounds ctx by d. A non-positive d leaves ctx unbounded.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
