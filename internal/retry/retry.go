// ejournal/internal/retry/retry.go

package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Policy is a bounded fixed-interval retry: Attempts tries, Interval between
// them. It exists for the database connection at boot (5 попыток по 5 секунд),
// not as a general resilience layer.
type Policy struct {
	Attempts int
	Interval time.Duration
}

// Do runs fn until it succeeds or the attempts are exhausted. The context
// cancels the wait between attempts, not fn itself.
func (p Policy) Do(ctx context.Context, op string, fn func() error) error {
	if p.Attempts <= 0 {
		p.Attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		slog.Warn("Операция не удалась, повтор", "op", op, "attempt", attempt, "of", p.Attempts, "error", lastErr)

		if attempt == p.Attempts {
			break
		}
		select {
		case <-time.After(p.Interval):
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		}
	}
	return fmt.Errorf("%s: попытки исчерпаны (%d): %w", op, p.Attempts, lastErr)
}
