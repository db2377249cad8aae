package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/decompose/internal/logging"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/ports"
)

// Retry defaults.
const (
	DefaultAttempts = 10
	DefaultDelay    = 10 * time.Second
)

// Retrier retries a wrapped oracle.
type Retrier struct {
	next     ports.Oracle
	attempts int
	delay    time.Duration
	logger   *slog.Logger
}

// RetryOption configures a Retrier.
type RetryOption func(*Retrier)

// WithAttempts sets the total number of attempts (minimum 1).
func WithAttempts(n int) RetryOption {
	return func(r *Retrier) {
		if n > 0 {
			r.attempts = n
		}
	}
}

// WithDelay sets the pause between attempts.
func WithDelay(d time.Duration) RetryOption {
	return func(r *Retrier) {
		if d >= 0 {
			r.delay = d
		}
	}
}

// WithLogger sets the logger used to report failed attempts.
func WithLogger(logger *slog.Logger) RetryOption {
	return func(r *Retrier) {
		r.logger = logger
	}
}

// Retry wraps next with the retry policy.
func Retry(next ports.Oracle, opts ...RetryOption) *Retrier {
	r := &Retrier{
		next:     next,
		attempts: DefaultAttempts,
		delay:    DefaultDelay,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond implements ports.Oracle.
func (r *Retrier) Respond(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := r.next.Respond(ctx, prompt)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == r.attempts {
			break
		}
		r.logger.Warn("Oracle call failed, retrying",
			"attempt", attempt,
			"max_attempts", r.attempts,
			"delay", r.delay,
			"error", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.delay):
		}
	}
	return "", fmt.Errorf("%w after %d attempts: %w", domain.ErrOracleExhausted, r.attempts, lastErr)
}
