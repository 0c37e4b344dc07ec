package remote

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	berrors "go.etcd.io/bbolt/errors"
)

// RetryConfig configures retries when a remote repository is locked by another process.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	JitterFraction float64 // 0.0 to 1.0
}

// DefaultRetryConfig returns sensible retry defaults.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 250 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		JitterFraction: 0.25,
	}
}

// isTransient returns true for errors that are worth retrying.
// Only a held database lock qualifies; a missing or broken repository does not.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, berrors.ErrTimeout)
}

// backoff computes the delay for the given attempt with jitter.
func (c *RetryConfig) backoff(attempt int) time.Duration {
	base := float64(c.InitialBackoff) * math.Pow(2, float64(attempt))
	if base > float64(c.MaxBackoff) {
		base = float64(c.MaxBackoff)
	}
	jitter := base * c.JitterFraction * (rand.Float64()*2 - 1) // +/- jitter
	d := time.Duration(base + jitter)
	if d < 0 {
		d = 0
	}
	return d
}

// sleep waits for the given duration or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retry executes fn, retrying transient errors with exponential backoff.
func (c *RetryConfig) retry(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isTransient(lastErr) {
			return lastErr
		}
		if attempt < c.MaxRetries {
			if err := sleep(ctx, c.backoff(attempt)); err != nil {
				return fmt.Errorf("%s: %w (retry cancelled)", operation, lastErr)
			}
		}
	}
	return fmt.Errorf("%s: %w (after %d retries)", operation, lastErr, c.MaxRetries)
}

// Open opens the repository at path like OpenLocal, retrying while another
// process holds its database lock. A nil cfg uses DefaultRetryConfig.
func Open(ctx context.Context, path string, cfg *RetryConfig) (*LocalClient, error) {
	if cfg == nil {
		cfg = DefaultRetryConfig()
	}
	var client *LocalClient
	err := cfg.retry(ctx, "open remote", func() error {
		var err error
		client, err = OpenLocal(path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
