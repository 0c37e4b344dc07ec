package remote

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	berrors "go.etcd.io/bbolt/errors"
)

func fastRetry(maxRetries int) *RetryConfig {
	return &RetryConfig{
		MaxRetries:     maxRetries,
		InitialBackoff: 1 * time.Millisecond,
		MaxBackoff:     10 * time.Millisecond,
		JitterFraction: 0.0,
	}
}

func TestIsTransient_NilError(t *testing.T) {
	assert.False(t, isTransient(nil))
}

func TestIsTransient_LockTimeout(t *testing.T) {
	err := fmt.Errorf("open remote state: %w", berrors.ErrTimeout)
	assert.True(t, isTransient(err))
}

func TestIsTransient_OtherErrors(t *testing.T) {
	assert.False(t, isTransient(errors.New("permission denied")))
	assert.False(t, isTransient(ErrBranchMoved))
	assert.False(t, isTransient(context.Canceled))
}

func TestRetryConfig_Backoff(t *testing.T) {
	cfg := &RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		JitterFraction: 0.0, // no jitter for deterministic test
	}

	assert.Equal(t, 100*time.Millisecond, cfg.backoff(0))
	assert.Equal(t, 200*time.Millisecond, cfg.backoff(1))
	assert.Equal(t, 400*time.Millisecond, cfg.backoff(2))
}

func TestRetryConfig_BackoffCapped(t *testing.T) {
	cfg := &RetryConfig{
		MaxRetries:     10,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     5 * time.Second,
		JitterFraction: 0.0,
	}

	assert.Equal(t, 5*time.Second, cfg.backoff(10))
}

func TestRetryConfig_RetrySuccess(t *testing.T) {
	attempts := 0
	err := fastRetry(3).retry(context.Background(), "test", func() error {
		attempts++
		if attempts < 3 {
			return berrors.ErrTimeout
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryConfig_RetryExhausted(t *testing.T) {
	attempts := 0
	err := fastRetry(2).retry(context.Background(), "test", func() error {
		attempts++
		return berrors.ErrTimeout
	})

	assert.ErrorIs(t, err, berrors.ErrTimeout)
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.Equal(t, 3, attempts) // initial + 2 retries
}

func TestRetryConfig_NoRetryOnPermanentError(t *testing.T) {
	attempts := 0
	err := fastRetry(3).retry(context.Background(), "test", func() error {
		attempts++
		return errors.New("not a repository")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryConfig_ContextCancellation(t *testing.T) {
	cfg := &RetryConfig{
		MaxRetries:     5,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     10 * time.Second,
		JitterFraction: 0.0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := cfg.retry(ctx, "test", func() error {
		return berrors.ErrTimeout
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "retry cancelled")
}

func TestSleep_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleep(ctx, 10*time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSleep_Normal(t *testing.T) {
	err := sleep(context.Background(), 1*time.Millisecond)
	assert.NoError(t, err)
}
