package utils

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultMaxRetries = 2
	DefaultRetryDelay = 2 * time.Second
)

type RetryConfig struct {
	MaxRetries int
	Delay      time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxRetries: DefaultMaxRetries, Delay: DefaultRetryDelay}
}

// IsRetryable reports whether an error looks transient: timeouts, connection
// failures, missing responses and 5xx statuses are retried; everything else
// (most prominently 4xx provider responses) is fatal.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.StatusCode == 0 || pe.StatusCode >= 500
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var oe *net.OpError
	if errors.As(err, &oe) {
		return true
	}
	// url.Error from an http.Client is always transport-level: a 4xx/5xx
	// body still produces a nil error from Do.
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	return false
}

// Retry runs op up to cfg.MaxRetries+1 times, sleeping cfg.Delay between
// attempts. Non-retryable failures abort immediately. The last observed error
// is returned verbatim; this layer never swallows anything.
func Retry[T any](ctx context.Context, cfg RetryConfig, logger *zap.Logger, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultRetryDelay
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Info("retrying request",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", cfg.Delay))
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(cfg.Delay):
			}
		} else {
			logger.Debug("executing request", zap.Int("attempt", attempt+1))
		}

		value, err := op(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			logger.Warn("request failed with non-retryable error", zap.Error(err))
			return zero, err
		}
		logger.Warn("request failed",
			zap.Int("attempt", attempt+1),
			zap.Int("retries_left", cfg.MaxRetries-attempt),
			zap.Error(err))
	}
	return zero, lastErr
}
