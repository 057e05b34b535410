package source

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Retrying wraps a Source with an exponential backoff policy.
// The adapter itself never retries; callers opt in through configuration.
type Retrying struct {
	source     Source
	retries    uint64
	newBackOff func() backoff.BackOff
	logger     *zap.Logger
}

// RetryOption customises a Retrying source.
type RetryOption func(*Retrying)

// WithBackOff replaces the default exponential policy.
func WithBackOff(fn func() backoff.BackOff) RetryOption {
	return func(r *Retrying) {
		r.newBackOff = fn
	}
}

// NewRetrying wraps src so that temporary failures are retried up to retries times.
func NewRetrying(src Source, retries uint64, logger *zap.Logger, opts ...RetryOption) *Retrying {
	r := &Retrying{
		source:     src,
		retries:    retries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		logger:     logger.Named("source_retry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch calls the wrapped source until it succeeds, fails permanently or the
// retry budget is spent.
func (r *Retrying) Fetch(ctx context.Context) (*Result, error) {
	var result *Result
	attempt := 0

	operation := func() error {
		attempt++
		res, err := r.source.Fetch(ctx)
		if err != nil {
			var fe *FetchError
			if errors.As(err, &fe) && !fe.Temporary() {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.retries), ctx)
	err := backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		r.logger.Warn("Fetch failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
