package storage

import (
	"context"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// RetryConfig controls how often a dataset read is repeated after a
// transient failure such as a torn read
type RetryConfig struct {
	MaxAttempts         int           `json:"max_attempts" yaml:"max_attempts"`
	InitialInterval     time.Duration `json:"initial_interval" yaml:"initial_interval"`
	MaxInterval         time.Duration `json:"max_interval" yaml:"max_interval"`
	Multiplier          float64       `json:"multiplier" yaml:"multiplier"`
	RandomizationFactor float64       `json:"randomization_factor" yaml:"randomization_factor"`
}

// DefaultRetryConfig returns the settings used for cold-start loads. A
// deploy that rewrites the dataset finishes well within the window.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:         4,
		InitialInterval:     50 * time.Millisecond,
		MaxInterval:         time.Second,
		Multiplier:          2.0,
		RandomizationFactor: 0.2,
	}
}

func (c *RetryConfig) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.InitialInterval
	b.MaxInterval = c.MaxInterval
	b.Multiplier = c.Multiplier
	b.RandomizationFactor = c.RandomizationFactor
	b.MaxElapsedTime = 0

	retries := 0
	if c.MaxAttempts > 1 {
		retries = c.MaxAttempts - 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// RereadingFileStorage repeats reads that fail transiently. Missing or
// invalid datasets fail on the first attempt.
type RereadingFileStorage struct {
	storage FileStorage
	config  *RetryConfig
	logger  logrus.FieldLogger
}

// NewRereadingFileStorage wraps storage. A nil config uses DefaultRetryConfig
// and a nil logger discards retry notices.
func NewRereadingFileStorage(storage FileStorage, config *RetryConfig, logger logrus.FieldLogger) *RereadingFileStorage {
	if config == nil {
		config = DefaultRetryConfig()
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &RereadingFileStorage{
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

// Retrieve implements FileStorage.Retrieve
func (r *RereadingFileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	return reread(ctx, r, key, "read", func() ([]byte, error) {
		return r.storage.Retrieve(ctx, key)
	})
}

// GetMetadata implements FileStorage.GetMetadata
func (r *RereadingFileStorage) GetMetadata(ctx context.Context, key string) (*FileMetadata, error) {
	return reread(ctx, r, key, "stat", func() (*FileMetadata, error) {
		return r.storage.GetMetadata(ctx, key)
	})
}

// Close implements FileStorage.Close
func (r *RereadingFileStorage) Close() error {
	return r.storage.Close()
}

func reread[T any](ctx context.Context, r *RereadingFileStorage, key, op string, fn func() (T, error)) (T, error) {
	attempt := 0
	operation := func() (T, error) {
		var zero T
		if err := ctx.Err(); err != nil {
			return zero, backoff.Permanent(err)
		}

		attempt++
		result, err := fn()
		if err != nil && !IsTransient(err) {
			return zero, backoff.Permanent(err)
		}
		return result, err
	}

	notify := func(err error, next time.Duration) {
		r.logger.WithFields(logrus.Fields{
			"key":     key,
			"op":      op,
			"attempt": attempt,
			"retry":   next.String(),
		}).WithError(err).Warn("Dataset read failed, reading again")
	}

	return backoff.RetryNotifyWithData(operation, r.config.backOff(ctx), notify)
}
