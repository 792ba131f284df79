// Package storage is the persistence gateway. Data lives in named buckets
// of raw JSON; typed access goes through Load and Save, which deliberately
// swallow storage problems and fall back to defaults so a broken disk or a
// corrupt row degrades the app instead of crashing it.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// Bucket names. Each bucket holds one JSON document.
const (
	BucketTransactions = "finance-tracker-transactions"
	BucketGoals        = "finance-tracker-goals"
	BucketCreditCards  = "finance-tracker-credit-cards"
	BucketBudgets      = "finance-tracker-budgets"
	BucketRecurrences  = "finance-tracker-recurrences"
	BucketSettings     = "finance-tracker-settings"
)

var ErrBucketNotFound = errors.New("bucket not found")

// Store is the raw bucket port. Get returns ErrBucketNotFound for buckets
// that were never written.
type Store interface {
	Get(ctx context.Context, bucket string) ([]byte, error)
	Put(ctx context.Context, bucket string, data []byte) error
	Close() error
}

// Load reads and decodes a bucket. Absence, read failures and corrupt
// JSON all yield the fallback; failures other than absence are logged so
// they stay visible without breaking the caller.
func Load[T any](ctx context.Context, s Store, logger *slog.Logger, bucket string, fallback T) T {
	raw, err := s.Get(ctx, bucket)
	if err != nil {
		if !errors.Is(err, ErrBucketNotFound) {
			logger.Warn("bucket read failed, using default", "bucket", bucket, "error", err)
		}
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("bucket corrupt, using default", "bucket", bucket, "error", err)
		return fallback
	}
	return v
}

// Save encodes and writes a bucket. Failures are logged and reported, but
// callers on the read/aggregate path are free to ignore the error.
func Save[T any](ctx context.Context, s Store, logger *slog.Logger, bucket string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Error("bucket encode failed", "bucket", bucket, "error", err)
		return err
	}
	if err := s.Put(ctx, bucket, raw); err != nil {
		logger.Error("bucket write failed", "bucket", bucket, "error", err)
		return err
	}
	return nil
}
