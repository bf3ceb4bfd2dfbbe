// Package repository defines the submission log store interface and its
// adapters. The store is the system of record for all participant activity:
// append-only, atomic single-record inserts, and every read reflects current
// persisted state.
package repository

import (
	"context"

	"github.com/hillchallenge/hillboard/internal/domain/model"
)

// Store provides append and full-scan access to the submission log.
type Store interface {
	// Append inserts one validated submission as a single atomic write and
	// returns the stored record with its assigned ID.
	Append(ctx context.Context, sub model.Submission) (model.Submission, error)

	// All returns every submission in append order. The result is a fresh
	// copy of current persisted state on each call, never a cached view.
	All(ctx context.Context) ([]model.Submission, error)

	// Count returns the number of records in the log.
	Count(ctx context.Context) (int, error)

	// Close releases the backing resources.
	Close() error
}
