package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hillchallenge/hillboard/internal/domain/model"
	"github.com/hillchallenge/hillboard/pkg/metrics"
)

// defaultInitialCapacity sizes the backing slice before the first append.
const defaultInitialCapacity = 256

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialCapacity pre-sizes the in-memory log.
func WithInitialCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.initialCapacity = n
		}
	}
}

// MemStore is the in-memory Store adapter. Appends and scans are guarded by a
// single RWMutex; reads return copies so callers never share the backing slice.
type MemStore struct {
	mu              sync.RWMutex
	subs            []model.Submission
	initialCapacity int
}

// NewMemStore constructs an empty in-memory submission log.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		initialCapacity: defaultInitialCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.subs = make([]model.Submission, 0, s.initialCapacity)
	return s
}

// Append implements Store.Append.
func (s *MemStore) Append(ctx context.Context, sub model.Submission) (model.Submission, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreAppendLatency(float64(time.Since(start).Milliseconds()))
	}()

	sub.ID = uuid.NewString()

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	total := len(s.subs)
	s.mu.Unlock()

	metrics.UpdateSubmissionsTotal(total)
	return sub, nil
}

// All implements Store.All.
func (s *MemStore) All(ctx context.Context) ([]model.Submission, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreScanLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Submission, len(s.subs))
	copy(out, s.subs)
	return out, nil
}

// Count implements Store.Count.
func (s *MemStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs), nil
}

// Close implements Store.Close. The in-memory log has nothing to release.
func (s *MemStore) Close() error {
	return nil
}
