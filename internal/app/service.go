// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	repository "github.com/hillchallenge/hillboard/internal/adapters/repository"
	"github.com/hillchallenge/hillboard/internal/config"
	"github.com/hillchallenge/hillboard/internal/domain/board"
	"github.com/hillchallenge/hillboard/internal/domain/catalog"
	"github.com/hillchallenge/hillboard/internal/domain/model"
	"github.com/hillchallenge/hillboard/internal/domain/validate"
	"github.com/hillchallenge/hillboard/pkg/logger"
	"github.com/hillchallenge/hillboard/pkg/metrics"
)

// Service implements the API dependencies for the hill challenge tracker.
// Every submission passes through validation before it reaches the log, and
// every read view is aggregated from a fresh scan of the log.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog   *catalog.Catalog
	validator *validate.Validator
	store     repository.Store
	engine    *board.Engine

	// Configuration
	catalogPath       string
	storeKind         string
	sqlitePath        string
	defaultStravaLink string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalogPath sets the hill catalog file to load on start.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.catalogPath = path
		}
	}
}

// WithCatalog injects a preloaded catalog, skipping the file load on start.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *Service) {
		if cat != nil {
			s.catalog = cat
		}
	}
}

// WithStoreKind selects the submission log backend.
func WithStoreKind(kind string) Option {
	return func(s *Service) {
		if kind != "" {
			s.storeKind = kind
		}
	}
}

// WithSQLitePath sets the database file used by the sqlite backend.
func WithSQLitePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.sqlitePath = path
		}
	}
}

// WithStore injects a ready store, overriding the configured backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDefaultStravaLink sets the sentinel recorded for absent links.
func WithDefaultStravaLink(link string) Option {
	return func(s *Service) {
		if link != "" {
			s.defaultStravaLink = link
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalogPath:       "assets/hills.json",
		storeKind:         config.StoreMemory,
		sqlitePath:        "hillboard.db",
		defaultStravaLink: validate.DefaultStravaLink,
		logger:            nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting hill challenge service...")

	if s.catalog == nil {
		cat, err := catalog.Load(s.catalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		s.catalog = cat
	}
	s.logger.Info(ctx, "hill catalog loaded",
		logger.Int("hills", s.catalog.Size()),
	)

	if s.store == nil {
		switch s.storeKind {
		case config.StoreSQLite:
			store, err := repository.NewSQLiteStore(ctx, s.sqlitePath)
			if err != nil {
				return fmt.Errorf("open sqlite store: %w", err)
			}
			s.store = store
			s.logger.Info(ctx, "using sqlite store",
				logger.String("path", s.sqlitePath),
			)
		default:
			s.store = repository.NewMemStore()
			s.logger.Info(ctx, "using in-memory store")
		}
	}

	s.validator = validate.New(s.catalog,
		validate.WithDefaultStravaLink(s.defaultStravaLink),
	)
	s.engine = board.New(s.store, s.catalog)

	s.started = true
	s.logger.Info(ctx, "hill challenge service started",
		logger.Int("hills", s.catalog.Size()),
		logger.String("store", s.storeKind),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping hill challenge service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "store close failed",
				logger.Error(err),
			)
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "hill challenge service stopped")
}

// SubmitCandidate validates a raw submission and appends it to the log.
// Validation failures leave the log untouched.
func (s *Service) SubmitCandidate(ctx context.Context, c model.CandidateSubmission) (model.Submission, error) {
	sub, err := s.validator.Validate(c)
	if err != nil {
		s.logger.Debug(ctx, "submission rejected",
			logger.String("email", c.Email),
			logger.String("location", c.Location),
			logger.Error(err),
		)
		return model.Submission{}, err
	}

	stored, err := s.store.Append(ctx, sub)
	if err != nil {
		return model.Submission{}, err
	}

	s.logger.Debug(ctx, "submission accepted",
		logger.String("id", stored.ID),
		logger.String("email", stored.Email),
		logger.String("location", stored.Location),
		logger.Int("reps", stored.Repetitions),
	)
	return stored, nil
}

// Snapshot builds all four aggregated views from one read of the log.
func (s *Service) Snapshot(ctx context.Context, topK int) (board.Snapshot, error) {
	return s.engine.BuildSnapshot(ctx, topK)
}

// Coverage returns participants ranked by distinct locations covered.
func (s *Service) Coverage(ctx context.Context) ([]board.CoverageRow, error) {
	return s.engine.Coverage(ctx)
}

// TopPerLocation returns the top k participants by total reps per location.
func (s *Service) TopPerLocation(ctx context.Context, k int) ([]board.TopRepsRow, error) {
	return s.engine.TopPerLocation(ctx, k)
}

// TotalVertical returns participants ranked by accumulated vertical feet.
func (s *Service) TotalVertical(ctx context.Context, limit int) ([]board.VerticalRow, error) {
	return s.engine.TotalVertical(ctx, limit)
}

// LocationStatus returns the hilled versus not-hilled breakdown.
func (s *Service) LocationStatus(ctx context.Context) ([]board.StatusRow, error) {
	return s.engine.LocationStatus(ctx)
}

// ParticipantLocations returns the per-location report for one email.
func (s *Service) ParticipantLocations(ctx context.Context, email string) (board.ParticipantReport, error) {
	return s.engine.ParticipantLocations(ctx, email)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
		"store":   s.storeKind,
	}

	if s.started {
		stats["hills"] = s.catalog.Size()
		if count, err := s.store.Count(ctx); err == nil {
			stats["submissions"] = count
			metrics.UpdateSubmissionsTotal(count)
		}
	}

	return stats
}
