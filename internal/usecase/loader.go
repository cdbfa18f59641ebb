package usecase

import (
	"context"
	"sync"
	"time"

	"retail-dashboard/internal/domain"

	"github.com/rs/zerolog"
)

// SnapshotLoader caches a single read of the transaction source.
// The snapshot is immutable once populated; callers must not modify the
// returned slice.
type SnapshotLoader struct {
	repo   TransactionRepository
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time

	mu       sync.Mutex
	snapshot []domain.Transaction
	loadedAt time.Time
	loaded   bool
}

// LoaderOption configures a SnapshotLoader.
type LoaderOption func(*SnapshotLoader)

// WithTTL expires the snapshot after d. Zero keeps it until Invalidate.
func WithTTL(d time.Duration) LoaderOption {
	return func(l *SnapshotLoader) { l.ttl = d }
}

// WithLogger sets the loader's logger.
func WithLogger(logger zerolog.Logger) LoaderOption {
	return func(l *SnapshotLoader) { l.logger = logger }
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *SnapshotLoader) { l.now = now }
}

// NewSnapshotLoader creates a loader over repo.
func NewSnapshotLoader(repo TransactionRepository, opts ...LoaderOption) *SnapshotLoader {
	l := &SnapshotLoader{
		repo:   repo,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the cached snapshot, fetching it from the repository on first
// use or after invalidation. Fetch failures are returned as
// *domain.DataSourceError and are not cached.
func (l *SnapshotLoader) Load(ctx context.Context) ([]domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		if l.ttl <= 0 || l.now().Sub(l.loadedAt) < l.ttl {
			l.logger.Debug().Int("records", len(l.snapshot)).Msg("snapshot cache hit")
			return l.snapshot, nil
		}
		l.logger.Info().Dur("ttl", l.ttl).Msg("snapshot expired")
	}

	started := l.now()
	records, err := l.repo.FetchAll(ctx)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to load transactions")
		return nil, &domain.DataSourceError{Op: "fetch_all", Err: err}
	}
	if records == nil {
		records = []domain.Transaction{}
	}

	l.snapshot = records
	l.loadedAt = l.now()
	l.loaded = true
	l.logger.Info().
		Int("records", len(records)).
		Dur("took", l.loadedAt.Sub(started)).
		Msg("snapshot loaded")
	return l.snapshot, nil
}

// Invalidate drops the cached snapshot so the next Load refetches.
func (l *SnapshotLoader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snapshot = nil
	l.loaded = false
	l.logger.Info().Msg("snapshot invalidated")
}
