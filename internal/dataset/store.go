package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrUnavailable wraps every load failure surfaced by a Store, so callers
// can map it to a single user-visible "data unavailable" outcome.
var ErrUnavailable = errors.New("dataset unavailable")

// State describes a Store's lifecycle position.
type State string

const (
	// StateAwaiting means no load has been attempted yet.
	StateAwaiting State = "awaiting"
	// StateReady means the dataset loaded and is immutable for the rest of
	// the process lifetime.
	StateReady State = "ready"
	// StateFailed means the single load attempt failed; the failure is
	// memoized and reported on every subsequent access.
	StateFailed State = "failed"
)

// Status reports a Store's state and, when failed, the human-readable cause.
type Status struct {
	State    State     `json:"state"`
	Cause    string    `json:"cause,omitempty"`
	LoadedAt time.Time `json:"loaded_at"`
	Records  int       `json:"records"`
}

// Store memoizes a single workbook load keyed by its fixed path. The load
// runs lazily on first access and its outcome, success or failure, holds for
// the remainder of the process. There is no invalidation; a restart is the
// only way to re-read the workbook.
type Store struct {
	path   string
	sheet  string
	logger *slog.Logger

	mu       sync.Mutex
	loaded   bool
	dataset  *Dataset
	err      error
	loadedAt time.Time
}

// NewStore creates a store for the workbook at the configured path.
func NewStore(path, sheet string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		sheet:  sheet,
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// Dataset returns the enriched dataset, loading it on first call. Failure is
// memoized: every later call returns the same ErrUnavailable-wrapped error
// without touching the filesystem again.
func (s *Store) Dataset(ctx context.Context) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.loaded = true
		d, err := Load(s.path, s.sheet, s.logger)
		if err != nil {
			s.err = fmt.Errorf("%w: %v", ErrUnavailable, err)
			s.logger.ErrorContext(ctx, "dataset load failed",
				slog.String("path", s.path),
				slog.String("error", err.Error()))
		} else {
			s.dataset = d
			s.loadedAt = time.Now()
		}
	}

	if s.err != nil {
		return nil, s.err
	}
	return s.dataset, nil
}

// Status reports the store's lifecycle state without triggering a load.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case !s.loaded:
		return Status{State: StateAwaiting}
	case s.err != nil:
		return Status{State: StateFailed, Cause: s.err.Error()}
	default:
		return Status{
			State:    StateReady,
			LoadedAt: s.loadedAt,
			Records:  s.dataset.Len(),
		}
	}
}
