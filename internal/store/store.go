// Package store owns the in-memory expense collection and mediates every
// create, read, update, and delete against the remote backend.
package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"outlay/internal/model"
)

// Remote is the backend surface the store needs. Implemented by api.Client.
type Remote interface {
	ListExpenses(ctx context.Context) ([]model.Expense, error)
	CreateExpense(ctx context.Context, d model.Draft) (model.Expense, error)
	UpdateExpense(ctx context.Context, id string, d model.Draft) (model.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

// Snapshotter persists the last-known collection so fetch failures can
// degrade to stale data. Optional.
type Snapshotter interface {
	Save(expenses []model.Expense) error
	Load() ([]model.Expense, error)
}

// Store is the single source of truth for the expense collection. All
// mutating operations reconcile the server's authoritative echo into local
// state; each response applies independently, last write wins.
type Store struct {
	mu       sync.RWMutex
	remote   Remote
	snap     Snapshotter
	log      *slog.Logger
	expenses []model.Expense
	loading  bool
	fetchErr error
	stale    bool
}

// New creates a store. snap and logger may be nil.
func New(remote Remote, snap Snapshotter, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{remote: remote, snap: snap, log: logger}
}

// FetchAll replaces the collection with the remote one. A failed fetch is
// recoverable: it is logged and recorded, the existing collection stays
// untouched, and the loading flag clears on both paths. When the fetch
// fails and nothing is held locally yet, the last snapshot is served as
// stale data.
func (s *Store) FetchAll(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	fetched, err := s.remote.ListExpenses(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.fetchErr = err
		s.log.Error("fetching expenses", "err", err)
		if len(s.expenses) == 0 && s.snap != nil {
			cached, cerr := s.snap.Load()
			if cerr != nil {
				s.log.Warn("loading snapshot", "err", cerr)
				return
			}
			if len(cached) > 0 {
				s.expenses = cached
				s.stale = true
				s.log.Info("serving cached snapshot", "records", len(cached))
			}
		}
		return
	}

	s.fetchErr = nil
	s.stale = false
	s.expenses = fetched

	if s.snap != nil {
		if serr := s.snap.Save(fetched); serr != nil {
			s.log.Warn("saving snapshot", "err", serr)
		}
	}
}

// Create validates the draft, sends it, and prepends the server's
// authoritative echo. The draft itself is never inserted, so
// server-assigned fields like the ID are always present. Failures leave
// the collection unchanged and propagate to the caller.
func (s *Store) Create(ctx context.Context, d model.Draft) (model.Expense, error) {
	if err := d.Validate(); err != nil {
		return model.Expense{}, err
	}

	created, err := s.remote.CreateExpense(ctx, d)
	if err != nil {
		return model.Expense{}, fmt.Errorf("creating expense: %w", err)
	}

	s.mu.Lock()
	s.removeLocked(created.ID)
	s.expenses = append([]model.Expense{created}, s.expenses...)
	s.mu.Unlock()

	return created, nil
}

// Update sends the draft for id and replaces the matching local record
// with the authoritative echo. When no local record matches (the write
// landed remotely but the mirror never held the record) the whole
// collection is refetched instead of leaving the mirror short.
func (s *Store) Update(ctx context.Context, id string, d model.Draft) (model.Expense, error) {
	if err := d.Validate(); err != nil {
		return model.Expense{}, err
	}

	updated, err := s.remote.UpdateExpense(ctx, id, d)
	if err != nil {
		return model.Expense{}, fmt.Errorf("updating expense %q: %w", id, err)
	}

	s.mu.Lock()
	replaced := false
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses[i] = updated
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if !replaced {
		s.log.Warn("updated record missing locally, refetching", "id", id)
		s.FetchAll(ctx)
	}

	return updated, nil
}

// Remove deletes the record remotely, then drops it from local state.
// Failures (including a 404 for an already-deleted id) leave local state
// unchanged and propagate to the caller.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.remote.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("removing expense %q: %w", id, err)
	}

	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()

	return nil
}

// removeLocked filters id out of the collection. Caller holds s.mu.
func (s *Store) removeLocked(id string) {
	n := 0
	for _, e := range s.expenses {
		if e.ID != id {
			s.expenses[n] = e
			n++
		}
	}
	s.expenses = s.expenses[:n]
}

// Expenses returns a copy of the current collection.
func (s *Store) Expenses() []model.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Len returns the number of records currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.expenses)
}

// Loading reports whether a FetchAll is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// FetchErr returns the error from the most recent FetchAll, nil after a
// successful fetch.
func (s *Store) FetchErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchErr
}

// Stale reports whether the collection was served from the local snapshot
// rather than the backend.
func (s *Store) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}
