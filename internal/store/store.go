// Package store holds the process-wide active snapshot.
//
// Readers call Snapshot and get an immutable index set. Reloading builds a
// complete new snapshot first and swaps the pointer, so in-flight readers keep
// the snapshot they started with.
package store

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/alexivanou/restcountries/internal/dataset"
	"github.com/alexivanou/restcountries/internal/index"
	"go.uber.org/zap"
)

// LoaderFunc produces a fresh dataset
type LoaderFunc func(ctx context.Context) (*dataset.Dataset, error)

// Store owns the active snapshot
type Store struct {
	current atomic.Pointer[index.Snapshot]
	loader  LoaderFunc
	opts    []index.Option
	logger  *zap.Logger
	reloads atomic.Int64
}

// New indexes ds and makes it the active snapshot.
// loader is used by Reload and Watch and may be nil when reloading is not needed.
func New(ds *dataset.Dataset, loader LoaderFunc, logger *zap.Logger, opts ...index.Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{loader: loader, opts: opts, logger: logger}
	s.current.Store(index.NewSnapshot(ds, opts...))
	return s
}

// Snapshot returns the active snapshot
func (s *Store) Snapshot() *index.Snapshot {
	return s.current.Load()
}

// Swap indexes ds and atomically replaces the active snapshot
func (s *Store) Swap(ds *dataset.Dataset) *index.Snapshot {
	snap := index.NewSnapshot(ds, s.opts...)
	s.current.Store(snap)
	s.reloads.Add(1)
	s.logger.Info("Dataset snapshot swapped",
		zap.Int("countries", snap.Countries.Len()),
		zap.Int("states", snap.Locations.StateCount()),
		zap.Int("cities", snap.Locations.CityCount()),
	)
	return snap
}

// Reload loads a new dataset and swaps it in.
// On failure the active snapshot is left untouched.
func (s *Store) Reload(ctx context.Context) error {
	if s.loader == nil {
		return fmt.Errorf("store has no loader configured")
	}
	ds, err := s.loader(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload dataset: %w", err)
	}
	s.Swap(ds)
	return nil
}

// Reloads returns how many times the snapshot has been swapped
func (s *Store) Reloads() int64 {
	return s.reloads.Load()
}
