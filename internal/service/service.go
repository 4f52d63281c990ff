package service

import (
	"github.com/alexivanou/restcountries/internal/index"
)

// SnapshotSource provides the active dataset snapshot
type SnapshotSource interface {
	Snapshot() *index.Snapshot
}

// Service is the query engine. It holds no state of its own: every call reads
// the snapshot that is active when the call starts.
type Service struct {
	source SnapshotSource
}

// NewService creates a new service instance
func NewService(source SnapshotSource) *Service {
	return &Service{source: source}
}

// Static wraps a fixed snapshot as a SnapshotSource
type Static struct {
	snap *index.Snapshot
}

// NewStatic returns a source that always serves snap
func NewStatic(snap *index.Snapshot) Static {
	return Static{snap: snap}
}

// Snapshot returns the wrapped snapshot
func (s Static) Snapshot() *index.Snapshot {
	return s.snap
}
