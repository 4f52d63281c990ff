// Package index builds the immutable lookup structures the query engine reads.
//
// A Snapshot is built once from a dataset and never changes; callers may share
// it between any number of goroutines without locking.
package index

import (
	"time"

	"github.com/alexivanou/restcountries/internal/dataset"
)

// Snapshot pairs the two indexes built from one dataset
type Snapshot struct {
	Countries *CountryIndex
	Locations *LocationIndex
	BuiltAt   time.Time
}

// Option configures snapshot construction
type Option func(*options)

type options struct {
	fold Folder
}

// WithAccentFolding makes name comparisons ignore diacritics
func WithAccentFolding() Option {
	return func(o *options) {
		o.fold = FoldAccents
	}
}

// WithFolder sets a custom name normalization
func WithFolder(f Folder) Option {
	return func(o *options) {
		o.fold = f
	}
}

// NewSnapshot indexes ds. ds must not be modified afterwards.
func NewSnapshot(ds *dataset.Dataset, opts ...Option) *Snapshot {
	o := &options{fold: FoldCase}
	for _, opt := range opts {
		opt(o)
	}

	countries := NewCountryIndex(ds.Countries, o.fold)
	return &Snapshot{
		Countries: countries,
		Locations: NewLocationIndex(ds.States, ds.Cities, countries.ISO2),
		BuiltAt:   time.Now(),
	}
}
