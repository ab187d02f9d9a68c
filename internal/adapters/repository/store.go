package repository

import (
	"context"

	"github.com/okian/ktready/internal/domain/geo"
	"github.com/okian/ktready/internal/domain/readiness"
)

// Snapshot is the full configured dataset: checklist, completion vectors and
// country centroids.
type Snapshot struct {
	Tasks   readiness.Tasks
	Dataset readiness.Dataset
	Catalog geo.Catalog
}

// Clone returns a deep copy so holders cannot mutate shared state.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Tasks:   append(readiness.Tasks(nil), s.Tasks...),
		Dataset: make(readiness.Dataset, len(s.Dataset)),
		Catalog: make(geo.Catalog, len(s.Catalog)),
	}
	for team, countries := range s.Dataset {
		cp := make(map[string]readiness.Vector, len(countries))
		for c, v := range countries {
			cp[c] = append(readiness.Vector(nil), v...)
		}
		out.Dataset[team] = cp
	}
	for c, coord := range s.Catalog {
		out.Catalog[c] = coord
	}
	return out
}

// Store provides read access to the configured dataset.
type Store interface {
	// Snapshot returns a private copy of the dataset.
	Snapshot(ctx context.Context) Snapshot
	// Count returns the number of (team, country) pairs.
	Count(ctx context.Context) int
}

// MemoryStore holds a snapshot fixed at construction time.
type MemoryStore struct {
	snap  Snapshot
	count int
}

// NewMemoryStore copies snap into a new store.
func NewMemoryStore(snap Snapshot) *MemoryStore {
	s := &MemoryStore{snap: snap.Clone()}
	for _, countries := range s.snap.Dataset {
		s.count += len(countries)
	}
	return s
}

// Snapshot returns a private copy of the dataset.
func (s *MemoryStore) Snapshot(_ context.Context) Snapshot {
	return s.snap.Clone()
}

// Count returns the number of (team, country) pairs.
func (s *MemoryStore) Count(_ context.Context) int {
	return s.count
}
