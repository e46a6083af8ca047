package repository

import (
	"fmt"

	"github.com/paulmach/orb"

	"building_insights_backend/internal/buildings/domain"
	"building_insights_backend/platform/apperr"
)

// Index is the immutable in-memory collection of building records. Queries
// run as linear scans, which is fine at the dataset sizes this serves
// (hundreds of footprints). Concurrent reads are safe because nothing
// mutates after construction.
type Index struct {
	buildings []domain.Building
}

// NewIndex validates the records and builds the index. Any malformed record
// rejects the whole construction.
func NewIndex(buildings []domain.Building) (*Index, error) {
	for i := range buildings {
		if err := validateRecord(&buildings[i]); err != nil {
			return nil, apperr.Wrap(apperr.KindValidation,
				fmt.Sprintf("record %d: %v", i, err), err).WithOp("buildings.NewIndex")
		}
	}
	return &Index{buildings: buildings}, nil
}

// Count returns the number of indexed buildings.
func (ix *Index) Count() int {
	return len(ix.buildings)
}

// Get returns the building with the given ID.
func (ix *Index) Get(id int) (*domain.Building, bool) {
	if id < 0 || id >= len(ix.buildings) {
		return nil, false
	}
	return &ix.buildings[id], true
}

// All returns the full record sequence in load order.
func (ix *Index) All() []domain.Building {
	return ix.buildings
}

// FindContaining returns every building whose footprint contains the point,
// in load order. Overlapping footprints may produce more than one match.
func (ix *Index) FindContaining(pt orb.Point) []*domain.Building {
	var matches []*domain.Building
	for i := range ix.buildings {
		if ix.buildings[i].Contains(pt) {
			matches = append(matches, &ix.buildings[i])
		}
	}
	return matches
}

// FindNearest scans all centroids and returns the building with the minimum
// distance to the point, provided that distance is within maxMeters. Ties
// keep the first record in load order, so results are deterministic.
func (ix *Index) FindNearest(pt orb.Point, maxMeters float64) (*domain.Building, float64, bool) {
	var nearest *domain.Building
	minDistance := 0.0

	for i := range ix.buildings {
		d := ix.buildings[i].CentroidDistance(pt)
		if d > maxMeters {
			continue
		}
		if nearest == nil || d < minDistance {
			nearest = &ix.buildings[i]
			minDistance = d
		}
	}

	if nearest == nil {
		return nil, 0, false
	}
	return nearest, minDistance, true
}
