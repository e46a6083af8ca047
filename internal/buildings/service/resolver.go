// Package service implements click-to-building resolution.
package service

import (
	"building_insights_backend/internal/buildings/domain"
	"building_insights_backend/internal/buildings/repository"
	"building_insights_backend/platform/apperr"
	"building_insights_backend/platform/logger"
)

// Resolver maps an approximate click coordinate to the most plausible
// building. Containment always outranks proximity: a point geometrically
// inside a footprint is a stronger signal than centroid distance, which is
// unreliable near dense building clusters. Proximity is only the fallback
// for clicks that miss every polygon.
type Resolver struct {
	index *repository.Index
	log   *logger.Logger
}

// NewResolver creates a resolver over the given index.
func NewResolver(index *repository.Index, log *logger.Logger) *Resolver {
	return &Resolver{index: index, log: log}
}

// Resolve returns the matched building for the query, or nil when no
// building satisfies containment or proximity. The search radius must be
// positive; the resolver itself imposes no upper bound.
func (r *Resolver) Resolve(q domain.ClickQuery) (*domain.Match, error) {
	if q.MaxDistanceMeters <= 0 {
		return nil, apperr.Validation("max search distance must be positive").WithOp("buildings.Resolve")
	}
	if q.Lat < -90 || q.Lat > 90 || q.Lon < -180 || q.Lon > 180 {
		return nil, apperr.Validation("coordinates out of range").WithOp("buildings.Resolve")
	}

	pt := q.Point()

	contained := r.index.FindContaining(pt)
	if len(contained) > 0 {
		selected := contained[0]
		if len(contained) > 1 {
			// Overlapping footprints: tie-break on centroid distance.
			minDistance := selected.CentroidDistance(pt)
			for _, candidate := range contained[1:] {
				if d := candidate.CentroidDistance(pt); d < minDistance {
					selected = candidate
					minDistance = d
				}
			}
		}

		r.log.Resolution(q.Lat, q.Lon, string(domain.MatchContained), 0)
		return &domain.Match{
			Building:       selected,
			Kind:           domain.MatchContained,
			DistanceMeters: 0,
		}, nil
	}

	nearest, distance, ok := r.index.FindNearest(pt, q.MaxDistanceMeters)
	if !ok {
		r.log.Resolution(q.Lat, q.Lon, "none", 0)
		return nil, nil
	}

	r.log.Resolution(q.Lat, q.Lon, string(domain.MatchNearest), distance)
	return &domain.Match{
		Building:       nearest,
		Kind:           domain.MatchNearest,
		DistanceMeters: distance,
	}, nil
}

// Get returns the building with the given dataset ID, or nil when absent.
func (r *Resolver) Get(id int) *domain.Building {
	b, ok := r.index.Get(id)
	if !ok {
		return nil
	}
	return b
}

// Count returns the number of indexed buildings.
func (r *Resolver) Count() int {
	return r.index.Count()
}
