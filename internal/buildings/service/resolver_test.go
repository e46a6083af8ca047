package service

import (
	"testing"

	"github.com/paulmach/orb"

	"building_insights_backend/internal/buildings/domain"
	"building_insights_backend/internal/buildings/repository"
	"building_insights_backend/platform/apperr"
	"building_insights_backend/platform/logger"
)

func squareAt(lon, lat, size float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{
		{lon, lat},
		{lon + size, lat},
		{lon + size, lat + size},
		{lon, lat + size},
		{lon, lat},
	}}}
}

func building(lon, lat, size float64) domain.Building {
	return domain.Building{
		Centroid:   orb.Point{lon + size/2, lat + size/2},
		Footprint:  squareAt(lon, lat, size),
		AreaSqM:    100,
		Confidence: 0.9,
	}
}

func newResolver(t *testing.T, buildings ...domain.Building) *Resolver {
	t.Helper()
	for i := range buildings {
		buildings[i].ID = i
	}
	ix, err := repository.NewIndex(buildings)
	if err != nil {
		t.Fatalf("unexpected index error: %v", err)
	}
	return NewResolver(ix, logger.New("test"))
}

func TestResolve_ContainmentWins(t *testing.T) {
	r := newResolver(t, building(78.430, 17.410, 0.001))

	match, err := r.Resolve(domain.ClickQuery{Lat: 17.4105, Lon: 78.4305, MaxDistanceMeters: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Kind != domain.MatchContained {
		t.Fatalf("expected contained match, got %q", match.Kind)
	}
	if match.DistanceMeters != 0 {
		t.Fatalf("contained match must report zero distance, got %f", match.DistanceMeters)
	}
	if match.Building.ID != 0 {
		t.Fatalf("expected building 0, got %d", match.Building.ID)
	}
}

func TestResolve_NearestFallback(t *testing.T) {
	r := newResolver(t, building(78.430, 17.410, 0.001))

	// Just outside the footprint, well within the radius.
	match, err := r.Resolve(domain.ClickQuery{Lat: 17.4105, Lon: 78.4312, MaxDistanceMeters: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match == nil {
		t.Fatal("expected a nearest match")
	}
	if match.Kind != domain.MatchNearest {
		t.Fatalf("expected nearest match, got %q", match.Kind)
	}
	if match.DistanceMeters <= 0 || match.DistanceMeters > 200 {
		t.Fatalf("distance %f outside expected range", match.DistanceMeters)
	}
}

func TestResolve_NoBuildingInRange(t *testing.T) {
	r := newResolver(t, building(78.430, 17.410, 0.001))

	match, err := r.Resolve(domain.ClickQuery{Lat: 17.5, Lon: 78.5, MaxDistanceMeters: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match != nil {
		t.Fatalf("expected no match, got building %d", match.Building.ID)
	}
}

func TestResolve_WiderRadiusFindsWhatNarrowMisses(t *testing.T) {
	r := newResolver(t, building(78.430, 17.410, 0.001))

	// Roughly 100m east of the footprint.
	q := domain.ClickQuery{Lat: 17.4105, Lon: 78.4320, MaxDistanceMeters: 30}
	match, err := r.Resolve(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match != nil {
		t.Fatal("expected no match with a 30m radius")
	}

	q.MaxDistanceMeters = 500
	match, err = r.Resolve(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match == nil {
		t.Fatal("expected a match with a 500m radius")
	}
	if match.Kind != domain.MatchNearest {
		t.Fatalf("expected nearest match, got %q", match.Kind)
	}
}

func TestResolve_ContainmentBeatsCloserCentroid(t *testing.T) {
	// The click is inside building 0 but building 1's centroid is closer.
	inside := building(78.430, 17.410, 0.004)
	neighbor := building(78.4341, 17.4100, 0.001)
	r := newResolver(t, inside, neighbor)

	// Near the eastern edge of building 0, close to building 1's centroid.
	match, err := r.Resolve(domain.ClickQuery{Lat: 17.4105, Lon: 78.4339, MaxDistanceMeters: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Kind != domain.MatchContained {
		t.Fatalf("expected contained match, got %q", match.Kind)
	}
	if match.Building.ID != 0 {
		t.Fatalf("containment must outrank proximity, got building %d", match.Building.ID)
	}
}

func TestResolve_OverlapTieBreaksOnCentroidDistance(t *testing.T) {
	a := building(78.430, 17.410, 0.002)
	b := building(78.431, 17.411, 0.002)
	r := newResolver(t, a, b)

	// Inside both footprints, nearer to b's centroid.
	match, err := r.Resolve(domain.ClickQuery{Lat: 17.4118, Lon: 78.4318, MaxDistanceMeters: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Building.ID != 1 {
		t.Fatalf("expected the overlap to resolve to building 1, got %d", match.Building.ID)
	}
}

func TestResolve_RejectsNonPositiveRadius(t *testing.T) {
	r := newResolver(t, building(78.430, 17.410, 0.001))

	_, err := r.Resolve(domain.ClickQuery{Lat: 17.4105, Lon: 78.4305, MaxDistanceMeters: 0})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolve_RejectsOutOfRangeCoordinates(t *testing.T) {
	r := newResolver(t, building(78.430, 17.410, 0.001))

	_, err := r.Resolve(domain.ClickQuery{Lat: 95, Lon: 78.4305, MaxDistanceMeters: 50})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for latitude, got %v", err)
	}

	_, err = r.Resolve(domain.ClickQuery{Lat: 17.41, Lon: -190, MaxDistanceMeters: 50})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for longitude, got %v", err)
	}
}

func TestGet_UnknownIDReturnsNil(t *testing.T) {
	r := newResolver(t, building(78.430, 17.410, 0.001))

	if b := r.Get(0); b == nil {
		t.Fatal("expected building 0")
	}
	if b := r.Get(7); b != nil {
		t.Fatalf("expected nil for unknown id, got %d", b.ID)
	}
}
