package repository

import (
	"testing"

	"github.com/paulmach/orb"

	"building_insights_backend/internal/buildings/domain"
)

// squareAt builds a closed square footprint of roughly size degrees on a
// side with its lower-left corner at (lon, lat).
func squareAt(lon, lat, size float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{
		{lon, lat},
		{lon + size, lat},
		{lon + size, lat + size},
		{lon, lat + size},
		{lon, lat},
	}}}
}

func testBuilding(id int, lon, lat, size float64) domain.Building {
	fp := squareAt(lon, lat, size)
	return domain.Building{
		ID:         id,
		Centroid:   orb.Point{lon + size/2, lat + size/2},
		Footprint:  fp,
		AreaSqM:    100,
		Confidence: 0.9,
	}
}

func testIndex(t *testing.T, buildings ...domain.Building) *Index {
	t.Helper()
	ix, err := NewIndex(buildings)
	if err != nil {
		t.Fatalf("unexpected index error: %v", err)
	}
	return ix
}

func TestFindContaining_ReturnsAllOverlaps(t *testing.T) {
	// Two overlapping squares plus one far away.
	ix := testIndex(t,
		testBuilding(0, 78.430, 17.410, 0.002),
		testBuilding(1, 78.431, 17.411, 0.002),
		testBuilding(2, 78.500, 17.500, 0.002),
	)

	matches := ix.FindContaining(orb.Point{78.4315, 17.4115})
	if len(matches) != 2 {
		t.Fatalf("expected 2 containing buildings, got %d", len(matches))
	}
	if matches[0].ID != 0 || matches[1].ID != 1 {
		t.Fatalf("expected load order 0,1, got %d,%d", matches[0].ID, matches[1].ID)
	}
}

func TestFindContaining_NoMatch(t *testing.T) {
	ix := testIndex(t, testBuilding(0, 78.430, 17.410, 0.001))

	if matches := ix.FindContaining(orb.Point{78.440, 17.420}); len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestFindNearest_PicksClosestWithinRadius(t *testing.T) {
	ix := testIndex(t,
		testBuilding(0, 78.430, 17.410, 0.001),
		testBuilding(1, 78.4305, 17.410, 0.001),
	)

	// Right next to building 1's centroid.
	nearest, distance, ok := ix.FindNearest(orb.Point{78.4311, 17.4105}, 200)
	if !ok {
		t.Fatal("expected a nearest match")
	}
	if nearest.ID != 1 {
		t.Fatalf("expected building 1, got %d", nearest.ID)
	}
	if distance <= 0 || distance > 200 {
		t.Fatalf("distance %f outside expected range", distance)
	}
}

func TestFindNearest_RespectsRadius(t *testing.T) {
	ix := testIndex(t, testBuilding(0, 78.430, 17.410, 0.001))

	// The centroid is roughly 1.5km away from this point.
	if _, _, ok := ix.FindNearest(orb.Point{78.444, 17.410}, 50); ok {
		t.Fatal("expected no match outside the radius")
	}
	if _, _, ok := ix.FindNearest(orb.Point{78.444, 17.410}, 5000); !ok {
		t.Fatal("expected a match with a wide enough radius")
	}
}

func TestFindNearest_TieKeepsFirstInLoadOrder(t *testing.T) {
	// Identical centroids make the distances exactly equal.
	a := testBuilding(0, 78.430, 17.410, 0.001)
	b := testBuilding(1, 78.430, 17.410, 0.001)
	ix := testIndex(t, a, b)

	nearest, _, ok := ix.FindNearest(orb.Point{78.4306, 17.4106}, 500)
	if !ok {
		t.Fatal("expected a match")
	}
	if nearest.ID != 0 {
		t.Fatalf("tie must keep the first record, got %d", nearest.ID)
	}
}

func TestNewIndex_RejectsInvalidRecord(t *testing.T) {
	bad := testBuilding(0, 78.430, 17.410, 0.001)
	bad.Confidence = 1.5

	if _, err := NewIndex([]domain.Building{bad}); err == nil {
		t.Fatal("expected validation error for bad confidence")
	}
}

func TestGet_BoundsChecked(t *testing.T) {
	ix := testIndex(t, testBuilding(0, 78.430, 17.410, 0.001))

	if _, ok := ix.Get(0); !ok {
		t.Fatal("expected record 0 to exist")
	}
	if _, ok := ix.Get(-1); ok {
		t.Fatal("expected no record at -1")
	}
	if _, ok := ix.Get(1); ok {
		t.Fatal("expected no record at 1")
	}
}
