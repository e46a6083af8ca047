// Package domain holds the core types of the building resolution context.
package domain

import (
	"github.com/paulmach/orb"

	"building_insights_backend/platform/geo"
)

// Building is a single record from the loaded footprint dataset. The ID is
// the record's index in load order. Records are constructed once at load
// time and never mutated afterwards.
type Building struct {
	ID         int
	Centroid   orb.Point
	Footprint  orb.MultiPolygon
	AreaSqM    float64
	Confidence float64
	PlusCode   string
}

// Contains reports whether the point lies inside the building footprint.
func (b *Building) Contains(p orb.Point) bool {
	return geo.Contains(b.Footprint, p)
}

// CentroidDistance returns the great-circle distance in meters from the
// building centroid to the given point.
func (b *Building) CentroidDistance(p orb.Point) float64 {
	return geo.Haversine(b.Centroid, p)
}

// MatchKind states how a building was matched to a click.
type MatchKind string

const (
	// MatchContained means the click point lies inside the footprint.
	MatchContained MatchKind = "contained"
	// MatchNearest means the building centroid was the closest within the
	// search radius; used only when no footprint contains the point.
	MatchNearest MatchKind = "nearest"
)

// ClickQuery is an ephemeral resolution request.
type ClickQuery struct {
	Lat               float64
	Lon               float64
	MaxDistanceMeters float64
}

// Point returns the click location as a lon/lat point.
func (q ClickQuery) Point() orb.Point {
	return orb.Point{q.Lon, q.Lat}
}

// Match is a successful resolution. A nil *Match from the resolver means no
// building satisfied containment or proximity.
type Match struct {
	Building       *Building
	Kind           MatchKind
	DistanceMeters float64
}
