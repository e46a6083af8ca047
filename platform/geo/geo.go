// Package geo provides spherical geometry primitives shared by the building
// resolution and imagery modules.
// This is part of the platform layer and contains no business logic.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// EarthRadiusMeters is the spherical Earth approximation used for all
// great-circle math. The error versus ellipsoidal models is accepted.
const EarthRadiusMeters = 6371000.0

// Contains reports whether the point lies inside any polygon of the set,
// respecting holes. Antimeridian-crossing footprints are out of scope for
// the supported datasets.
func Contains(mp orb.MultiPolygon, p orb.Point) bool {
	return planar.MultiPolygonContains(mp, p)
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(a, b orb.Point) float64 {
	lat1 := radians(a.Lat())
	lat2 := radians(b.Lat())
	dLat := radians(b.Lat() - a.Lat())
	dLon := radians(b.Lon() - a.Lon())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Centroid returns the arithmetic mean of the exterior-ring vertices of the
// set. It is a representative point for distance and bearing work, not an
// area-weighted centroid. The closing vertex of each ring is skipped so it
// is not counted twice. Returns a zero point for an empty set.
func Centroid(mp orb.MultiPolygon) orb.Point {
	var sumLon, sumLat float64
	var n int

	for _, poly := range mp {
		if len(poly) == 0 {
			continue
		}
		exterior := poly[0]
		last := len(exterior)
		if last > 1 && exterior[0] == exterior[last-1] {
			last--
		}
		for i := 0; i < last; i++ {
			sumLon += exterior[i].Lon()
			sumLat += exterior[i].Lat()
			n++
		}
	}

	if n == 0 {
		return orb.Point{}
	}
	return orb.Point{sumLon / float64(n), sumLat / float64(n)}
}

// Bearing returns the initial compass bearing from one point toward another
// using the forward-azimuth formula, normalized to [0, 360).
func Bearing(from, to orb.Point) float64 {
	lat1 := radians(from.Lat())
	lat2 := radians(to.Lat())
	dLon := radians(to.Lon() - from.Lon())

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// Destination returns the point reached by traveling the given distance in
// meters from the origin along the given compass bearing.
func Destination(origin orb.Point, bearingDeg, distanceMeters float64) orb.Point {
	lat1 := radians(origin.Lat())
	lon1 := radians(origin.Lon())
	brg := radians(bearingDeg)
	d := distanceMeters / EarthRadiusMeters

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brg))
	lon2 := lon1 + math.Atan2(
		math.Sin(brg)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2),
	)

	return orb.Point{degrees(lon2), degrees(lat2)}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
