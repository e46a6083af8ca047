// Package repository loads the building dataset and serves in-memory queries
// over it. The dataset is read once at startup and is immutable afterwards.
package repository

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"building_insights_backend/internal/buildings/domain"
	"building_insights_backend/platform/apperr"
	"building_insights_backend/platform/geo"
)

// Property names used by the footprint datasets (Open Buildings export).
const (
	propArea     = "area_in_me"
	propConf     = "confidence"
	propPlusCode = "full_plus_"
)

// LoadOptions controls dataset loading behavior.
type LoadOptions struct {
	// AllowPartial skips malformed features instead of rejecting the whole
	// dataset. The default is strict: one bad feature fails the load.
	AllowPartial bool
}

// LoadFile reads a GeoJSON feature collection from disk and converts it into
// validated building records. Returns the records and the number of skipped
// features (always zero unless AllowPartial is set).
func LoadFile(path string, opts LoadOptions) ([]domain.Building, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "read dataset file", err).WithOp("buildings.LoadFile")
	}
	return Load(data, opts)
}

// Load parses a GeoJSON feature collection into validated building records.
func Load(data []byte, opts LoadOptions) ([]domain.Building, int, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindValidation, "malformed GeoJSON dataset", err).WithOp("buildings.Load")
	}

	buildings := make([]domain.Building, 0, len(fc.Features))
	skipped := 0

	for i, feature := range fc.Features {
		record, err := buildRecord(feature)
		if err != nil {
			if opts.AllowPartial {
				skipped++
				continue
			}
			return nil, 0, apperr.Wrap(apperr.KindValidation,
				fmt.Sprintf("feature %d: %v", i, err), err).WithOp("buildings.Load")
		}

		record.ID = len(buildings)
		buildings = append(buildings, record)
	}

	return buildings, skipped, nil
}

func buildRecord(feature *geojson.Feature) (domain.Building, error) {
	var record domain.Building

	switch g := feature.Geometry.(type) {
	case orb.Polygon:
		record.Footprint = closeRings(orb.MultiPolygon{g})
		record.Centroid = geo.Centroid(record.Footprint)
	case orb.MultiPolygon:
		record.Footprint = closeRings(g)
		record.Centroid = geo.Centroid(record.Footprint)
	case orb.Point:
		record.Centroid = g
	default:
		return record, fmt.Errorf("unsupported geometry type %T", feature.Geometry)
	}

	record.AreaSqM = feature.Properties.MustFloat64(propArea, 0)
	record.Confidence = feature.Properties.MustFloat64(propConf, 0)
	record.PlusCode = feature.Properties.MustString(propPlusCode, "")

	if err := validateRecord(&record); err != nil {
		return record, err
	}

	return record, nil
}

// closeRings returns a copy of the multi-polygon with every ring explicitly
// closed (first vertex repeated as last).
func closeRings(mp orb.MultiPolygon) orb.MultiPolygon {
	closed := make(orb.MultiPolygon, 0, len(mp))
	for _, poly := range mp {
		closedPoly := make(orb.Polygon, 0, len(poly))
		for _, ring := range poly {
			r := make(orb.Ring, len(ring))
			copy(r, ring)
			if len(r) > 0 && r[0] != r[len(r)-1] {
				r = append(r, r[0])
			}
			closedPoly = append(closedPoly, r)
		}
		closed = append(closed, closedPoly)
	}
	return closed
}

// validateRecord enforces the dataset invariants: every ring of a footprint
// has at least 4 vertices once closed, area is non-negative, and confidence
// is a fraction in [0, 1].
func validateRecord(b *domain.Building) error {
	for _, poly := range b.Footprint {
		for _, ring := range poly {
			if len(ring) < 4 {
				return fmt.Errorf("ring has %d vertices, need at least 4", len(ring))
			}
		}
	}
	if b.AreaSqM < 0 {
		return fmt.Errorf("negative footprint area %f", b.AreaSqM)
	}
	if b.Confidence < 0 || b.Confidence > 1 {
		return fmt.Errorf("confidence %f outside [0, 1]", b.Confidence)
	}
	return nil
}
