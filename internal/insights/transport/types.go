// Package transport provides DTOs for the insights domain.
package transport

import "github.com/google/uuid"

// Sentinel marks an insight field the generation service did not supply.
const Sentinel = "Unavailable"

// InsightRecord is the fixed ten-field structured description of a building.
// Every field is always present: missing or malformed values from the
// generation service are replaced with the Sentinel, never omitted.
type InsightRecord struct {
	BuildingType        string `json:"building_type"`
	SizeCategory        string `json:"size_category"`
	EstimatedFloors     string `json:"estimated_floors"`
	LikelyUse           string `json:"likely_use"`
	AreaCharacteristics string `json:"area_characteristics"`
	PropertyInsights    string `json:"property_insights"`
	ArchitecturalStyle  string `json:"architectural_style"`
	NearbyAmenities     string `json:"nearby_amenities"`
	Recommendations     string `json:"recommendations"`
	Summary             string `json:"summary"`
}

// SynthesizeRequest is the body of an insight generation request.
type SynthesizeRequest struct {
	IncludeImagery bool     `json:"includeImagery"`
	Directions     []string `json:"directions" validate:"omitempty,max=8,dive,min=1"`
	Area           string   `json:"area" validate:"omitempty,max=64"`
	ContextNotes   string   `json:"contextNotes" validate:"omitempty,max=2000"`
}

// SynthesizeResponse wraps a freshly generated insight record.
type SynthesizeResponse struct {
	ID         uuid.UUID     `json:"id"`
	BuildingID int           `json:"buildingId"`
	ImagesUsed []string      `json:"imagesUsed"`
	Insights   InsightRecord `json:"insights"`
}
