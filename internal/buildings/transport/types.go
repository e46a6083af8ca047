// Package transport provides DTOs for the buildings domain.
package transport

import "building_insights_backend/internal/buildings/domain"

// ResolveRequest represents the click resolution query parameters.
// Lat and Lon are pointers so that zero coordinates pass `required`.
type ResolveRequest struct {
	Lat    *float64 `form:"lat" binding:"required,gte=-90,lte=90"`
	Lon    *float64 `form:"lon" binding:"required,gte=-180,lte=180"`
	Radius float64  `form:"radius" binding:"omitempty,gt=0"`
}

// Building is the record shape returned to the front end.
type Building struct {
	ID           int     `json:"id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	AreaSqMeters float64 `json:"areaSqMeters"`
	Confidence   float64 `json:"confidence"`
	PlusCode     string  `json:"plusCode,omitempty"`
}

// ResolveResponse is the outcome of a successful resolution.
type ResolveResponse struct {
	MatchKind      string   `json:"matchKind"`
	DistanceMeters float64  `json:"distanceMeters"`
	Building       Building `json:"building"`
}

// DatasetSummary describes the loaded dataset.
type DatasetSummary struct {
	Buildings int `json:"buildings"`
}

// FromDomain converts a domain record to its transport shape.
func FromDomain(b *domain.Building) Building {
	return Building{
		ID:           b.ID,
		Latitude:     b.Centroid.Lat(),
		Longitude:    b.Centroid.Lon(),
		AreaSqMeters: b.AreaSqM,
		Confidence:   b.Confidence,
		PlusCode:     b.PlusCode,
	}
}
