// Package transport provides DTOs for the imagery domain.
package transport

// BearingSpec is one planned camera framing for a directional capture. The
// capture point stands at the compass direction from the building and looks
// back at the centroid, so the heading is always direction + 180 degrees.
// Anchor is the building's representative point; Capture is the suggested
// camera standpoint.
type BearingSpec struct {
	DirectionLabel   string  `json:"directionLabel"`
	DirectionDegrees float64 `json:"directionDegrees"`
	HeadingDegrees   float64 `json:"headingDegrees"`
	AnchorLatitude   float64 `json:"anchorLatitude"`
	AnchorLongitude  float64 `json:"anchorLongitude"`
	CaptureLatitude  float64 `json:"captureLatitude"`
	CaptureLongitude float64 `json:"captureLongitude"`
}

// DirectionImage is a successfully fetched street-level image, tagged with
// the direction label it was captured from.
type DirectionImage struct {
	Label    string
	MIMEType string
	Data     []byte
}
