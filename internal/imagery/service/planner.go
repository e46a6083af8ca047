// Package service implements bearing planning and directional image fetching.
package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"building_insights_backend/internal/imagery/transport"
	"building_insights_backend/platform/apperr"
	"building_insights_backend/platform/geo"
)

// Direction is a requested capture direction: one of the four cardinals or
// an arbitrary compass degree.
type Direction struct {
	Label   string
	Degrees float64
}

// CardinalDirections is the default capture set.
var CardinalDirections = []Direction{
	{Label: "N", Degrees: 0},
	{Label: "E", Degrees: 90},
	{Label: "S", Degrees: 180},
	{Label: "W", Degrees: 270},
}

// ParseDirections converts request values like "N", "e", or "135" into
// directions. At least one value is required.
func ParseDirections(values []string) ([]Direction, error) {
	if len(values) == 0 {
		return nil, apperr.Validation("at least one direction is required").WithOp("imagery.ParseDirections")
	}

	directions := make([]Direction, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		switch strings.ToUpper(trimmed) {
		case "N":
			directions = append(directions, CardinalDirections[0])
		case "E":
			directions = append(directions, CardinalDirections[1])
		case "S":
			directions = append(directions, CardinalDirections[2])
		case "W":
			directions = append(directions, CardinalDirections[3])
		default:
			degrees, err := strconv.ParseFloat(trimmed, 64)
			if err != nil || degrees < 0 || degrees >= 360 {
				return nil, apperr.Validation(
					fmt.Sprintf("direction %q must be N, E, S, W or degrees in [0, 360)", value),
				).WithOp("imagery.ParseDirections")
			}
			directions = append(directions, Direction{Label: trimmed, Degrees: degrees})
		}
	}

	return directions, nil
}

// Planner computes camera bearings for framing a building. The standoff is
// how far the suggested capture point stands from the anchor; zero keeps the
// capture point on the anchor itself.
type Planner struct {
	standoffMeters float64
}

// NewPlanner creates a bearing planner.
func NewPlanner(standoffMeters float64) *Planner {
	return &Planner{standoffMeters: standoffMeters}
}

// Plan produces one BearingSpec per requested direction for a building
// anchored at the given representative point. The imagery source stands at
// compass direction D from the building and looks back at bearing
// (D + 180) mod 360, so the building is centered in the frame. Whether
// imagery is actually obtainable at that location is the fetcher's concern.
func (p *Planner) Plan(anchor orb.Point, directions []Direction) []transport.BearingSpec {
	specs := make([]transport.BearingSpec, 0, len(directions))
	for _, d := range directions {
		capture := anchor
		if p.standoffMeters > 0 {
			capture = geo.Destination(anchor, d.Degrees, p.standoffMeters)
		}
		specs = append(specs, transport.BearingSpec{
			DirectionLabel:   d.Label,
			DirectionDegrees: d.Degrees,
			HeadingDegrees:   math.Mod(d.Degrees+180, 360),
			AnchorLatitude:   anchor.Lat(),
			AnchorLongitude:  anchor.Lon(),
			CaptureLatitude:  capture.Lat(),
			CaptureLongitude: capture.Lon(),
		})
	}
	return specs
}
