// Package adapters wires bounded contexts together without letting them
// import each other directly.
package adapters

import (
	"context"

	"github.com/paulmach/orb"

	"building_insights_backend/internal/imagery"
	imageryservice "building_insights_backend/internal/imagery/service"
	insightsclient "building_insights_backend/internal/insights/client"
	insightshandler "building_insights_backend/internal/insights/handler"
)

// ImageryImageSource adapts the imagery module for the insights context.
// It implements the insights handler's ImageSource port.
type ImageryImageSource struct {
	module *imagery.Module
}

// NewImageryImageSource creates the adapter. Returns a usable but unavailable
// adapter when the module is nil.
func NewImageryImageSource(module *imagery.Module) *ImageryImageSource {
	return &ImageryImageSource{module: module}
}

// Available reports whether directional images can actually be fetched.
func (a *ImageryImageSource) Available() bool {
	return a != nil && a.module != nil && a.module.IsFetchingEnabled()
}

// Capture plans bearings for the requested directions around the anchor and
// fetches whatever directional images are obtainable.
func (a *ImageryImageSource) Capture(ctx context.Context, anchor orb.Point, directions []string) ([]insightsclient.Image, error) {
	if !a.Available() {
		return nil, nil
	}

	parsed, err := imageryservice.ParseDirections(directions)
	if err != nil {
		return nil, err
	}

	specs := a.module.Planner().Plan(anchor, parsed)
	fetched := a.module.Fetcher().FetchAll(ctx, specs)

	images := make([]insightsclient.Image, 0, len(fetched))
	for _, img := range fetched {
		images = append(images, insightsclient.Image{
			Label:    img.Label,
			MIMEType: img.MIMEType,
			Data:     img.Data,
		})
	}
	return images, nil
}

var _ insightshandler.ImageSource = (*ImageryImageSource)(nil)
