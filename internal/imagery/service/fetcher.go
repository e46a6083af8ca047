package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"building_insights_backend/internal/imagery/transport"
	"building_insights_backend/platform/logger"
)

// ImageClient is the port to the street-level imagery provider.
type ImageClient interface {
	FetchImage(ctx context.Context, lat, lon, heading float64) ([]byte, string, error)
	// HasPanorama reports whether any imagery exists near the location,
	// without consuming image quota.
	HasPanorama(ctx context.Context, lat, lon float64) (bool, error)
}

// Fetcher retrieves one image per bearing spec, fanning out the fetches
// concurrently. A missing or failed angle never fails the batch: callers get
// exactly the set of images that were actually obtainable.
type Fetcher struct {
	client ImageClient
	log    *logger.Logger
}

// NewFetcher creates a fetcher over the given imagery client.
func NewFetcher(client ImageClient, log *logger.Logger) *Fetcher {
	return &Fetcher{client: client, log: log}
}

// FetchAll fetches all specs concurrently and returns the successful images
// in spec order.
func (f *Fetcher) FetchAll(ctx context.Context, specs []transport.BearingSpec) []transport.DirectionImage {
	if len(specs) == 0 {
		return nil
	}

	// All specs share one anchor, so one metadata probe covers the batch.
	// A failed probe is inconclusive and the fetches proceed anyway.
	if ok, err := f.client.HasPanorama(ctx, specs[0].AnchorLatitude, specs[0].AnchorLongitude); err == nil && !ok {
		f.log.Info("no street-level panorama near building",
			"lat", specs[0].AnchorLatitude, "lon", specs[0].AnchorLongitude)
		return nil
	}

	results := make([]*transport.DirectionImage, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			data, mimeType, err := f.client.FetchImage(ctx, spec.CaptureLatitude, spec.CaptureLongitude, spec.HeadingDegrees)
			if err != nil {
				f.log.Warn("directional image unavailable",
					"direction", spec.DirectionLabel, "error", err)
				return nil
			}
			results[i] = &transport.DirectionImage{
				Label:    spec.DirectionLabel,
				MIMEType: mimeType,
				Data:     data,
			}
			return nil
		})
	}
	_ = g.Wait()

	images := make([]transport.DirectionImage, 0, len(specs))
	for _, r := range results {
		if r != nil {
			images = append(images, *r)
		}
	}
	return images
}
