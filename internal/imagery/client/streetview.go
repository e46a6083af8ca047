// Package client provides the HTTP client for the Google Street View Static API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"building_insights_backend/platform/config"
	"building_insights_backend/platform/logger"
)

const (
	imageURL    = "https://maps.googleapis.com/maps/api/streetview"
	metadataURL = "https://maps.googleapis.com/maps/api/streetview/metadata"
)

// StreetView is the Street View Static API client. Requests are throttled
// with a shared limiter so concurrent directional fetches stay inside the
// provider's quota.
type StreetView struct {
	httpClient *http.Client
	apiKey     string
	size       string
	fov        int
	pitch      int
	limiter    *rate.Limiter
	log        *logger.Logger
}

// Metadata is the panorama availability response.
type Metadata struct {
	Status   string `json:"status"`
	PanoID   string `json:"pano_id"`
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

// New creates a Street View client.
func New(cfg config.StreetViewConfig, log *logger.Logger) *StreetView {
	return &StreetView{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     cfg.GetStreetViewAPIKey(),
		size:       cfg.GetStreetViewImageSize(),
		fov:        cfg.GetStreetViewFOV(),
		pitch:      cfg.GetStreetViewPitch(),
		limiter:    rate.NewLimiter(rate.Limit(cfg.GetStreetViewRPS()), 1),
		log:        log,
	}
}

// FetchImage retrieves a single static image looking at the given heading
// from the given location. Returns the raw bytes and the content type.
func (c *StreetView) FetchImage(ctx context.Context, lat, lon, heading float64) ([]byte, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	params := url.Values{}
	params.Set("size", c.size)
	params.Set("location", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("heading", strconv.FormatFloat(heading, 'f', 1, 64))
	params.Set("pitch", strconv.Itoa(c.pitch))
	params.Set("fov", strconv.Itoa(c.fov))
	params.Set("source", "outdoor")
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("streetview", "fetch image", err)
		return nil, "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamError("streetview", "fetch image", fmt.Errorf("status %d", resp.StatusCode))
		return nil, "", fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return data, contentType, nil
}

// Metadata checks panorama availability near a location without consuming
// image quota.
func (c *StreetView) Metadata(ctx context.Context, lat, lon float64) (*Metadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("streetview", "metadata", err)
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	var meta Metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	return &meta, nil
}

// HasPanorama reports whether a panorama exists near the location.
func (c *StreetView) HasPanorama(ctx context.Context, lat, lon float64) (bool, error) {
	meta, err := c.Metadata(ctx, lat, lon)
	if err != nil {
		return false, err
	}
	return meta.Status == "OK", nil
}
