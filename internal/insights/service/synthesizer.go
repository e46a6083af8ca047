// Package service implements the insight synthesis pipeline: request
// shaping, payload extraction, schema normalization, and bounded retry
// against the generation service.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"building_insights_backend/internal/insights/client"
	"building_insights_backend/internal/insights/transport"
	"building_insights_backend/platform/apperr"
	"building_insights_backend/platform/config"
	"building_insights_backend/platform/logger"
)

// requiredKeys is the fixed insight schema, in output order.
var requiredKeys = []string{
	"building_type",
	"size_category",
	"estimated_floors",
	"likely_use",
	"area_characteristics",
	"property_insights",
	"architectural_style",
	"nearby_amenities",
	"recommendations",
	"summary",
}

// BuildingAttributes is the resolved building data fed into a synthesis
// request.
type BuildingAttributes struct {
	AreaSqMeters float64
	Confidence   float64
	Latitude     float64
	Longitude    float64
	PlusCode     string
}

// Synthesizer turns building attributes and optional imagery into a
// validated InsightRecord. It holds no per-call state and is safe to invoke
// concurrently for different buildings.
type Synthesizer struct {
	gen         client.Generator
	log         *logger.Logger
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	timeout     time.Duration

	// sleep is swapped out in tests to observe backoff without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSynthesizer creates a synthesizer over the given generator.
func NewSynthesizer(gen client.Generator, cfg config.GenerationConfig, log *logger.Logger) *Synthesizer {
	return &Synthesizer{
		gen:         gen,
		log:         log,
		maxAttempts: cfg.GetGenerationMaxAttempts(),
		baseDelay:   cfg.GetGenerationBaseDelay(),
		maxDelay:    cfg.GetGenerationMaxDelay(),
		timeout:     cfg.GetGenerationTimeout(),
		sleep:       sleepContext,
	}
}

// Synthesize generates an insight record for the building. Transport
// failures, timeouts, and unextractable payloads are retried with
// exponential backoff up to the configured attempt budget; only then does
// the call fail, carrying the last underlying cause. Input validation
// failures are deterministic and are not retried.
func (s *Synthesizer) Synthesize(ctx context.Context, attrs BuildingAttributes, images []client.Image, contextNotes string) (*transport.InsightRecord, error) {
	if s.maxAttempts < 1 {
		return nil, apperr.Validation("generation attempt budget must be at least 1").WithOp("insights.Synthesize")
	}
	if attrs.Latitude < -90 || attrs.Latitude > 90 || attrs.Longitude < -180 || attrs.Longitude > 180 {
		return nil, apperr.Validation("building coordinates out of range").WithOp("insights.Synthesize")
	}

	labels := make([]string, 0, len(images))
	for _, img := range images {
		labels = append(labels, img.Label)
	}

	req := client.Request{
		Prompt: buildPrompt(attrs, contextNotes, labels),
		Images: images,
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		record, err := s.attempt(ctx, req)
		if err == nil {
			return record, nil
		}
		lastErr = err
		s.log.GenerationAttempt(attempt, s.maxAttempts, err)

		if attempt == s.maxAttempts {
			break
		}
		if err := s.sleep(ctx, s.backoffDelay(attempt)); err != nil {
			return nil, apperr.Wrap(apperr.KindUnavailable, "insight generation canceled", err).WithOp("insights.Synthesize")
		}
	}

	return nil, apperr.Wrap(apperr.KindUnavailable,
		fmt.Sprintf("insight generation failed after %d attempts", s.maxAttempts),
		lastErr).WithOp("insights.Synthesize")
}

func (s *Synthesizer) attempt(ctx context.Context, req client.Request) (*transport.InsightRecord, error) {
	attemptCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.gen.Generate(attemptCtx, req)
	if err != nil {
		return nil, err
	}

	payload, err := extractPayload(raw)
	if err != nil {
		return nil, err
	}

	record := normalizeRecord(payload)
	return &record, nil
}

// backoffDelay doubles the base delay each attempt, capped at maxDelay.
func (s *Synthesizer) backoffDelay(attempt int) time.Duration {
	delay := s.baseDelay << (attempt - 1)
	if s.maxDelay > 0 && delay > s.maxDelay {
		delay = s.maxDelay
	}
	return delay
}

// normalizeRecord maps an untrusted payload onto the fixed schema: every
// required key present, non-string values coerced, extra keys dropped.
func normalizeRecord(payload map[string]interface{}) transport.InsightRecord {
	values := make(map[string]string, len(requiredKeys))
	for _, key := range requiredKeys {
		values[key] = coerceString(payload[key])
	}

	return transport.InsightRecord{
		BuildingType:        values["building_type"],
		SizeCategory:        values["size_category"],
		EstimatedFloors:     values["estimated_floors"],
		LikelyUse:           values["likely_use"],
		AreaCharacteristics: values["area_characteristics"],
		PropertyInsights:    values["property_insights"],
		ArchitecturalStyle:  values["architectural_style"],
		NearbyAmenities:     values["nearby_amenities"],
		Recommendations:     values["recommendations"],
		Summary:             values["summary"],
	}
}

func coerceString(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return transport.Sentinel
	case string:
		if strings.TrimSpace(typed) == "" {
			return transport.Sentinel
		}
		return typed
	default:
		rendered, err := json.Marshal(typed)
		if err != nil {
			return transport.Sentinel
		}
		return string(rendered)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
