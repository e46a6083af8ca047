package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"

	buildingsdomain "building_insights_backend/internal/buildings/domain"
	"building_insights_backend/internal/insights/client"
	"building_insights_backend/internal/insights/service"
	"building_insights_backend/internal/insights/transport"
	"building_insights_backend/platform/logger"
	"building_insights_backend/platform/validator"
)

type fakeBuildings struct{}

func (fakeBuildings) Get(id int) *buildingsdomain.Building {
	if id != 7 {
		return nil
	}
	return &buildingsdomain.Building{
		ID:         7,
		Centroid:   orb.Point{78.4305, 17.4105},
		AreaSqM:    240,
		Confidence: 0.85,
		PlusCode:   "7J9W4M00+XX",
	}
}

type fakeImages struct {
	available bool
	captured  []string
	err       error
}

func (f *fakeImages) Available() bool { return f.available }

func (f *fakeImages) Capture(_ context.Context, _ orb.Point, directions []string) ([]client.Image, error) {
	f.captured = directions
	if f.err != nil {
		return nil, f.err
	}
	images := make([]client.Image, 0, len(directions))
	for _, d := range directions {
		images = append(images, client.Image{Label: d, MIMEType: "image/jpeg", Data: []byte{1}})
	}
	return images, nil
}

type staticGenerator struct {
	raw string
	err error
}

func (g staticGenerator) Generate(context.Context, client.Request) (string, error) {
	return g.raw, g.err
}

type handlerConfig struct{}

func (handlerConfig) GetGeminiAPIKey() string               { return "test-key" }
func (handlerConfig) GetGeminiModel() string                { return "test-model" }
func (handlerConfig) GetGenerationMaxAttempts() int         { return 1 }
func (handlerConfig) GetGenerationBaseDelay() time.Duration { return time.Millisecond }
func (handlerConfig) GetGenerationMaxDelay() time.Duration  { return time.Millisecond }
func (handlerConfig) GetGenerationTimeout() time.Duration   { return 0 }
func (handlerConfig) IsGenerationEnabled() bool             { return true }

func newTestRouter(t *testing.T, gen client.Generator, images ImageSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("test")
	synth := service.NewSynthesizer(gen, handlerConfig{}, log)
	profiles := &service.AreaProfiles{
		Default: "generic urban area",
		Areas:   map[string]string{"gachibowli": "IT corridor"},
	}

	h := New(synth, profiles, fakeBuildings{}, images, validator.New(), log)

	r := gin.New()
	r.POST("/buildings/:id/insights", h.Synthesize)
	return r
}

func postInsights(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, path, nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSynthesize_EmptyBodyUsesDefaults(t *testing.T) {
	gen := staticGenerator{raw: `{"building_type": "Residential", "summary": "A house."}`}
	r := newTestRouter(t, gen, &fakeImages{})

	rec := postInsights(t, r, "/buildings/7/insights", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp transport.SynthesizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.BuildingID != 7 {
		t.Fatalf("expected building 7, got %d", resp.BuildingID)
	}
	if resp.Insights.BuildingType != "Residential" {
		t.Fatalf("unexpected insights: %+v", resp.Insights)
	}
	if resp.Insights.EstimatedFloors != transport.Sentinel {
		t.Fatalf("expected sentinel for missing key, got %q", resp.Insights.EstimatedFloors)
	}
	if len(resp.ImagesUsed) != 0 {
		t.Fatalf("expected no images without includeImagery, got %v", resp.ImagesUsed)
	}
}

func TestSynthesize_IncludesImageryWhenRequested(t *testing.T) {
	gen := staticGenerator{raw: `{"summary": "Seen from four sides."}`}
	images := &fakeImages{available: true}
	r := newTestRouter(t, gen, images)

	rec := postInsights(t, r, "/buildings/7/insights", `{"includeImagery": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp transport.SynthesizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.ImagesUsed) != 4 {
		t.Fatalf("expected 4 default directions, got %v", resp.ImagesUsed)
	}
	if len(images.captured) != 4 {
		t.Fatalf("expected default cardinal capture, got %v", images.captured)
	}
}

func TestSynthesize_ImageryFailureDegradesToTextOnly(t *testing.T) {
	gen := staticGenerator{raw: `{"summary": "Text only."}`}
	images := &fakeImages{available: true, err: errors.New("street view down")}
	r := newTestRouter(t, gen, images)

	rec := postInsights(t, r, "/buildings/7/insights", `{"includeImagery": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("imagery failure must not fail synthesis, got %d", rec.Code)
	}

	var resp transport.SynthesizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.ImagesUsed) != 0 {
		t.Fatalf("expected text-only synthesis, got images %v", resp.ImagesUsed)
	}
}

func TestSynthesize_UnknownBuilding(t *testing.T) {
	r := newTestRouter(t, staticGenerator{raw: "{}"}, &fakeImages{})

	if rec := postInsights(t, r, "/buildings/99/insights", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := postInsights(t, r, "/buildings/abc/insights", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSynthesize_TooManyDirectionsRejected(t *testing.T) {
	r := newTestRouter(t, staticGenerator{raw: "{}"}, &fakeImages{available: true})

	body := `{"includeImagery": true, "directions": ["0","45","90","135","180","225","270","315","350"]}`
	if rec := postInsights(t, r, "/buildings/7/insights", body); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 9 directions, got %d", rec.Code)
	}
}

func TestSynthesize_GenerationFailureMapsTo502(t *testing.T) {
	gen := staticGenerator{err: errors.New("model overloaded")}
	r := newTestRouter(t, gen, &fakeImages{})

	rec := postInsights(t, r, "/buildings/7/insights", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 after exhausted retries, got %d: %s", rec.Code, rec.Body.String())
	}
}
