// Package insights wires generative building-insight synthesis into the API.
package insights

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apphttp "building_insights_backend/internal/http"
	"building_insights_backend/internal/insights/client"
	"building_insights_backend/internal/insights/handler"
	"building_insights_backend/internal/insights/service"
	"building_insights_backend/platform/config"
	"building_insights_backend/platform/httpkit"
	"building_insights_backend/platform/logger"
	"building_insights_backend/platform/validator"
)

// Module bundles the insights feature.
type Module struct {
	handler *handler.Handler
	enabled bool
}

// NewModule constructs the insights module. Without a Gemini API key the
// module still registers its route but answers 503, so clients get a clear
// signal instead of a 404.
func NewModule(ctx context.Context, cfg config.InsightsConfig, buildings handler.BuildingSource, images handler.ImageSource, val *validator.Validator, log *logger.Logger) (*Module, error) {
	if !cfg.IsGenerationEnabled() {
		log.Warn("GEMINI_API_KEY not set, insight synthesis disabled")
		return &Module{enabled: false}, nil
	}

	gen, err := client.NewGemini(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	profiles, err := service.LoadAreaProfiles(cfg.GetAreaProfilePath())
	if err != nil {
		return nil, err
	}

	synth := service.NewSynthesizer(gen, cfg, log)

	return &Module{
		handler: handler.New(synth, profiles, buildings, images, val, log),
		enabled: true,
	}, nil
}

func (m *Module) Name() string { return "insights" }

// RegisterRoutes mounts the insights endpoint.
func (m *Module) RegisterRoutes(rc *apphttp.RouterContext) {
	if !m.enabled {
		rc.V1.POST("/buildings/:id/insights", func(c *gin.Context) {
			httpkit.Error(c, http.StatusServiceUnavailable, "insight synthesis is not configured", nil)
		})
		return
	}
	rc.V1.POST("/buildings/:id/insights", m.handler.Synthesize)
}

var _ apphttp.Module = (*Module)(nil)
