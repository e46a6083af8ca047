// Package imagery provides the bearing planning bounded context and the
// Street View imagery collaborator.
package imagery

import (
	buildingsdomain "building_insights_backend/internal/buildings/domain"
	apphttp "building_insights_backend/internal/http"
	"building_insights_backend/internal/imagery/client"
	"building_insights_backend/internal/imagery/handler"
	"building_insights_backend/internal/imagery/service"
	"building_insights_backend/platform/config"
	"building_insights_backend/platform/logger"
)

// BuildingSource is the port to the buildings context.
type BuildingSource interface {
	Get(id int) *buildingsdomain.Building
}

// Module is the imagery bounded context module. Bearing planning is always
// available; image fetching requires a Street View API key and degrades
// gracefully without one.
type Module struct {
	planner *service.Planner
	fetcher *service.Fetcher
	handler *handler.Handler
}

// NewModule creates and initializes the imagery module.
func NewModule(cfg config.StreetViewConfig, buildings BuildingSource, log *logger.Logger) *Module {
	planner := service.NewPlanner(cfg.GetStreetViewCaptureRadiusMeters())

	var fetcher *service.Fetcher
	if cfg.IsStreetViewEnabled() {
		fetcher = service.NewFetcher(client.New(cfg, log), log)
		log.Info("street view imagery enabled")
	} else {
		log.Info("street view imagery disabled: STREETVIEW_API_KEY not configured")
	}

	return &Module{
		planner: planner,
		fetcher: fetcher,
		handler: handler.New(planner, buildings),
	}
}

// Name implements apphttp.Module.
func (m *Module) Name() string {
	return "imagery"
}

// RegisterRoutes implements apphttp.Module.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/buildings/:id/bearings", m.handler.Bearings)
}

// Planner exposes the bearing planner to other modules.
func (m *Module) Planner() *service.Planner {
	return m.planner
}

// Fetcher exposes the image fetcher, or nil when imagery is disabled.
func (m *Module) Fetcher() *service.Fetcher {
	return m.fetcher
}

// IsFetchingEnabled reports whether directional images can be retrieved.
func (m *Module) IsFetchingEnabled() bool {
	return m.fetcher != nil
}

var _ apphttp.Module = (*Module)(nil)
