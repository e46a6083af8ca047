// Package buildings provides the building resolution bounded context: the
// footprint dataset index and the click-to-building resolver.
package buildings

import (
	"context"
	"errors"

	"building_insights_backend/internal/buildings/domain"
	"building_insights_backend/internal/buildings/handler"
	"building_insights_backend/internal/buildings/repository"
	"building_insights_backend/internal/buildings/service"
	apphttp "building_insights_backend/internal/http"
	"building_insights_backend/platform/config"
	"building_insights_backend/platform/logger"
)

// Config combines the config interfaces this module needs.
type Config interface {
	config.DatasetConfig
	config.ResolverConfig
}

// Module is the buildings bounded context module.
type Module struct {
	resolver *service.Resolver
	handler  *handler.Handler
}

// NewModule loads the dataset, builds the index, and wires the module.
// A malformed dataset fails startup unless partial loading is configured.
func NewModule(cfg Config, log *logger.Logger) (*Module, error) {
	records, skipped, err := repository.LoadFile(cfg.GetDatasetPath(), repository.LoadOptions{
		AllowPartial: cfg.GetDatasetAllowPartial(),
	})
	if err != nil {
		return nil, err
	}

	index, err := repository.NewIndex(records)
	if err != nil {
		return nil, err
	}
	log.DatasetLoaded(cfg.GetDatasetPath(), index.Count(), skipped)

	resolver := service.NewResolver(index, log)

	return &Module{
		resolver: resolver,
		handler:  handler.New(resolver, cfg.GetDefaultSearchRadiusMeters()),
	}, nil
}

// Name implements apphttp.Module.
func (m *Module) Name() string {
	return "buildings"
}

// RegisterRoutes implements apphttp.Module.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/buildings")
	group.GET("", m.handler.Summary)
	group.GET("/resolve", m.handler.Resolve)
	group.GET("/:id", m.handler.Get)
}

// Resolver exposes the resolution service to other modules.
func (m *Module) Resolver() *service.Resolver {
	return m.resolver
}

// Get returns a building record by dataset ID.
func (m *Module) Get(id int) *domain.Building {
	return m.resolver.Get(id)
}

// Ping implements the readiness check: the index must hold at least one record.
func (m *Module) Ping(_ context.Context) error {
	if m.resolver.Count() == 0 {
		return errors.New("building index is empty")
	}
	return nil
}

var _ apphttp.Module = (*Module)(nil)
