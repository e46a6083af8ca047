package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"building_insights_backend/internal/adapters"
	"building_insights_backend/internal/buildings"
	apphttp "building_insights_backend/internal/http"
	"building_insights_backend/internal/http/router"
	"building_insights_backend/internal/imagery"
	"building_insights_backend/internal/insights"
	"building_insights_backend/platform/config"
	"building_insights_backend/platform/logger"
	"building_insights_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Buildings must load first: everything else resolves against its index.
	buildingsModule, err := buildings.NewModule(cfg, log)
	if err != nil {
		log.Error("failed to initialize buildings module", "error", err)
		panic("failed to initialize buildings module: " + err.Error())
	}

	imageryModule := imagery.NewModule(cfg, buildingsModule, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Insights sees imagery only through the adapter, never directly.
	imageSource := adapters.NewImageryImageSource(imageryModule)
	insightsModule, err := insights.NewModule(ctx, cfg, buildingsModule, imageSource, val, log)
	if err != nil {
		log.Error("failed to initialize insights module", "error", err)
		panic("failed to initialize insights module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: buildingsModule,
		Modules: []apphttp.Module{
			buildingsModule,
			imageryModule,
			insightsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
