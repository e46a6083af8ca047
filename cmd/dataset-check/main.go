package main

import (
	"fmt"
	"math"
	"os"

	"building_insights_backend/internal/buildings/repository"
	"building_insights_backend/platform/config"
	"building_insights_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("checking building dataset", "path", cfg.GetDatasetPath())

	records, skipped, err := repository.LoadFile(cfg.GetDatasetPath(), repository.LoadOptions{AllowPartial: true})
	if err != nil {
		log.Error("dataset unreadable", "error", err)
		os.Exit(1)
	}

	if skipped > 0 {
		log.Warn("dataset contains invalid features", "skipped", skipped)
	}

	if _, err := repository.NewIndex(records); err != nil {
		log.Error("dataset failed index validation", "error", err)
		os.Exit(1)
	}

	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	var totalArea float64
	var withFootprint int
	for _, b := range records {
		lat, lon := b.Centroid.Lat(), b.Centroid.Lon()
		minLat, maxLat = math.Min(minLat, lat), math.Max(maxLat, lat)
		minLon, maxLon = math.Min(minLon, lon), math.Max(maxLon, lon)
		totalArea += b.AreaSqM
		if len(b.Footprint) > 0 {
			withFootprint++
		}
	}

	fmt.Printf("buildings:       %d\n", len(records))
	fmt.Printf("skipped:         %d\n", skipped)
	fmt.Printf("with footprint:  %d\n", withFootprint)
	if len(records) > 0 {
		fmt.Printf("mean area m2:    %.1f\n", totalArea/float64(len(records)))
		fmt.Printf("bounding box:    [%.6f, %.6f] .. [%.6f, %.6f]\n", minLat, minLon, maxLat, maxLon)
	}

	if skipped > 0 && !cfg.GetDatasetAllowPartial() {
		log.Error("strict mode would reject this dataset; set DATASET_ALLOW_PARTIAL=true or fix the features")
		os.Exit(1)
	}

	log.Info("dataset OK")
}
