// Package handler exposes the insight synthesis HTTP endpoint.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paulmach/orb"

	buildingsdomain "building_insights_backend/internal/buildings/domain"
	"building_insights_backend/internal/insights/client"
	"building_insights_backend/internal/insights/service"
	"building_insights_backend/internal/insights/transport"
	"building_insights_backend/platform/httpkit"
	"building_insights_backend/platform/logger"
	"building_insights_backend/platform/validator"
)

// BuildingSource is the port to the buildings context.
type BuildingSource interface {
	Get(id int) *buildingsdomain.Building
}

// ImageSource is the port to the imagery context. Capture plans bearings for
// the requested directions and returns whichever directional images were
// actually obtainable.
type ImageSource interface {
	Available() bool
	Capture(ctx context.Context, anchor orb.Point, directions []string) ([]client.Image, error)
}

// Handler serves the insights endpoint.
type Handler struct {
	synth     *service.Synthesizer
	profiles  *service.AreaProfiles
	buildings BuildingSource
	images    ImageSource
	val       *validator.Validator
	log       *logger.Logger
}

// New creates an insights handler.
func New(synth *service.Synthesizer, profiles *service.AreaProfiles, buildings BuildingSource, images ImageSource, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{
		synth:     synth,
		profiles:  profiles,
		buildings: buildings,
		images:    images,
		val:       val,
		log:       log,
	}
}

// Synthesize handles POST /api/v1/buildings/:id/insights
func (h *Handler) Synthesize(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "building id must be an integer", nil)
		return
	}

	building := h.buildings.Get(id)
	if building == nil {
		httpkit.Error(c, http.StatusNotFound, "unknown building id", nil)
		return
	}

	var req transport.SynthesizeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if err := h.val.Struct(req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
	}

	images := h.captureImages(c.Request.Context(), building, req)

	notes := h.profiles.Notes(req.Area)
	if req.ContextNotes != "" {
		notes = req.ContextNotes
	}

	record, err := h.synth.Synthesize(c.Request.Context(), service.BuildingAttributes{
		AreaSqMeters: building.AreaSqM,
		Confidence:   building.Confidence,
		Latitude:     building.Centroid.Lat(),
		Longitude:    building.Centroid.Lon(),
		PlusCode:     building.PlusCode,
	}, images, notes)
	if httpkit.HandleError(c, err) {
		return
	}

	labels := make([]string, 0, len(images))
	for _, img := range images {
		labels = append(labels, img.Label)
	}

	httpkit.OK(c, transport.SynthesizeResponse{
		ID:         uuid.New(),
		BuildingID: building.ID,
		ImagesUsed: labels,
		Insights:   *record,
	})
}

// captureImages fetches directional imagery when requested and available.
// Imagery problems degrade to a text-only synthesis rather than failing the
// request.
func (h *Handler) captureImages(ctx context.Context, building *buildingsdomain.Building, req transport.SynthesizeRequest) []client.Image {
	if !req.IncludeImagery || h.images == nil || !h.images.Available() {
		return nil
	}

	directions := req.Directions
	if len(directions) == 0 {
		directions = []string{"N", "E", "S", "W"}
	}

	images, err := h.images.Capture(ctx, building.Centroid, directions)
	if err != nil {
		h.log.Warn("imagery capture failed, continuing without images",
			"buildingId", building.ID, "error", err)
		return nil
	}
	return images
}
