// Package handler exposes the imagery planning HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"
	"strings"

	buildingsdomain "building_insights_backend/internal/buildings/domain"
	"building_insights_backend/internal/imagery/service"
	"building_insights_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// BuildingSource is the port to the buildings context.
type BuildingSource interface {
	Get(id int) *buildingsdomain.Building
}

// Handler serves the imagery endpoints.
type Handler struct {
	planner   *service.Planner
	buildings BuildingSource
}

// New creates an imagery handler.
func New(planner *service.Planner, buildings BuildingSource) *Handler {
	return &Handler{planner: planner, buildings: buildings}
}

// Bearings handles GET /api/v1/buildings/:id/bearings?directions=N,E,S,W
// The directions parameter defaults to all four cardinals.
func (h *Handler) Bearings(c *gin.Context) {
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

	directions := service.CardinalDirections
	if raw := c.Query("directions"); raw != "" {
		directions, err = service.ParseDirections(strings.Split(raw, ","))
		if httpkit.HandleError(c, err) {
			return
		}
	}

	httpkit.OK(c, gin.H{
		"buildingId": id,
		"bearings":   h.planner.Plan(building.Centroid, directions),
	})
}
