// Package handler exposes the building resolution HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"

	"building_insights_backend/internal/buildings/domain"
	"building_insights_backend/internal/buildings/service"
	"building_insights_backend/internal/buildings/transport"
	"building_insights_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves the buildings endpoints.
type Handler struct {
	svc           *service.Resolver
	defaultRadius float64
}

// New creates a buildings handler.
func New(svc *service.Resolver, defaultRadiusMeters float64) *Handler {
	return &Handler{svc: svc, defaultRadius: defaultRadiusMeters}
}

// Resolve handles GET /api/v1/buildings/resolve?lat=&lon=&radius=
func (h *Handler) Resolve(c *gin.Context) {
	var req transport.ResolveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "lat and lon are required coordinates; radius must be positive", nil)
		return
	}

	radius := req.Radius
	if radius == 0 {
		radius = h.defaultRadius
	}

	match, err := h.svc.Resolve(domain.ClickQuery{
		Lat:               *req.Lat,
		Lon:               *req.Lon,
		MaxDistanceMeters: radius,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	if match == nil {
		httpkit.Error(c, http.StatusNotFound, "no building found near the clicked location", gin.H{
			"searchRadiusMeters": radius,
		})
		return
	}

	httpkit.OK(c, transport.ResolveResponse{
		MatchKind:      string(match.Kind),
		DistanceMeters: match.DistanceMeters,
		Building:       transport.FromDomain(match.Building),
	})
}

// Get handles GET /api/v1/buildings/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "building id must be an integer", nil)
		return
	}

	building := h.svc.Get(id)
	if building == nil {
		httpkit.Error(c, http.StatusNotFound, "unknown building id", nil)
		return
	}

	httpkit.OK(c, transport.FromDomain(building))
}

// Summary handles GET /api/v1/buildings
func (h *Handler) Summary(c *gin.Context) {
	httpkit.OK(c, transport.DatasetSummary{Buildings: h.svc.Count()})
}
