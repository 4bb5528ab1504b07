package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/flightarcs-backend-go/internal/middleware"
	"github.com/jengzang/flightarcs-backend-go/internal/models"
	"github.com/jengzang/flightarcs-backend-go/internal/service"
	"github.com/jengzang/flightarcs-backend-go/pkg/response"
)

// MapHandler handles HTTP requests for rendered maps
type MapHandler struct {
	service *service.MapService
}

// NewMapHandler creates a new map handler
func NewMapHandler(service *service.MapService) *MapHandler {
	return &MapHandler{service: service}
}

// LayersRequest is the body of PUT /api/v1/map/layers
type LayersRequest struct {
	HiddenTrips []int64 `json:"hidden_trips"`
}

func (h *MapHandler) hidden(c *gin.Context) ([]int64, bool) {
	_, ids, ok := h.bindFilter(c)
	return ids, ok
}

func (h *MapHandler) bindFilter(c *gin.Context) (models.MapFilter, []int64, bool) {
	var filter models.MapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return filter, nil, false
	}
	ids, err := parseIDList(filter.Hide)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid hide list", err)
		return filter, nil, false
	}
	return filter, ids, true
}

// GetGeoJSON handles GET /api/v1/map/geojson. The FeatureCollection is
// returned bare so map libraries can load the URL directly.
func (h *MapHandler) GetGeoJSON(c *gin.Context) {
	hide, ok := h.hidden(c)
	if !ok {
		return
	}

	fc, err := h.service.GeoJSON(middleware.UserID(c), hide)
	if err != nil {
		writeError(c, "Failed to build map", err)
		return
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to encode map", err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}

// GetPolylines handles GET /api/v1/map/polylines
func (h *MapHandler) GetPolylines(c *gin.Context) {
	filter, hide, ok := h.bindFilter(c)
	if !ok {
		return
	}

	paths, err := h.service.Polylines(middleware.UserID(c), hide, filter.Tolerance)
	if err != nil {
		writeError(c, "Failed to encode polylines", err)
		return
	}

	response.Success(c, paths)
}

// GetKML handles GET /api/v1/map/kml
func (h *MapHandler) GetKML(c *gin.Context) {
	hide, ok := h.hidden(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.WriteKML(&buf, middleware.UserID(c), hide); err != nil {
		writeError(c, "Failed to export KML", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="flights.kml"`)
	c.Data(http.StatusOK, "application/vnd.google-earth.kml+xml", buf.Bytes())
}

// GetLayers handles GET /api/v1/map/layers
func (h *MapHandler) GetLayers(c *gin.Context) {
	layers, err := h.service.GetLayers(middleware.UserID(c))
	if err != nil {
		writeError(c, "Failed to load layers", err)
		return
	}

	response.Success(c, LayersRequest{HiddenTrips: layers.Hidden()})
}

// SaveLayers handles PUT /api/v1/map/layers
func (h *MapHandler) SaveLayers(c *gin.Context) {
	var req LayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	layers, err := h.service.SaveLayers(middleware.UserID(c), req.HiddenTrips)
	if err != nil {
		writeError(c, "Failed to save layers", err)
		return
	}

	response.Success(c, LayersRequest{HiddenTrips: layers.Hidden()})
}
