package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/flightarcs-backend-go/internal/models"
	"github.com/jengzang/flightarcs-backend-go/internal/service"
	"github.com/jengzang/flightarcs-backend-go/pkg/response"
)

// AirportHandler handles HTTP requests for airports
type AirportHandler struct {
	service *service.AirportService
}

// NewAirportHandler creates a new airport handler
func NewAirportHandler(service *service.AirportService) *AirportHandler {
	return &AirportHandler{service: service}
}

// Search handles GET /api/v1/airports?q=lon
func (h *AirportHandler) Search(c *gin.Context) {
	var filter models.AirportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	results, err := h.service.Search(filter)
	if err != nil {
		writeError(c, "Failed to search airports", err)
		return
	}

	response.Success(c, results)
}

// GetAirport handles GET /api/v1/airports/:code
func (h *AirportHandler) GetAirport(c *gin.Context) {
	airport, err := h.service.GetAirport(c.Param("code"))
	if err != nil {
		writeError(c, "Failed to get airport", err)
		return
	}

	response.Success(c, airport)
}
