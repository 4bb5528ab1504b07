package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jengzang/flightarcs-backend-go/internal/middleware"
	"github.com/jengzang/flightarcs-backend-go/internal/models"
	"github.com/jengzang/flightarcs-backend-go/internal/service"
	"github.com/jengzang/flightarcs-backend-go/pkg/response"
)

// MIMEMsgpack is the content type of msgpack encoded geometry
const MIMEMsgpack = "application/msgpack"

// TripHandler handles HTTP requests for trips
type TripHandler struct {
	service *service.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *service.TripService) *TripHandler {
	return &TripHandler{service: service}
}

// CreateTrip handles POST /api/v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	trip, err := h.service.CreateTrip(middleware.UserID(c), req)
	if err != nil {
		writeError(c, "Failed to create trip", err)
		return
	}

	response.Created(c, trip)
}

// GetTrips handles GET /api/v1/trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	var filter models.TripFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	filter.UserID = middleware.UserID(c)
	filter.Normalize()

	trips, total, err := h.service.GetTrips(filter)
	if err != nil {
		writeError(c, "Failed to list trips", err)
		return
	}

	response.Success(c, models.NewTripsResponse(trips, total, filter))
}

// GetTripByID handles GET /api/v1/trips/:id
func (h *TripHandler) GetTripByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	trip, err := h.service.GetTripByID(middleware.UserID(c), id)
	if err != nil {
		writeError(c, "Failed to get trip", err)
		return
	}

	response.Success(c, trip)
}

// DeleteTrip handles DELETE /api/v1/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTrip(middleware.UserID(c), id); err != nil {
		writeError(c, "Failed to delete trip", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSummary handles GET /api/v1/trips/summary
func (h *TripHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.GetSummary(middleware.UserID(c))
	if err != nil {
		writeError(c, "Failed to get summary", err)
		return
	}

	response.Success(c, summary)
}

// GetGeometry handles GET /api/v1/trips/:id/geometry. Clients sending
// "Accept: application/msgpack" get the bare geometry in msgpack.
func (h *TripHandler) GetGeometry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	geometry, err := h.service.GetTripGeometry(middleware.UserID(c), id)
	if err != nil {
		writeError(c, "Failed to build trip geometry", err)
		return
	}

	if strings.Contains(c.GetHeader("Accept"), MIMEMsgpack) {
		body, err := msgpack.Marshal(geometry)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to encode geometry", err)
			return
		}
		c.Data(http.StatusOK, MIMEMsgpack, body)
		return
	}

	response.Success(c, geometry)
}
