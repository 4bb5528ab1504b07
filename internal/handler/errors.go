package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/flightarcs-backend-go/internal/repository"
	"github.com/jengzang/flightarcs-backend-go/internal/service"
	"github.com/jengzang/flightarcs-backend-go/internal/spatial"
	"github.com/jengzang/flightarcs-backend-go/pkg/response"
)

// writeError maps service and repository errors to HTTP status codes
func writeError(c *gin.Context, message string, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, repository.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, service.ErrUnknownAirport):
		code = http.StatusBadRequest
	case errors.Is(err, spatial.ErrInvalidCoordinate):
		code = http.StatusUnprocessableEntity
	}
	response.Error(c, code, message, err)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid trip ID", err)
		return 0, false
	}
	return id, true
}

// parseIDList parses "1,2,3". Blank entries are ignored.
func parseIDList(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
