package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/flightarcs-backend-go/internal/models"
	"github.com/jengzang/flightarcs-backend-go/internal/service"
	"github.com/jengzang/flightarcs-backend-go/pkg/response"
)

// AuthHandler handles HTTP requests for accounts
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.service.Register(creds)
	if err != nil {
		writeError(c, "Failed to register", err)
		return
	}

	response.Created(c, user)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token, err := h.service.Login(creds)
	if err != nil {
		writeError(c, "Login failed", err)
		return
	}

	response.Success(c, token)
}
