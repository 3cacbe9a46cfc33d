package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/okravchuk/airport-service/internal/auth"
)

type AuthHandler struct {
	service auth.AuthUseCase
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
}

func NewAuthHandler(service auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, exp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		ExpiresAt:   exp.Format(time.RFC3339),
	})
}
