package handler

import (
	"net/http"

	"prompt-refiner/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	if err := h.authService.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		handleServiceError(c, err, "Registration failed")
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Registration successful"})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	loginsTotal.WithLabelValues(statusLabel(err)).Inc()
	if err != nil {
		handleServiceError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}
