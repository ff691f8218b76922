package handler

import (
	"net/http"

	"prompt-refiner/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	reply, err := h.chatService.Respond(c.Request.Context(), req.turns())
	chatRequestsTotal.WithLabelValues(statusLabel(err)).Inc()
	if err != nil {
		h.logger.Warn("Chat request failed",
			zap.String("requestID", middleware.RequestID(c)),
			zap.Int("turns", len(req.History)),
			zap.Error(err),
		)
		handleServiceError(c, err, "Failed to get chat response")
		return
	}

	c.JSON(http.StatusOK, chatResponse{ModelResponse: reply})
}
