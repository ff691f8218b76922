package handler

import (
	"net/http"

	"prompt-refiner/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) getCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.promptService.Categories())
}

func (h *Handler) generatePrompt(c *gin.Context) {
	var req generatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	res, err := h.promptService.Refine(c.Request.Context(), req.TaskDescription, req.Category)
	if err != nil {
		refinementsTotal.WithLabelValues("failure").Inc()
		h.logger.Error("Failed to generate prompt",
			zap.String("requestID", middleware.RequestID(c)),
			zap.String("category", req.Category),
			zap.Error(err),
		)
		handleServiceError(c, err, "Failed to generate prompt")
		return
	}

	refinementsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, newRefinementResponse(res))
}

func (h *Handler) modifyPrompt(c *gin.Context) {
	var req modifyPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindingError(c, err)
		return
	}

	res, err := h.promptService.Modify(c.Request.Context(), req.toModel())
	if err != nil {
		h.logger.Error("Failed to modify prompt", zap.String("requestID", middleware.RequestID(c)), zap.Error(err))
		handleServiceError(c, err, "Failed to modify prompt")
		return
	}

	modificationsTotal.Inc()
	c.JSON(http.StatusOK, newRefinementResponse(res))
}
