package handler

import (
	"net/http"
	"strings"
	"time"

	"prompt-refiner/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const claimsKey = "claims"

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.logger.Debug("Authorization header missing")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrUnauthorized, "")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			h.logger.Debug("Invalid Authorization header format")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid, "")
			return
		}

		claims, err := h.authService.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			h.logger.Debug("Access token verification failed", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, err, "")
			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func (h *Handler) getMe(c *gin.Context) {
	value, ok := c.Get(claimsKey)
	claims, isClaims := value.(*models.Claims)
	if !ok || !isClaims {
		handleServiceError(c, models.ErrUnauthorized, "")
		return
	}

	resp := meResponse{Email: claims.Email()}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}
