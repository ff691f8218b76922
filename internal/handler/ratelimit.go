package handler

import (
	"net/http"
	"time"

	"prompt-refiner/internal/models"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewMemoryRateLimitStore keeps per-IP hit counters in process memory.
func NewMemoryRateLimitStore(limit uint, window time.Duration) rateli.Store {
	return rateli.InMemoryStore(&rateli.InMemoryOptions{
		Rate:  window,
		Limit: limit,
	})
}

// NewRedisRateLimitStore shares hit counters between instances through Redis.
func NewRedisRateLimitStore(client *redis.Client, limit uint, window time.Duration) rateli.Store {
	return rateli.RedisStore(&rateli.RedisOptions{
		RedisClient: client,
		Rate:        window,
		Limit:       limit,
	})
}

// AuthRateLimiter limits requests per client IP and answers 429 when the limit trips.
func AuthRateLimiter(store rateli.Store, logger *zap.Logger) gin.HandlerFunc {
	return rateli.RateLimiter(store, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			logger.Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Code:   models.ErrCodeRateLimitExceeded,
				Detail: "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
			})
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
