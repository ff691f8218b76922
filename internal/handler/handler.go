package handler

import (
	"net/http"

	"prompt-refiner/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the JSON API and the frontend pages.
type Handler struct {
	promptService service.PromptService
	chatService   service.ChatService
	authService   service.AuthService
	frontendDir   string
	logger        *zap.Logger
}

func NewHandler(
	promptService service.PromptService,
	chatService service.ChatService,
	authService service.AuthService,
	frontendDir string,
	logger *zap.Logger,
) *Handler {
	registerValidators()
	return &Handler{
		promptService: promptService,
		chatService:   chatService,
		authService:   authService,
		frontendDir:   frontendDir,
		logger:        logger.Named("Handler"),
	}
}

// RegisterRoutes wires every route. authLimiter guards /api/register and /api/login;
// nil disables it.
func (h *Handler) RegisterRoutes(router *gin.Engine, authLimiter gin.HandlerFunc) {
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, healthResponse{Status: "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	api := router.Group("/api")
	{
		api.GET("/categories", h.getCategories)
		api.POST("/generate-prompt", h.generatePrompt)
		api.POST("/modify-prompt", h.modifyPrompt)
		api.POST("/chat", h.chat)
	}

	authGroup := router.Group("/api")
	if authLimiter != nil {
		authGroup.Use(authLimiter)
	}
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	protected := router.Group("/api")
	protected.Use(h.AuthMiddleware())
	{
		protected.GET("/me", h.getMe)
	}

	h.registerPages(router)
}
