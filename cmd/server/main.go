package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prompt-refiner/internal/ai"
	"prompt-refiner/internal/config"
	"prompt-refiner/internal/handler"
	"prompt-refiner/internal/logger"
	"prompt-refiner/internal/middleware"
	"prompt-refiner/internal/prompts"
	"prompt-refiner/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		Service:     "prompt-refiner",
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel))
	zap.L().Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("aiProvider", cfg.AIProvider),
		zap.String("userStore", cfg.UserStore),
	)

	// --- Prompt catalog ---
	registry, err := loadRegistry(cfg)
	if err != nil {
		zap.L().Fatal("Failed to load prompt catalog", zap.Error(err))
	}
	zap.L().Info("Prompt catalog loaded",
		zap.Int("categories", len(registry.List())),
		zap.String("default", registry.Default().ID),
	)

	// --- External Connections ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	generator, err := ai.NewGenerator(ctx, cfg, log)
	if err != nil {
		zap.L().Fatal("Failed to create generation client", zap.Error(err))
	}

	storeCtx, storeCancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer storeCancel()
	stores, err := setupStores(storeCtx, cfg, log)
	if err != nil {
		zap.L().Fatal("Failed to set up user store", zap.Error(err))
	}
	defer stores.Close()

	// --- Dependency Injection ---
	promptSvc := service.NewPromptService(registry, generator, log,
		service.WithAnalysisCache(cfg.AnalysisCacheSize, cfg.AnalysisCacheTTL),
	)
	chatSvc := service.NewChatService(generator, log)
	authSvc := service.NewAuthService(stores.users, cfg, log)

	rateLimitStore := handler.NewMemoryRateLimitStore(cfg.AuthRateLimit, cfg.AuthRateWindow)
	if stores.redis != nil {
		rateLimitStore = handler.NewRedisRateLimitStore(stores.redis, cfg.AuthRateLimit, cfg.AuthRateWindow)
	}
	rateLimitMiddleware := handler.AuthRateLimiter(rateLimitStore, log.Named("RateLimiter"))
	zap.L().Info("Rate limiter middleware initialized",
		zap.Uint("limit", cfg.AuthRateLimit),
		zap.Duration("window", cfg.AuthRateWindow),
	)

	h := handler.NewHandler(promptSvc, chatSvc, authSvc, cfg.FrontendDir, log)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.GetAllowedOrigins()
	corsConfig.AllowMethods = []string{"GET", "POST", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	h.RegisterRoutes(router, rateLimitMiddleware)

	// Prometheus middleware подключаем после регистрации роутов
	p.Use(router)

	// --- Start HTTP Server ---
	// refine = один вызов модели + два параллельных на анализ
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.AIRequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

func loadRegistry(cfg *config.Config) (*prompts.Registry, error) {
	if cfg.PromptCatalogFile != "" {
		zap.L().Info("Loading prompt catalog from file", zap.String("path", cfg.PromptCatalogFile))
		return prompts.LoadFile(cfg.PromptCatalogFile)
	}
	return prompts.NewRegistry()
}
