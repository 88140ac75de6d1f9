package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/analytics"
	"github.com/vacantvectors/postcraft/internal/config"
	"github.com/vacantvectors/postcraft/internal/database"
	"github.com/vacantvectors/postcraft/internal/dataset"
	"github.com/vacantvectors/postcraft/internal/eventbus"
	"github.com/vacantvectors/postcraft/internal/generator"
	"github.com/vacantvectors/postcraft/internal/handlers"
	"github.com/vacantvectors/postcraft/internal/middleware"
	"github.com/vacantvectors/postcraft/internal/orchestration"
	"github.com/vacantvectors/postcraft/internal/signing"
	"github.com/vacantvectors/postcraft/internal/suggest"
	"github.com/vacantvectors/postcraft/internal/telemetry"
	"github.com/vacantvectors/postcraft/internal/usage"

	_ "github.com/vacantvectors/postcraft/docs" // Swagger docs
)

// @title PostCraft API
// @version 0.1.0
// @description LinkedIn post generation service with few-shot prompting over uploaded example datasets.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	ctx := context.Background()

	// Initialize logger with stdout sync
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("PostCraft API starting...",
		zap.String("version", "0.1.0"),
		zap.String("environment", os.Getenv("GO_ENV")),
	)

	logger.Info("Loading configuration...")
	cfg := config.Load()

	logger.Info("Initializing telemetry...")
	shutdownTelemetry, err := telemetry.InitTracer(ctx, "postcraft-api")
	if err != nil {
		// Log but don't fail, as collector might be down
		logger.Error("failed to initialize telemetry", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTelemetry(ctx); err != nil {
				logger.Error("failed to shutdown telemetry", zap.Error(err))
			}
		}()
	}

	logger.Info("Initializing NATS...")
	bus, err := eventbus.Connect(cfg.NATSURL)
	if err != nil {
		logger.Error("failed to connect to NATS", zap.Error(err))
	} else {
		defer bus.Close()
		logger.Info("connected to NATS")
	}

	logger.Info("Initializing Temporal...")
	temporalClient, err := orchestration.InitTemporalClient(cfg.TemporalHostPort)
	if err != nil {
		logger.Error("failed to connect to temporal", zap.Error(err))
		// We don't fatal here to allow API to run even if Temporal is down
	} else {
		defer orchestration.CloseTemporalClient()
		logger.Info("connected to temporal")
	}

	// Initialize database
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Running migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize Redis
	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Initialize LLM provider
	llm, err := generator.NewOpenAILLM(cfg.LLM)
	if err != nil {
		logger.Fatal("failed to initialize LLM client", zap.Error(err))
	}

	// Wire services
	store := dataset.NewStore(db, logger)
	history := dataset.NewHistory(db)
	processor := dataset.NewProcessor(llm, cfg.LLM, logger)
	activities := orchestration.NewActivities(store, processor, logger)
	dispatcher := orchestration.NewDispatcher(temporalClient, activities, logger)
	analyticsService := analytics.NewService(store, rdb, logger)
	usageService := usage.NewService(db, cfg.MonthlyTokenLimit, logger)
	certService := signing.NewCertificateService(cfg.JWTSecret)
	suggestEngine := suggest.NewEngine(logger)
	generationService := generator.NewService(llm, cfg.LLM, history, bus, usageService, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())

	// Swagger documentation
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check handlers
	healthHandler := handlers.NewHealthHandler(db, rdb, bus, cfg.LLM.APIKey != "")
	router.GET("/health", healthHandler.Health)
	router.GET("/health/deep", healthHandler.DeepHealth)

	logger.Info("Router initialized, setting up handlers...")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret, logger)
	postsHandler := handlers.NewPostsHandler(generationService, store, history, usageService, certService, logger)
	datasetsHandler := handlers.NewDatasetsHandler(store, dispatcher, analyticsService, logger)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, logger)
	suggestHandler := handlers.NewSuggestHandler(suggestEngine, logger)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Generation options (public)
		v1.GET("/options", handlers.Options)

		// Protected routes with default rate limiting
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		protected.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimiter)) // 100 req/min
		{
			protected.POST("/auth/refresh", authHandler.RefreshToken)

			// User routes
			user := protected.Group("/user")
			{
				user.GET("/me", authHandler.GetCurrentUser)
				user.GET("/usage", postsHandler.UserUsage)
			}

			// Dataset routes
			datasets := protected.Group("/datasets")
			{
				datasets.GET("", datasetsHandler.List)
				datasets.POST("", datasetsHandler.Create)
				datasets.GET("/:id", datasetsHandler.Get)
				datasets.GET("/:id/posts", datasetsHandler.Posts)
				datasets.POST("/:id/posts", datasetsHandler.AddPosts)
				datasets.POST("/:id/process", datasetsHandler.Process)
				datasets.GET("/:id/search", datasetsHandler.Search)
				datasets.GET("/:id/tags", datasetsHandler.Tags)
				datasets.GET("/:id/stats", datasetsHandler.Stats)
			}

			// Analytics routes
			reports := protected.Group("/analytics/:id")
			{
				reports.GET("/engagement", analyticsHandler.Engagement)
				reports.GET("/content", analyticsHandler.Content)
				reports.GET("/distributions", analyticsHandler.Distributions)
			}

			// History routes
			historyRoutes := protected.Group("/posts/history")
			{
				historyRoutes.GET("", postsHandler.ListHistory)
				historyRoutes.GET("/:id", postsHandler.GetHistoryPost)
				historyRoutes.GET("/:id/certificate", postsHandler.Certificate)
				historyRoutes.DELETE("/:id", postsHandler.DeleteHistoryPost)
			}

			protected.POST("/posts/preview", postsHandler.Preview)
			protected.POST("/posts/suggest", suggestHandler.Suggest)

			// Generation routes - stricter rate limit + circuit breaker
			generation := protected.Group("/posts")
			generation.Use(middleware.RateLimitMiddleware(middleware.StrictRateLimiter)) // 20 req/min
			generation.Use(middleware.CircuitBreakerMiddleware(middleware.LLMCircuitBreaker))
			{
				generation.POST("/generate", postsHandler.Generate)
				generation.POST("/generate/custom", postsHandler.GenerateCustom)
			}
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
