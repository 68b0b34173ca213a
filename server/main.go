package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tixly/api/routes"
	"tixly/internal/notifications"
	"tixly/internal/shared/config"
	"tixly/internal/shared/database"
	"tixly/pkg/cache"
	"tixly/pkg/logger"
	"tixly/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Initialize DB
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect:", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize cache service
	var cacheService cache.Service
	if db.Redis != nil {
		cacheService = cache.NewService(db.GetRedis())
		appLogger.Info("Redis cache service initialized")
	} else {
		appLogger.Info("Redis unavailable, derived views will be recomputed on every fetch")
	}

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:          cfg.RateLimit.Enabled,
			WindowDuration:   cfg.RateLimit.WindowDuration,
			DefaultRequests:  cfg.RateLimit.DefaultRequests,
			PublicRequests:   cfg.RateLimit.PublicRequests,
			UserRequests:     cfg.RateLimit.UserRequests,
			MerchantRequests: cfg.RateLimit.MerchantRequests,
			HealthRequests:   cfg.RateLimit.HealthRequests,
			WhitelistedIPs:   cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedis(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Setup router
	appRouter := routes.NewRouter(cfg, db, cacheService)
	engine := setupEngine(appRouter, rateLimiter)

	// Notification service shutdown flushes pending optimistic mutations
	notificationService := appRouter.NotificationService()
	defer notificationService.Shutdown()

	// Start Kafka ingestion workers
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	if cfg.Kafka.Enabled {
		consumerConfig := notifications.ConsumerConfigFromApp(cfg.Kafka)
		ingestConsumer, err := notifications.NewKafkaIngestConsumer(consumerConfig, notificationService)
		if err != nil {
			appLogger.Error("Failed to initialize notification consumer", slog.Any("error", err))
			appLogger.Info("Continuing without ingestion - notifications will not be processed")
		} else {
			if err := ingestConsumer.StartConsumers(consumerCtx, cfg.Kafka.NumWorkers); err != nil {
				appLogger.Error("Failed to start notification consumer", slog.Any("error", err))
			} else {
				appLogger.Info("Notification ingestion started",
					slog.String("topic", cfg.Kafka.NotificationTopic),
					slog.Int("workers", cfg.Kafka.NumWorkers),
				)
			}

			defer func() {
				appLogger.Info("Stopping notification consumer...")
				if err := ingestConsumer.Stop(); err != nil {
					appLogger.Error("Error stopping notification consumer", slog.Any("error", err))
				}
			}()
		}
	} else {
		appLogger.Info("Kafka ingestion disabled")
	}

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_status", fmt.Sprintf("http://localhost:%s%s/status", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis_cache", (db.Redis != nil)),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupEngine(appRouter *routes.Router, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
