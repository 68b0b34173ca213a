// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"tixly/internal/merchant"
	"tixly/internal/notifications"
	"tixly/internal/profile"
	"tixly/internal/shared/config"
	"tixly/internal/shared/database"
	"tixly/internal/tickets"
	"tixly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service

	profileService      profile.Service       // For dependency injection
	notificationService notifications.Service // Kept for the Kafka consumer and shutdown
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cacheService,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Profile routes first so its service can be injected downstream
		r.setupProfileRoutes(api)

		r.setupTicketRoutes(api)
		r.setupNotificationRoutes(api)
		r.setupMerchantRoutes(api)
	}
}

// NotificationService exposes the notification service for the ingestion
// consumer and graceful shutdown.
func (r *Router) NotificationService() notifications.Service {
	return r.notificationService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tixly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tixly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupProfileRoutes configures profile routes
func (r *Router) setupProfileRoutes(rg *gin.RouterGroup) {
	profileRepo := profile.NewRepository(r.db.GetPostgreSQL())
	profileService := profile.NewService(profileRepo)
	profileController := profile.NewController(profileService)

	// Store profile service for dependency injection
	r.profileService = profileService

	profile.SetupProfileRoutes(rg, profileController)
}

// setupTicketRoutes configures ticket routes
func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketRepo := tickets.NewRepository(r.db.GetPostgreSQL())
	ticketService := tickets.NewService(ticketRepo)

	// Inject profile service dependency (holder names on exports)
	if r.profileService != nil {
		ticketService.SetProfileService(r.profileService)
	}

	ticketController := tickets.NewController(ticketService)

	tickets.SetupTicketRoutes(rg, ticketController)
}

// setupNotificationRoutes configures notification routes
func (r *Router) setupNotificationRoutes(rg *gin.RouterGroup) {
	notificationRepo := notifications.NewRepository(r.db.GetPostgreSQL())
	notificationService := notifications.NewService(notificationRepo, r.config.Reconcile, r.config.Redis.UnreadCountTTL)

	if r.cacheService != nil {
		notificationService.SetCacheService(r.cacheService)
	}

	// Keep a handle for the Kafka consumer and graceful shutdown
	r.notificationService = notificationService

	notificationController := notifications.NewController(notificationService)

	notifications.SetupNotificationRoutes(rg, notificationController)
}

// setupMerchantRoutes configures merchant dashboard routes
func (r *Router) setupMerchantRoutes(rg *gin.RouterGroup) {
	merchantRepo := merchant.NewRepository(r.db.GetPostgreSQL())
	merchantService := merchant.NewService(merchantRepo, r.config.Redis.StatsCacheTTL)

	if r.cacheService != nil {
		merchantService.SetCacheService(r.cacheService)
	}

	merchantController := merchant.NewController(merchantService)

	merchant.SetupMerchantRoutes(rg, merchantController)
}
