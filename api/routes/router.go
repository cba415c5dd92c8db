package routes

import (
	"net/http"
	"time"

	"rently/internal/applications"
	"rently/internal/approvals"
	"rently/internal/auth"
	"rently/internal/businesses"
	"rently/internal/events"
	"rently/internal/facilities"
	"rently/internal/notifications"
	"rently/internal/shared/config"
	"rently/internal/shared/database"
	"rently/internal/users"
	"rently/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router wires repositories, services and controllers together and
// mounts every route group.
type Router struct {
	config       *config.Config
	db           *database.DB
	cache        cache.Service
	publisher    notifications.Publisher
	eventService events.Service
}

func NewRouter(cfg *config.Config, db *database.DB) *Router {
	r := &Router{
		config: cfg,
		db:     db,
	}
	if db.Redis != nil {
		r.cache = cache.NewService(db.Redis)
	}
	return r
}

// SetPublisher attaches the Kafka decision publisher. Optional, the
// approval flow works without it.
func (r *Router) SetPublisher(publisher notifications.Publisher) {
	r.publisher = publisher
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())

	// Repositories
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	businessRepo := businesses.NewRepository(r.db.GetPostgreSQL())
	facilityRepo := facilities.NewRepository(r.db.GetPostgreSQL())
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	applicationRepo := applications.NewRepository(r.db.GetPostgreSQL())
	approvalRepo := approvals.NewRepository(r.db.GetPostgreSQL())

	// Services
	authService := auth.NewService(authRepo, r.config)
	userService := users.NewService(userRepo)
	businessService := businesses.NewService(businessRepo, userRepo)
	facilityService := facilities.NewService(facilityRepo)
	eventService := events.NewService(eventRepo, facilityService)
	applicationService := applications.NewService(applicationRepo, businessRepo, facilityRepo, eventRepo, userRepo)
	approvalService := approvals.NewService(approvalRepo, eventRepo)

	// Cross-service wiring. Blocking a user cascades into the approval
	// orchestrator, deleting a business consults the application ledger.
	userService.SetApprovalService(approvalService)
	businessService.SetApplicationChecker(applicationService)

	if r.cache != nil {
		facilityService.SetCacheService(r.cache)
		eventService.SetCacheService(r.cache)
		approvalService.SetCacheService(r.cache)
	}
	if r.publisher != nil {
		approvalService.SetPublisher(r.publisher)
	}

	// The status refresher job reuses this service.
	r.eventService = eventService

	// Routes
	auth.SetupAuthRoutes(api, auth.NewController(authService))
	users.SetupUserRoutes(api, users.NewController(userService))
	businesses.SetupBusinessRoutes(api, businesses.NewController(businessService))
	facilities.SetupFacilityRoutes(api, facilities.NewController(facilityService))
	events.SetupEventRoutes(api, events.NewController(eventService))
	applications.SetupApplicationRoutes(api, applications.NewController(applicationService))
	approvals.SetupApprovalRoutes(api, approvals.NewController(approvalService))
}

// EventService exposes the wired event service for background jobs.
// Valid after SetupRoutes.
func (r *Router) EventService() events.Service {
	return r.eventService
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "rently-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "rently-backend",
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
