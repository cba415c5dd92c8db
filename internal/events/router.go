package events

import (
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupEventRoutes configures event browsing and MPP event management
func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Browsing for authenticated users
	browse := rg.Group("/events")
	browse.Use(middleware.JWTAuth())
	{
		browse.GET("", controller.ListEvents)
		browse.GET("/:id", controller.GetEvent)
		browse.GET("/:id/facilities", controller.GetEventWithFacilities)
	}

	// MPP event management
	mpp := rg.Group("/mpp/events")
	mpp.Use(middleware.JWTAuth(), middleware.RequireMPP())
	{
		mpp.POST("", controller.CreateEvent)
		mpp.PUT("/:id", controller.UpdateEvent)
		mpp.DELETE("/:id", controller.CancelEvent)
		mpp.PATCH("/:id/applications", controller.ToggleApplicationStatus)
	}
}
