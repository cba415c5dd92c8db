package applications

import (
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupApplicationRoutes configures business-owner application routes
func SetupApplicationRoutes(rg *gin.RouterGroup, controller *Controller) {
	owner := rg.Group("/applications")
	owner.Use(middleware.JWTAuth(), middleware.RequireBusinessOwner())
	{
		owner.POST("", controller.SubmitApplications)
		owner.GET("", controller.GetMyApplications)
		owner.PATCH("/:id/cancel", controller.CancelApplication)
		owner.GET("/events", controller.BrowseEvents)
		owner.GET("/events/:id", controller.GetEventForOwner)
	}
}
