package users

import (
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes configures user management and profile routes
func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Self-service profile routes
	profile := rg.Group("/users")
	profile.Use(middleware.JWTAuth())
	{
		profile.GET("/profile", controller.GetProfile)
		profile.PUT("/profile", controller.UpdateProfile)
	}

	// MPP administration routes
	mpp := rg.Group("/mpp/users")
	mpp.Use(middleware.JWTAuth(), middleware.RequireMPP())
	{
		mpp.GET("", controller.ListUsers)
		mpp.GET("/:id", controller.GetUser)
		mpp.PATCH("/:id/status", controller.ToggleStatus)
	}
}
