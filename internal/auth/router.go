package auth

import (
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes configures authentication routes
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", controller.Register)
		authGroup.POST("/login", controller.Login)
		authGroup.POST("/refresh", controller.RefreshToken)

		protected := authGroup.Group("")
		protected.Use(middleware.JWTAuth())
		{
			protected.POST("/change-password", controller.ChangePassword)
		}
	}
}
