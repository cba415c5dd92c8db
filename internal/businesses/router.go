package businesses

import (
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBusinessRoutes configures owner-facing and MPP business routes
func SetupBusinessRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Business owner routes
	owner := rg.Group("/businesses")
	owner.Use(middleware.JWTAuth(), middleware.RequireBusinessOwner())
	{
		owner.POST("", controller.CreateBusiness)
		owner.GET("", controller.GetMyBusinesses)
		owner.GET("/categories", controller.GetCategories)
		owner.GET("/:id", controller.GetBusiness)
		owner.PUT("/:id", controller.UpdateBusiness)
		owner.DELETE("/:id", controller.DeleteBusiness)
	}

	// MPP administration routes
	mpp := rg.Group("/mpp/businesses")
	mpp.Use(middleware.JWTAuth(), middleware.RequireMPP())
	{
		mpp.GET("", controller.ListBusinesses)
		mpp.GET("/statistics", controller.GetStatistics)
		mpp.GET("/:id", controller.GetBusinessDetail)
		mpp.PATCH("/:id/status", controller.UpdateBusinessStatus)
	}
}
