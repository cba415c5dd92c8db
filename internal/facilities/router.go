package facilities

import (
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupFacilityRoutes configures catalog browsing and MPP catalog
// management routes. Event facility assignments are managed through
// the event routes.
func SetupFacilityRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Catalog browsing for authenticated users
	catalog := rg.Group("/facilities")
	catalog.Use(middleware.JWTAuth())
	{
		catalog.GET("", controller.ListFacilities)
		catalog.GET("/:id", controller.GetFacility)
	}

	// MPP catalog management
	mpp := rg.Group("/mpp/facilities")
	mpp.Use(middleware.JWTAuth(), middleware.RequireMPP())
	{
		mpp.POST("", controller.CreateFacility)
		mpp.PUT("/:id", controller.UpdateFacility)
		mpp.DELETE("/:id", controller.DeleteFacility)
	}
}
