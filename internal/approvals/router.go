package approvals

import (
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupApprovalRoutes mounts the MPP approval endpoints. Everything
// here requires an authenticated MPP account.
func SetupApprovalRoutes(rg *gin.RouterGroup, controller *Controller) {
	approvals := rg.Group("/mpp/approvals")
	approvals.Use(middleware.JWTAuth(), middleware.RequireMPP())
	{
		approvals.GET("/events", controller.GetEventSummaries)
		approvals.GET("/events/:id/applications", controller.GetEventApplications)

		approvals.PATCH("/:id/approve", controller.ApproveApplication)
		approvals.PATCH("/:id/reject", controller.RejectApplication)
		approvals.PATCH("/:id/revert", controller.RevertApplication)

		approvals.POST("/bulk/approve", controller.BulkApprove)
		approvals.POST("/bulk/reject", controller.BulkReject)
		approvals.POST("/bulk/revert", controller.BulkRevert)

		approvals.GET("/:id/payment", controller.GetPaymentStatus)
		approvals.PATCH("/:id/payment/paid", controller.MarkPaymentPaid)
	}
}
