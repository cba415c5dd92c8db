package approvals

import (
	"errors"
	"io"
	"net/http"

	"rently/internal/applications"
	"rently/internal/events"
	"rently/internal/facilities"
	"rently/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) ApproveApplication(ctx *gin.Context) {
	mppID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	applicationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid application ID", nil, nil)
		return
	}

	resp, err := c.service.Approve(ctx.Request.Context(), mppID, applicationID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to approve application")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Application approved successfully", resp, nil)
}

func (c *Controller) RejectApplication(ctx *gin.Context) {
	mppID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	applicationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid application ID", nil, nil)
		return
	}

	// The reason is optional and the body may be absent entirely.
	var req RejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Reject(ctx.Request.Context(), mppID, applicationID, req.Reason)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to reject application")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Application rejected successfully", resp, nil)
}

func (c *Controller) RevertApplication(ctx *gin.Context) {
	mppID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	applicationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid application ID", nil, nil)
		return
	}

	resp, err := c.service.Revert(ctx.Request.Context(), mppID, applicationID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to revert application")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Application reverted to pending", resp, nil)
}

func (c *Controller) BulkApprove(ctx *gin.Context) {
	mppID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req BulkDecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	result, err := c.service.BulkApprove(ctx.Request.Context(), mppID, req.ApplicationIDs)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to process bulk approval", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bulk approval processed", result, nil)
}

func (c *Controller) BulkReject(ctx *gin.Context) {
	mppID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req BulkRejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	result, err := c.service.BulkReject(ctx.Request.Context(), mppID, req.ApplicationIDs, req.Reason)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to process bulk rejection", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bulk rejection processed", result, nil)
}

func (c *Controller) BulkRevert(ctx *gin.Context) {
	mppID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req BulkDecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	result, err := c.service.BulkRevert(ctx.Request.Context(), mppID, req.ApplicationIDs)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to process bulk revert", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bulk revert processed", result, nil)
}

func (c *Controller) GetPaymentStatus(ctx *gin.Context) {
	applicationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid application ID", nil, nil)
		return
	}

	paid, err := c.service.HasBeenPaid(ctx.Request.Context(), applicationID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to fetch payment status")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment status retrieved successfully",
		gin.H{"application_id": applicationID, "paid": paid}, nil)
}

func (c *Controller) MarkPaymentPaid(ctx *gin.Context) {
	applicationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid application ID", nil, nil)
		return
	}

	payment, err := c.service.MarkPaymentPaid(ctx.Request.Context(), applicationID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to mark payment as paid")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment marked as paid", payment, nil)
}

func (c *Controller) GetEventSummaries(ctx *gin.Context) {
	var query SummaryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	summaries, err := c.service.GetEventsWithApplicationSummary(ctx.Request.Context(), query.Status)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch approval summary", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Approval summary retrieved successfully", summaries, nil)
}

func (c *Controller) GetEventApplications(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	var query EventApplicationsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	list, err := c.service.GetApplicationsByEvent(ctx.Request.Context(), eventID, ListFilters{
		Status:    query.Status,
		Search:    query.Search,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to fetch event applications")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event applications retrieved successfully", list, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error, fallback string) {
	var quotaErr *applications.QuotaExceededError
	switch {
	case errors.Is(err, applications.ErrApplicationNotFound),
		errors.Is(err, events.ErrEventNotFound),
		errors.Is(err, facilities.ErrAssignmentNotFound),
		errors.Is(err, ErrPaymentNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, applications.ErrInvalidStateTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.As(err, &quotaErr):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
