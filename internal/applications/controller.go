package applications

import (
	"errors"
	"net/http"

	"rently/internal/businesses"
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

func (c *Controller) SubmitApplications(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.SubmitApplications(ctx.Request.Context(), ownerID, &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to submit applications")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Applications submitted successfully", resp, nil)
}

func (c *Controller) GetMyApplications(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	list, err := c.service.GetMyApplications(ctx.Request.Context(), ownerID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch applications", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Applications retrieved successfully", list, nil)
}

func (c *Controller) CancelApplication(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	applicationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid application ID", nil, nil)
		return
	}

	resp, err := c.service.CancelApplication(ctx.Request.Context(), ownerID, applicationID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to cancel application")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Application cancelled successfully", resp, nil)
}

func (c *Controller) BrowseEvents(ctx *gin.Context) {
	var query EventBrowseQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := c.service.BrowseEvents(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch events", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Events retrieved successfully", list, nil)
}

func (c *Controller) GetEventForOwner(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	resp, err := c.service.GetEventForOwner(ctx.Request.Context(), ownerID, eventID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to fetch event")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event retrieved successfully", resp, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrApplicationNotFound),
		errors.Is(err, businesses.ErrBusinessNotFound),
		errors.Is(err, facilities.ErrAssignmentNotFound),
		errors.Is(err, events.ErrEventNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrBusinessNotOwned), errors.Is(err, ErrNotApplicationOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, err.Error(), nil, nil)
	case errors.Is(err, ErrBusinessNotActive), errors.Is(err, ErrApplicationsClosed):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, ErrAlreadyPending), errors.Is(err, ErrInvalidStateTransition), IsQuotaExceeded(err):
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
