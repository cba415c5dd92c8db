package events

import (
	"errors"
	"net/http"

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

func (c *Controller) CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.CreateEvent(ctx.Request.Context(), &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to create event")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Event created successfully", resp, nil)
}

func (c *Controller) GetEvent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	resp, err := c.service.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to fetch event")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event retrieved successfully", resp, nil)
}

func (c *Controller) GetEventWithFacilities(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	resp, err := c.service.GetEventWithFacilities(ctx.Request.Context(), id)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to fetch event")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event retrieved successfully", resp, nil)
}

func (c *Controller) ListEvents(ctx *gin.Context) {
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := c.service.ListEvents(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch events", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Events retrieved successfully", list, nil)
}

func (c *Controller) UpdateEvent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	var req UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.UpdateEvent(ctx.Request.Context(), id, &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to update event")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event updated successfully", resp, nil)
}

func (c *Controller) CancelEvent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	if err := c.service.CancelEvent(ctx.Request.Context(), id); err != nil {
		c.respondServiceError(ctx, err, "Failed to cancel event")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event cancelled successfully", nil, nil)
}

func (c *Controller) ToggleApplicationStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	resp, err := c.service.ToggleApplicationStatus(ctx.Request.Context(), id)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to toggle application status")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Application status updated successfully", resp, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEventNotFound), errors.Is(err, facilities.ErrFacilityNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrDuplicateEventName):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Event name already exists", nil, nil)
	case errors.Is(err, ErrStartDateInPast),
		errors.Is(err, ErrEndBeforeStart),
		errors.Is(err, ErrEndTimeBeforeStart),
		errors.Is(err, facilities.ErrNoFacilities),
		errors.Is(err, facilities.ErrFacilityInactive):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, ErrEventNotEditable),
		errors.Is(err, ErrEventNotCancellable),
		errors.Is(err, ErrEventAlreadyOver),
		errors.Is(err, facilities.ErrAlreadyAssigned),
		errors.Is(err, facilities.ErrAssignmentInUse):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
