package facilities

import (
	"errors"
	"net/http"

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

func (c *Controller) CreateFacility(ctx *gin.Context) {
	var req CreateFacilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.CreateFacility(ctx.Request.Context(), &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to create facility")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Facility created successfully", resp, nil)
}

func (c *Controller) GetFacility(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid facility ID", nil, nil)
		return
	}

	resp, err := c.service.GetFacility(ctx.Request.Context(), id)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to fetch facility")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Facility retrieved successfully", resp, nil)
}

func (c *Controller) ListFacilities(ctx *gin.Context) {
	var query CatalogQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := c.service.ListFacilities(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch facilities", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Facilities retrieved successfully", list, nil)
}

func (c *Controller) UpdateFacility(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid facility ID", nil, nil)
		return
	}

	var req UpdateFacilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.UpdateFacility(ctx.Request.Context(), id, &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to update facility")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Facility updated successfully", resp, nil)
}

func (c *Controller) DeleteFacility(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid facility ID", nil, nil)
		return
	}

	if err := c.service.DeleteFacility(ctx.Request.Context(), id); err != nil {
		c.respondServiceError(ctx, err, "Failed to delete facility")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Facility deleted successfully", nil, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrFacilityNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Facility not found", nil, nil)
	case errors.Is(err, ErrDuplicateFacilityName):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Facility name already exists", nil, nil)
	case errors.Is(err, ErrFacilityInUse):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Facility is assigned to one or more events", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
