package businesses

import (
	"errors"
	"net/http"

	"rently/internal/shared/utils/response"
	"rently/internal/users"

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

func (c *Controller) CreateBusiness(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateBusinessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.CreateBusiness(ctx.Request.Context(), ownerID, &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to create business")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Business created successfully", resp, nil)
}

func (c *Controller) GetMyBusinesses(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	list, err := c.service.GetMyBusinesses(ctx.Request.Context(), ownerID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch businesses", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Businesses retrieved successfully", list, nil)
}

func (c *Controller) GetBusiness(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	businessID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid business ID", nil, nil)
		return
	}

	resp, err := c.service.GetBusiness(ctx.Request.Context(), ownerID, businessID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to fetch business")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Business retrieved successfully", resp, nil)
}

func (c *Controller) UpdateBusiness(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	businessID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid business ID", nil, nil)
		return
	}

	var req UpdateBusinessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.UpdateBusiness(ctx.Request.Context(), ownerID, businessID, &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to update business")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Business updated successfully", resp, nil)
}

func (c *Controller) DeleteBusiness(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	businessID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid business ID", nil, nil)
		return
	}

	if err := c.service.DeleteBusiness(ctx.Request.Context(), ownerID, businessID); err != nil {
		c.respondServiceError(ctx, err, "Failed to delete business")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Business deleted successfully", nil, nil)
}

func (c *Controller) GetCategories(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "Categories retrieved successfully", Categories, nil)
}

func (c *Controller) ListBusinesses(ctx *gin.Context) {
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := c.service.ListBusinesses(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch businesses", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Businesses retrieved successfully", list, nil)
}

func (c *Controller) GetBusinessDetail(ctx *gin.Context) {
	businessID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid business ID", nil, nil)
		return
	}

	resp, err := c.service.GetBusinessDetail(ctx.Request.Context(), businessID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to fetch business")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Business retrieved successfully", resp, nil)
}

func (c *Controller) UpdateBusinessStatus(ctx *gin.Context) {
	businessID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid business ID", nil, nil)
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.UpdateBusinessStatus(ctx.Request.Context(), businessID, &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to update business status")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Business status updated successfully", resp, nil)
}

func (c *Controller) GetStatistics(ctx *gin.Context) {
	stats, err := c.service.GetStatistics(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch statistics", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Statistics retrieved successfully", stats, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrBusinessNotFound), errors.Is(err, users.ErrUserNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Business not found", nil, nil)
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have permission to access this business", nil, nil)
	case errors.Is(err, ErrDuplicateName):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Business name already exists", nil, nil)
	case errors.Is(err, ErrDuplicateSSMNumber):
		response.RespondJSON(ctx, "error", http.StatusConflict, "SSM number already exists", nil, nil)
	case errors.Is(err, ErrSSMNumberRequired):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "SSM number is required for non-student owners", nil, nil)
	case errors.Is(err, ErrBusinessBlocked):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Business is blocked", nil, nil)
	case errors.Is(err, ErrStatusUnchanged):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Business already has the requested status", nil, nil)
	case errors.Is(err, ErrHasActiveApplications):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Business has pending or approved applications", nil, nil)
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
