package users

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

// ListUsers handles GET /api/v1/mpp/users
func (c *Controller) ListUsers(ctx *gin.Context) {
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := c.service.ListUsers(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list users", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Users retrieved successfully", gin.H{
		"users": list,
		"count": len(list),
	}, nil)
}

// GetUser handles GET /api/v1/mpp/users/:id
func (c *Controller) GetUser(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return
	}

	user, err := c.service.GetUser(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get user", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "User retrieved successfully", user.ToManagementResponse(), nil)
}

// ToggleStatus handles PATCH /api/v1/mpp/users/:id/status
func (c *Controller) ToggleStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return
	}

	var req ToggleStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.ToggleStatus(ctx.Request.Context(), id, Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
		case errors.Is(err, ErrCannotBlockMPP):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "MPP accounts cannot be blocked", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update user status", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "User status updated successfully", resp, nil)
}

// UpdateProfile handles PUT /api/v1/users/profile
func (c *Controller) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
			return
		}
		if errors.Is(err, ErrBankAccountInUse) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Bank account number already registered", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update profile", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile updated successfully", resp, nil)
}

// GetProfile handles GET /api/v1/users/profile
func (c *Controller) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	user, err := c.service.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile retrieved successfully", user.ToManagementResponse(), nil)
}

// currentUserID reads the authenticated user ID set by the JWT middleware
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
