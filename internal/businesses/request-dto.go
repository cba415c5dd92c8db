package businesses

// CreateBusinessRequest registers a new business for the calling owner.
type CreateBusinessRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=255"`
	SSMNumber   string `json:"ssm_number" validate:"omitempty,max=255"`
	Category    string `json:"category" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// UpdateBusinessRequest replaces the mutable business details.
type UpdateBusinessRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=255"`
	SSMNumber   string `json:"ssm_number" validate:"omitempty,max=255"`
	Category    string `json:"category" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// UpdateStatusRequest blocks or reactivates a business (MPP only).
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=ACTIVE BLOCKED"`
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

// ListQuery carries the MPP search and filter parameters.
type ListQuery struct {
	Search         string `form:"search"`
	Category       string `form:"category"`
	Status         string `form:"status" binding:"omitempty,oneof=ACTIVE BLOCKED"`
	OwnerCategory  string `form:"owner_category" binding:"omitempty,oneof=STUDENT NON_STUDENT"`
	RegisteredFrom string `form:"registered_from" binding:"omitempty,datetime=2006-01-02"`
	RegisteredTo   string `form:"registered_to" binding:"omitempty,datetime=2006-01-02"`
}
