package facilities

import "github.com/google/uuid"

// CreateFacilityRequest adds a facility to the catalog.
type CreateFacilityRequest struct {
	Name                string  `json:"name" validate:"required,min=3,max=100"`
	Size                string  `json:"size" validate:"required,min=2,max=50"`
	Type                string  `json:"type" validate:"required,min=2,max=50"`
	Description         string  `json:"description" validate:"required,max=500"`
	Usage               string  `json:"usage" validate:"required,min=5,max=500"`
	Remark              string  `json:"remark" validate:"omitempty,max=500"`
	BaseStudentPrice    float64 `json:"base_student_price" validate:"gte=0"`
	BaseNonStudentPrice float64 `json:"base_non_student_price" validate:"gte=0"`
	Status              string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateFacilityRequest replaces the mutable catalog details.
type UpdateFacilityRequest struct {
	Name                string  `json:"name" validate:"required,min=3,max=100"`
	Size                string  `json:"size" validate:"required,min=2,max=50"`
	Type                string  `json:"type" validate:"required,min=2,max=50"`
	Description         string  `json:"description" validate:"required,max=500"`
	Usage               string  `json:"usage" validate:"required,min=5,max=500"`
	Remark              string  `json:"remark" validate:"omitempty,max=500"`
	BaseStudentPrice    float64 `json:"base_student_price" validate:"gte=0"`
	BaseNonStudentPrice float64 `json:"base_non_student_price" validate:"gte=0"`
	Status              string  `json:"status" validate:"required,oneof=active inactive"`
}

// CatalogQuery carries the catalog search and filter parameters.
type CatalogQuery struct {
	Search string `form:"search"`
	Type   string `form:"type"`
	Size   string `form:"size"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive all"`
}

// AssignFacilityRequest assigns a facility to an event, or updates an
// existing assignment when AssignmentID is set.
type AssignmentRequest struct {
	AssignmentID    *uuid.UUID `json:"assignment_id" validate:"omitempty"`
	FacilityID      uuid.UUID  `json:"facility_id" validate:"required"`
	Quantity        int        `json:"quantity" validate:"gte=0"`
	StudentPrice    float64    `json:"student_price" validate:"gte=0"`
	NonStudentPrice float64    `json:"non_student_price" validate:"gte=0"`
	MaxPerBusiness  int        `json:"max_per_business" validate:"gte=1"`
}
