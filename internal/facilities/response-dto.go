package facilities

import (
	"time"

	"github.com/google/uuid"
)

// FacilityResponse is the catalog view of a facility.
type FacilityResponse struct {
	ID                  uuid.UUID      `json:"id"`
	Name                string         `json:"name"`
	Size                string         `json:"size"`
	Type                string         `json:"type"`
	Description         string         `json:"description"`
	Usage               string         `json:"usage"`
	Remark              string         `json:"remark,omitempty"`
	BaseStudentPrice    float64        `json:"base_student_price"`
	BaseNonStudentPrice float64        `json:"base_non_student_price"`
	Status              FacilityStatus `json:"status"`
	CreatedAt           time.Time      `json:"created_at"`
}

// AssignmentResponse is an event facility assignment with its catalog
// details flattened in.
type AssignmentResponse struct {
	ID                uuid.UUID `json:"id"`
	EventID           uuid.UUID `json:"event_id"`
	FacilityID        uuid.UUID `json:"facility_id"`
	FacilityName      string    `json:"facility_name"`
	FacilitySize      string    `json:"facility_size"`
	FacilityType      string    `json:"facility_type"`
	Description       string    `json:"description"`
	Usage             string    `json:"usage"`
	AvailableQuantity int       `json:"available_quantity"`
	StudentPrice      float64   `json:"student_price"`
	NonStudentPrice   float64   `json:"non_student_price"`
	MaxPerBusiness    int       `json:"max_per_business"`
}

func (f *Facility) ToResponse() FacilityResponse {
	return FacilityResponse{
		ID:                  f.ID,
		Name:                f.Name,
		Size:                f.Size,
		Type:                f.Type,
		Description:         f.Description,
		Usage:               f.Usage,
		Remark:              f.Remark,
		BaseStudentPrice:    f.BaseStudentPrice,
		BaseNonStudentPrice: f.BaseNonStudentPrice,
		Status:              f.Status,
		CreatedAt:           f.CreatedAt,
	}
}

func (ef *EventFacility) ToResponse() AssignmentResponse {
	return AssignmentResponse{
		ID:                ef.ID,
		EventID:           ef.EventID,
		FacilityID:        ef.FacilityID,
		FacilityName:      ef.Facility.Name,
		FacilitySize:      ef.Facility.Size,
		FacilityType:      ef.Facility.Type,
		Description:       ef.Facility.Description,
		Usage:             ef.Facility.Usage,
		AvailableQuantity: ef.AvailableQuantity,
		StudentPrice:      ef.StudentPrice,
		NonStudentPrice:   ef.NonStudentPrice,
		MaxPerBusiness:    ef.MaxPerBusiness,
	}
}
