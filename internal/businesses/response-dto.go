package businesses

import (
	"time"

	"github.com/google/uuid"
)

// Response is the owner-facing view of a business.
type Response struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	SSMNumber   string    `json:"ssm_number,omitempty"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ManagementResponse adds owner details for the MPP dashboard.
type ManagementResponse struct {
	Response
	OwnerID          uuid.UUID `json:"owner_id"`
	OwnerName        string    `json:"owner_name"`
	OwnerEmail       string    `json:"owner_email"`
	OwnerPhoneNumber string    `json:"owner_phone_number"`
	OwnerCategory    string    `json:"owner_category"`
	OwnerStatus      string    `json:"owner_status"`
}

// Statistics summarizes business counts for the MPP dashboard.
type Statistics struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Blocked int64 `json:"blocked"`
}

func (b *Business) ToResponse() Response {
	return Response{
		ID:          b.ID,
		Name:        b.Name,
		SSMNumber:   b.SSMNumber,
		Category:    b.Category,
		Description: b.Description,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *Business) ToManagementResponse() ManagementResponse {
	return ManagementResponse{
		Response:         b.ToResponse(),
		OwnerID:          b.OwnerID,
		OwnerName:        b.Owner.Name,
		OwnerEmail:       b.Owner.Email,
		OwnerPhoneNumber: b.Owner.PhoneNumber,
		OwnerCategory:    b.Owner.Category.String(),
		OwnerStatus:      b.Owner.Status.String(),
	}
}
