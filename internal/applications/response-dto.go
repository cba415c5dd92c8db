package applications

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationResponse is the business-owner view of an application,
// with payment details attached once one exists.
type ApplicationResponse struct {
	ID              uuid.UUID `json:"id"`
	BusinessID      uuid.UUID `json:"business_id"`
	BusinessName    string    `json:"business_name"`
	EventFacilityID uuid.UUID `json:"event_facility_id"`
	FacilityName    string    `json:"facility_name"`
	FacilitySize    string    `json:"facility_size"`
	Quantity        int       `json:"quantity"`
	Status          Status    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	PaymentID     *uuid.UUID    `json:"payment_id,omitempty"`
	PaymentAmount *float64      `json:"payment_amount,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status,omitempty"`
}

// OwnerFacilityResponse is the business-owner view of an event
// facility: event pricing plus the caller's own quota position.
type OwnerFacilityResponse struct {
	EventFacilityID   uuid.UUID `json:"event_facility_id"`
	FacilityID        uuid.UUID `json:"facility_id"`
	FacilityName      string    `json:"facility_name"`
	FacilitySize      string    `json:"facility_size"`
	FacilityType      string    `json:"facility_type"`
	Description       string    `json:"description"`
	Usage             string    `json:"usage"`
	AvailableQuantity int       `json:"available_quantity"`
	StudentPrice      float64   `json:"student_price"`
	NonStudentPrice   float64   `json:"non_student_price"`
	ApplicablePrice   float64   `json:"applicable_price"`
	MaxPerBusiness    int       `json:"max_per_business"`
	RemainingQuota    int       `json:"remaining_quota"`
	HasPending        bool      `json:"has_pending_application"`
}

func (a *FacilityApplication) ToResponse(payment *Payment) ApplicationResponse {
	resp := ApplicationResponse{
		ID:              a.ID,
		BusinessID:      a.BusinessID,
		BusinessName:    a.Business.Name,
		EventFacilityID: a.EventFacilityID,
		FacilityName:    a.EventFacility.Facility.Name,
		FacilitySize:    a.EventFacility.Facility.Size,
		Quantity:        a.Quantity,
		Status:          a.Status,
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
	}
	if payment != nil {
		resp.PaymentID = &payment.ID
		resp.PaymentAmount = &payment.Amount
		resp.PaymentStatus = payment.Status
	}
	return resp
}
