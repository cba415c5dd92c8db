package approvals

import (
	"time"

	"rently/internal/applications"
	"rently/internal/events"
	"rently/internal/users"

	"github.com/google/uuid"
)

// MPPApplicationResponse is the administrator view of an application,
// with the business, owner, event, facility and payment detail the
// approval page renders.
type MPPApplicationResponse struct {
	ID              uuid.UUID           `json:"id"`
	Status          applications.Status `json:"status"`
	Quantity        int                 `json:"quantity"`
	RejectionReason string              `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`

	BusinessID    uuid.UUID      `json:"business_id"`
	BusinessName  string         `json:"business_name"`
	OwnerID       uuid.UUID      `json:"owner_id"`
	OwnerName     string         `json:"owner_name"`
	OwnerEmail    string         `json:"owner_email"`
	OwnerCategory users.Category `json:"owner_category"`

	EventID         uuid.UUID `json:"event_id"`
	EventName       string    `json:"event_name"`
	EventFacilityID uuid.UUID `json:"event_facility_id"`
	FacilityName    string    `json:"facility_name"`
	FacilitySize    string    `json:"facility_size"`
	UnitPrice       float64   `json:"unit_price"`

	PaymentID     *uuid.UUID                 `json:"payment_id,omitempty"`
	PaymentAmount *float64                   `json:"payment_amount,omitempty"`
	PaymentStatus applications.PaymentStatus `json:"payment_status,omitempty"`
}

// BulkResult reports a bulk decision item by item, successes alongside
// the ones that could not be decided and why.
type BulkResult struct {
	Succeeded []MPPApplicationResponse `json:"succeeded"`
	Failed    []BulkFailure            `json:"failed"`
}

type BulkFailure struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

// EventSummaryResponse is one row of the MPP approval landing page.
type EventSummaryResponse struct {
	events.EventResponse
	Applications StatusCounts `json:"applications"`
}

func NewMPPApplicationResponse(app *applications.FacilityApplication, payment *applications.Payment) MPPApplicationResponse {
	unitPrice := app.EventFacility.NonStudentPrice
	if app.Business.Owner.Category == users.CategoryStudent {
		unitPrice = app.EventFacility.StudentPrice
	}

	resp := MPPApplicationResponse{
		ID:              app.ID,
		Status:          app.Status,
		Quantity:        app.Quantity,
		RejectionReason: app.RejectionReason,
		CreatedAt:       app.CreatedAt,
		BusinessID:      app.BusinessID,
		BusinessName:    app.Business.Name,
		OwnerID:         app.Business.OwnerID,
		OwnerName:       app.Business.Owner.Name,
		OwnerEmail:      app.Business.Owner.Email,
		OwnerCategory:   app.Business.Owner.Category,
		EventFacilityID: app.EventFacilityID,
		FacilityName:    app.EventFacility.Facility.Name,
		FacilitySize:    app.EventFacility.Facility.Size,
		UnitPrice:       unitPrice,
	}
	if payment != nil {
		resp.PaymentID = &payment.ID
		resp.PaymentAmount = &payment.Amount
		resp.PaymentStatus = payment.Status
	}
	return resp
}
