package applications

import "github.com/google/uuid"

// SubmitRequest submits one application per selected facility on
// behalf of one business. The batch is all-or-nothing.
type SubmitRequest struct {
	BusinessID uuid.UUID    `json:"business_id" validate:"required"`
	Facilities []SubmitItem `json:"facilities" validate:"required,min=1,dive"`
}

// SubmitItem is one facility line in a submission.
type SubmitItem struct {
	EventFacilityID uuid.UUID `json:"event_facility_id" validate:"required"`
	Quantity        int       `json:"quantity" validate:"gte=1"`
}

// EventBrowseQuery filters the business-owner event listing.
type EventBrowseQuery struct {
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=upcoming active completed all"`
}
