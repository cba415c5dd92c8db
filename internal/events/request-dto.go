package events

import "rently/internal/facilities"

// CreateEventRequest creates an event together with its initial
// facility assignments.
type CreateEventRequest struct {
	Name        string                         `json:"name" validate:"required,min=3,max=200"`
	Venue       string                         `json:"venue" validate:"required,min=3,max=200"`
	StartDate   string                         `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string                         `json:"end_date" validate:"required,datetime=2006-01-02"`
	StartTime   string                         `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string                         `json:"end_time" validate:"required,datetime=15:04"`
	Type        string                         `json:"type" validate:"required,max=100"`
	Description string                         `json:"description" validate:"required,min=10,max=1000"`
	Facilities  []facilities.AssignmentRequest `json:"facilities" validate:"required,min=1,dive"`
}

// UpdateEventRequest edits an event and replaces its facility
// assignments. Dates are only honored while the event is upcoming.
type UpdateEventRequest struct {
	Name        string                         `json:"name" validate:"required,min=3,max=200"`
	Venue       string                         `json:"venue" validate:"required,min=3,max=200"`
	StartDate   string                         `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string                         `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	StartTime   string                         `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string                         `json:"end_time" validate:"required,datetime=15:04"`
	Type        string                         `json:"type" validate:"required,max=100"`
	Description string                         `json:"description" validate:"required,min=10,max=1000"`
	Facilities  []facilities.AssignmentRequest `json:"facilities" validate:"required,min=1,dive"`
}

// ListQuery carries the event listing search and filter parameters.
type ListQuery struct {
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=upcoming active completed cancelled all"`
}
