package events

import (
	"time"

	"rently/internal/facilities"

	"github.com/google/uuid"
)

// EventResponse is the listing and detail view of an event.
type EventResponse struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	Venue             string            `json:"venue"`
	StartDate         string            `json:"start_date"`
	EndDate           string            `json:"end_date"`
	StartTime         string            `json:"start_time"`
	EndTime           string            `json:"end_time"`
	Type              string            `json:"type"`
	Description       string            `json:"description"`
	ApplicationStatus ApplicationStatus `json:"application_status"`
	Status            Status            `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
}

// EventWithFacilitiesResponse adds the facility assignments.
type EventWithFacilitiesResponse struct {
	EventResponse
	Facilities []facilities.AssignmentResponse `json:"facilities"`
}

const dateLayout = "2006-01-02"

func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:                e.ID,
		Name:              e.Name,
		Venue:             e.Venue,
		StartDate:         e.StartDate.Format(dateLayout),
		EndDate:           e.EndDate.Format(dateLayout),
		StartTime:         e.StartTime,
		EndTime:           e.EndTime,
		Type:              e.Type,
		Description:       e.Description,
		ApplicationStatus: e.ApplicationStatus,
		Status:            e.Status,
		CreatedAt:         e.CreatedAt,
	}
}
