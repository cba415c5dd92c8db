package events

import "time"

// Status is the lifecycle state of an event. Apart from cancellation
// it is derived from the event's date range.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ApplicationStatus gates whether businesses may submit facility
// applications for the event.
type ApplicationStatus string

const (
	ApplicationsOpen   ApplicationStatus = "OPEN"
	ApplicationsClosed ApplicationStatus = "CLOSED"
)

func (s ApplicationStatus) Toggle() ApplicationStatus {
	if s == ApplicationsOpen {
		return ApplicationsClosed
	}
	return ApplicationsOpen
}

// DeriveStatus computes the lifecycle status for the given date range.
// Cancelled events keep their status, callers must not rederive them.
func DeriveStatus(startDate, endDate, now time.Time) Status {
	today := now.Truncate(24 * time.Hour)
	start := startDate.Truncate(24 * time.Hour)
	end := endDate.Truncate(24 * time.Hour)

	switch {
	case today.Before(start):
		return StatusUpcoming
	case today.After(end):
		return StatusCompleted
	default:
		return StatusActive
	}
}
