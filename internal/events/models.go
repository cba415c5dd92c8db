package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a rental event (bazaar, carnival, exhibition) that
// facilities get assigned to. Its lifecycle status is derived from the
// date range, cancellation is an explicit terminal state.
type Event struct {
	ID                uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name              string            `gorm:"uniqueIndex;not null" json:"name"`
	Venue             string            `gorm:"not null" json:"venue"`
	StartDate         time.Time         `gorm:"type:date;not null" json:"start_date"`
	EndDate           time.Time         `gorm:"type:date;not null" json:"end_date"`
	StartTime         string            `gorm:"not null" json:"start_time"`
	EndTime           string            `gorm:"not null" json:"end_time"`
	Type              string            `gorm:"not null" json:"type"`
	Description       string            `gorm:"not null" json:"description"`
	ApplicationStatus ApplicationStatus `gorm:"type:varchar(20);not null;default:'OPEN'" json:"application_status"`
	Status            Status            `gorm:"type:varchar(20);not null;default:'upcoming'" json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// AcceptsApplications reports whether new facility applications may be
// submitted for this event.
func (e *Event) AcceptsApplications() bool {
	return e.ApplicationStatus == ApplicationsOpen &&
		(e.Status == StatusUpcoming || e.Status == StatusActive)
}
