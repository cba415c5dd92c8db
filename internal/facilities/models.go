package facilities

import (
	"time"

	"github.com/google/uuid"
)

// Facility is a rentable unit in the MPP catalog (stall lot, table,
// tent, power point). Base prices are defaults offered when the
// facility is assigned to an event.
type Facility struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name                string         `gorm:"uniqueIndex;not null" json:"name"`
	Size                string         `gorm:"not null" json:"size"`
	Type                string         `gorm:"not null" json:"type"`
	Description         string         `gorm:"not null" json:"description"`
	Usage               string         `gorm:"column:usage_info;not null" json:"usage"`
	Remark              string         `json:"remark,omitempty"`
	BaseStudentPrice    float64        `gorm:"type:decimal(10,2);not null" json:"base_student_price"`
	BaseNonStudentPrice float64        `gorm:"type:decimal(10,2);not null" json:"base_non_student_price"`
	Status              FacilityStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

func (Facility) TableName() string {
	return "facilities"
}

func (f *Facility) IsActive() bool {
	return f.Status == FacilityStatusActive
}

// EventFacility assigns a facility to an event with event-specific
// quota and pricing. AvailableQuantity is the quota ledger: it is
// decremented on approval and restored on revert, never below zero.
type EventFacility struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID           uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	FacilityID        uuid.UUID `gorm:"type:uuid;not null;index" json:"facility_id"`
	Facility          Facility  `gorm:"foreignKey:FacilityID" json:"-"`
	AvailableQuantity int       `gorm:"not null;check:available_quantity >= 0" json:"available_quantity"`
	StudentPrice      float64   `gorm:"type:decimal(10,2);not null" json:"student_price"`
	NonStudentPrice   float64   `gorm:"type:decimal(10,2);not null" json:"non_student_price"`
	MaxPerBusiness    int       `gorm:"not null" json:"max_per_business"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (EventFacility) TableName() string {
	return "event_facilities"
}
