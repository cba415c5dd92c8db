package applications

import (
	"time"

	"rently/internal/businesses"
	"rently/internal/facilities"

	"github.com/google/uuid"
)

// FacilityApplication is a business's request for a quantity of one
// event facility. It moves PENDING -> APPROVED/REJECTED/CANCELLED and
// can be reverted to PENDING by an MPP administrator.
type FacilityApplication struct {
	ID              uuid.UUID                `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BusinessID      uuid.UUID                `gorm:"type:uuid;not null;index" json:"business_id"`
	Business        businesses.Business      `gorm:"foreignKey:BusinessID" json:"-"`
	EventFacilityID uuid.UUID                `gorm:"type:uuid;not null;index" json:"event_facility_id"`
	EventFacility   facilities.EventFacility `gorm:"foreignKey:EventFacilityID" json:"-"`
	Quantity        int                      `gorm:"not null" json:"quantity"`
	Status          Status                   `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	RejectionReason string                   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

func (FacilityApplication) TableName() string {
	return "facility_applications"
}

// Payment is the one-to-one charge bound to an approved application.
// It exists only when the computed amount is greater than zero.
type Payment struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ApplicationID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`
	Amount        float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'UNPAID'" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
