package businesses

import (
	"time"

	"rently/internal/users"

	"github.com/google/uuid"
)

// Business is a stall operator registered by a student or external owner.
// Facility applications are always submitted on behalf of a business.
type Business struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       users.User `gorm:"foreignKey:OwnerID" json:"-"`
	Name        string     `gorm:"uniqueIndex;not null" json:"name"`
	SSMNumber   string     `gorm:"index" json:"ssm_number,omitempty"`
	Category    string     `gorm:"not null" json:"category"`
	Description string     `json:"description,omitempty"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}

func (b *Business) IsActive() bool {
	return b.Status == StatusActive
}
