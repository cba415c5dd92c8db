package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents any account in the system: business owners
// (student or non-student) and MPP administrators.
type User struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	PhoneNumber string    `json:"phone_number" gorm:"not null;size:20"`
	Password    string    `json:"-" gorm:"not null"` // hide in json
	Category    Category  `json:"category" gorm:"type:varchar(20);not null"`
	Status      Status    `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	Address     string    `json:"address,omitempty" gorm:"size:500"`
	// Bank details for refunds and payouts, collected at registration.
	BankName          string     `json:"bank_name,omitempty" gorm:"size:100"`
	BankAccountNumber string     `json:"bank_account_number,omitempty" gorm:"size:50;index"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
}

// TableName sets the table name for User
func (User) TableName() string {
	return "users"
}

// IsMPP reports whether the user is an MPP administrator
func (u *User) IsMPP() bool {
	return u.Category == CategoryMPP
}

// IsActive reports whether the user may use the system
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
