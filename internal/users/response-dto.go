package users

import "time"

// ManagementResponse is the MPP view of an account
type ManagementResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PhoneNumber       string     `json:"phone_number"`
	Category          string     `json:"category"`
	Status            string     `json:"status"`
	Address           string     `json:"address,omitempty"`
	BankName          string     `json:"bank_name,omitempty"`
	BankAccountNumber string     `json:"bank_account_number,omitempty"`
	RegisteredAt      time.Time  `json:"registered_at"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
}

func (u *User) ToManagementResponse() ManagementResponse {
	return ManagementResponse{
		ID:                u.ID.String(),
		Name:              u.Name,
		Email:             u.Email,
		PhoneNumber:       u.PhoneNumber,
		Category:          string(u.Category),
		Status:            string(u.Status),
		Address:           u.Address,
		BankName:          u.BankName,
		BankAccountNumber: u.BankAccountNumber,
		RegisteredAt:      u.CreatedAt,
		LastLoginAt:       u.LastLoginAt,
	}
}
