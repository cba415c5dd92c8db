package auth

import "time"

// represents the authentication response
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// represents user data in responses (without sensitive info)
type UserResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phone_number"`
	Category          string    `json:"category"`
	Status            string    `json:"status"`
	BankName          string    `json:"bank_name,omitempty"`
	BankAccountNumber string    `json:"bank_account_number,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
