package auth

// login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// registration request payload for business owners
type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,min=7,max=20"`
	Password    string `json:"password" validate:"required,min=6"`
	Category    string `json:"category" validate:"required,oneof=STUDENT NON_STUDENT"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=500"`
	// Bank details for refunds and payouts.
	BankName          string `json:"bank_name" validate:"required,max=100"`
	BankAccountNumber string `json:"bank_account_number" validate:"required,number,min=10,max=20"`
}

// represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// represents change password request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}
