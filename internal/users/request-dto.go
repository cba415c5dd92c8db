package users

// ListQuery carries MPP user-management list filters
type ListQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=MPP STUDENT NON_STUDENT"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING ACTIVE BLOCKED"`
	Search   string `form:"search"`
}

// ToggleStatusRequest is the MPP request to change an account's status
type ToggleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE BLOCKED"`
}

// UpdateProfileRequest carries a user's own profile changes
type UpdateProfileRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=2,max=255"`
	PhoneNumber       *string `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Address           *string `json:"address" validate:"omitempty,max=500"`
	BankName          *string `json:"bank_name" validate:"omitempty,max=100"`
	BankAccountNumber *string `json:"bank_account_number" validate:"omitempty,number,min=10,max=20"`
}
