package users

// Category identifies what kind of account a user holds. MPP is the
// administrative role; STUDENT and NON_STUDENT are business owner
// categories that decide which facility unit price applies.
type Category string

const (
	CategoryMPP        Category = "MPP"
	CategoryStudent    Category = "STUDENT"
	CategoryNonStudent Category = "NON_STUDENT"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryMPP, CategoryStudent, CategoryNonStudent:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Status is the account lifecycle state.
type Status string

const (
	StatusPending Status = "PENDING" // waiting for MPP approval
	StatusActive  Status = "ACTIVE"
	StatusBlocked Status = "BLOCKED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusBlocked:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
