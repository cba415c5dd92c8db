package applications

// Status is the application decision state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// CanApprove reports whether an approval decision is allowed.
func (s Status) CanApprove() bool {
	return s == StatusPending
}

// CanReject reports whether a rejection decision is allowed.
func (s Status) CanReject() bool {
	return s == StatusPending
}

// CanRevert reports whether the application can go back to PENDING.
// CANCELLED is terminal, the business withdrew the request.
func (s Status) CanRevert() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanCancel reports whether the business may withdraw the application.
func (s Status) CanCancel() bool {
	return s == StatusPending
}

// Live reports whether the application still holds or may claim quota.
func (s Status) Live() bool {
	return s == StatusPending || s == StatusApproved
}

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
	PaymentFailed PaymentStatus = "FAILED"
)

func (s PaymentStatus) String() string {
	return string(s)
}
