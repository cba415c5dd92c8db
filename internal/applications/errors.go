package applications

import (
	"errors"
	"fmt"
)

var (
	ErrApplicationNotFound = errors.New("application not found")

	// ErrInvalidStateTransition covers any decision attempted from a
	// state that does not allow it (approving a non-PENDING
	// application, reverting one that is already PENDING, and so on).
	ErrInvalidStateTransition = errors.New("invalid application state transition")

	ErrAlreadyPending      = errors.New("a pending application already exists for this facility")
	ErrApplicationsClosed  = errors.New("event is not accepting applications")
	ErrBusinessNotActive   = errors.New("business is not active")
	ErrNotApplicationOwner = errors.New("application does not belong to the caller")
	ErrBusinessNotOwned    = errors.New("business does not belong to the caller")
)

// QuotaExceededError reports how many units were requested against how
// many remain, either the per-business allowance at submission time or
// the event facility quota at approval time.
type QuotaExceededError struct {
	FacilityName string
	Remaining    int
	Requested    int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("insufficient quota for facility %s: remaining %d, requested %d",
		e.FacilityName, e.Remaining, e.Requested)
}

// IsQuotaExceeded reports whether err wraps a QuotaExceededError.
func IsQuotaExceeded(err error) bool {
	var qe *QuotaExceededError
	return errors.As(err, &qe)
}
