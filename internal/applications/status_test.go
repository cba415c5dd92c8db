package applications

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		status     Status
		canApprove bool
		canReject  bool
		canRevert  bool
		canCancel  bool
	}{
		{StatusPending, true, true, false, true},
		{StatusApproved, false, false, true, false},
		{StatusRejected, false, false, true, false},
		{StatusCancelled, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.CanApprove(); got != tt.canApprove {
				t.Errorf("CanApprove() = %v, want %v", got, tt.canApprove)
			}
			if got := tt.status.CanReject(); got != tt.canReject {
				t.Errorf("CanReject() = %v, want %v", got, tt.canReject)
			}
			if got := tt.status.CanRevert(); got != tt.canRevert {
				t.Errorf("CanRevert() = %v, want %v", got, tt.canRevert)
			}
			if got := tt.status.CanCancel(); got != tt.canCancel {
				t.Errorf("CanCancel() = %v, want %v", got, tt.canCancel)
			}
		})
	}
}

func TestStatusLive(t *testing.T) {
	if !StatusPending.Live() || !StatusApproved.Live() {
		t.Error("PENDING and APPROVED must count against quota")
	}
	if StatusRejected.Live() || StatusCancelled.Live() {
		t.Error("REJECTED and CANCELLED must not count against quota")
	}
}

func TestQuotaExceededError(t *testing.T) {
	err := &QuotaExceededError{FacilityName: "Stall Lot A", Remaining: 2, Requested: 5}
	want := "insufficient quota for facility Stall Lot A: remaining 2, requested 5"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !IsQuotaExceeded(err) {
		t.Error("IsQuotaExceeded should match a QuotaExceededError")
	}
	if IsQuotaExceeded(ErrAlreadyPending) {
		t.Error("IsQuotaExceeded should not match unrelated errors")
	}
}
