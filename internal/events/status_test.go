package events

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveStatus(t *testing.T) {
	now := date(2026, time.March, 15)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  Status
	}{
		{"before start date", date(2026, time.March, 20), date(2026, time.March, 22), StatusUpcoming},
		{"on start date", date(2026, time.March, 15), date(2026, time.March, 17), StatusActive},
		{"between start and end", date(2026, time.March, 10), date(2026, time.March, 20), StatusActive},
		{"on end date", date(2026, time.March, 13), date(2026, time.March, 15), StatusActive},
		{"after end date", date(2026, time.March, 1), date(2026, time.March, 10), StatusCompleted},
		{"single day event today", date(2026, time.March, 15), date(2026, time.March, 15), StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.start, tt.end, now)
			if got != tt.want {
				t.Errorf("DeriveStatus(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestApplicationStatusToggle(t *testing.T) {
	if got := ApplicationsOpen.Toggle(); got != ApplicationsClosed {
		t.Errorf("Toggle(OPEN) = %v, want CLOSED", got)
	}
	if got := ApplicationsClosed.Toggle(); got != ApplicationsOpen {
		t.Errorf("Toggle(CLOSED) = %v, want OPEN", got)
	}
}

func TestAcceptsApplications(t *testing.T) {
	tests := []struct {
		name      string
		appStatus ApplicationStatus
		status    Status
		want      bool
	}{
		{"open upcoming", ApplicationsOpen, StatusUpcoming, true},
		{"open active", ApplicationsOpen, StatusActive, true},
		{"closed upcoming", ApplicationsClosed, StatusUpcoming, false},
		{"open completed", ApplicationsOpen, StatusCompleted, false},
		{"open cancelled", ApplicationsOpen, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{ApplicationStatus: tt.appStatus, Status: tt.status}
			if got := e.AcceptsApplications(); got != tt.want {
				t.Errorf("AcceptsApplications() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateDates(t *testing.T) {
	now := date(2026, time.March, 15)

	if err := validateDates(date(2026, time.March, 10), date(2026, time.March, 20), "09:00", "17:00", now); err != ErrStartDateInPast {
		t.Errorf("past start date: got %v, want ErrStartDateInPast", err)
	}
	if err := validateDates(date(2026, time.March, 20), date(2026, time.March, 18), "09:00", "17:00", now); err != ErrEndBeforeStart {
		t.Errorf("end before start: got %v, want ErrEndBeforeStart", err)
	}
	if err := validateDates(date(2026, time.March, 20), date(2026, time.March, 20), "17:00", "09:00", now); err != ErrEndTimeBeforeStart {
		t.Errorf("same day, end time before start: got %v, want ErrEndTimeBeforeStart", err)
	}
	if err := validateDates(date(2026, time.March, 20), date(2026, time.March, 22), "09:00", "17:00", now); err != nil {
		t.Errorf("valid range: got %v, want nil", err)
	}
}
