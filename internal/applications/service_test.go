package applications

import (
	"context"
	"errors"
	"testing"

	"rently/internal/businesses"
	"rently/internal/events"
	"rently/internal/facilities"

	"github.com/google/uuid"
)

type quotaKey struct {
	businessID      uuid.UUID
	eventFacilityID uuid.UUID
}

type fakeAppRepo struct {
	Repository
	byID    map[uuid.UUID]*FacilityApplication
	pending map[quotaKey]bool
	applied map[quotaKey]int
	batches [][]*FacilityApplication
	status  map[uuid.UUID]Status
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{
		byID:    make(map[uuid.UUID]*FacilityApplication),
		pending: make(map[quotaKey]bool),
		applied: make(map[quotaKey]int),
		status:  make(map[uuid.UUID]Status),
	}
}

func (f *fakeAppRepo) CreateBatch(_ context.Context, apps []*FacilityApplication) error {
	for _, app := range apps {
		app.ID = uuid.New()
		f.byID[app.ID] = app
	}
	f.batches = append(f.batches, apps)
	return nil
}

func (f *fakeAppRepo) GetByID(_ context.Context, id uuid.UUID) (*FacilityApplication, error) {
	app, ok := f.byID[id]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeAppRepo) HasPendingApplication(_ context.Context, businessID, eventFacilityID uuid.UUID) (bool, error) {
	return f.pending[quotaKey{businessID, eventFacilityID}], nil
}

func (f *fakeAppRepo) TotalAppliedQuantity(_ context.Context, businessID, eventFacilityID uuid.UUID) (int, error) {
	return f.applied[quotaKey{businessID, eventFacilityID}], nil
}

func (f *fakeAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	if _, ok := f.byID[id]; !ok {
		return ErrApplicationNotFound
	}
	f.status[id] = status
	return nil
}

func (f *fakeAppRepo) GetPaymentByApplicationID(_ context.Context, _ uuid.UUID) (*Payment, error) {
	return nil, nil
}

type fakeBusinessRepo struct {
	businesses.Repository
	byID map[uuid.UUID]*businesses.Business
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id uuid.UUID) (*businesses.Business, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, businesses.ErrBusinessNotFound
	}
	return b, nil
}

type fakeFacilityRepo struct {
	facilities.Repository
	assignments map[uuid.UUID]*facilities.EventFacility
}

func (f *fakeFacilityRepo) GetAssignmentByID(_ context.Context, id uuid.UUID) (*facilities.EventFacility, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, facilities.ErrAssignmentNotFound
	}
	return a, nil
}

type fakeEventRepo struct {
	events.Repository
	byID map[uuid.UUID]*events.Event
}

func (f *fakeEventRepo) GetByID(_ context.Context, id uuid.UUID) (*events.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, events.ErrEventNotFound
	}
	return e, nil
}

type submitFixture struct {
	service  Service
	appRepo  *fakeAppRepo
	ownerID  uuid.UUID
	business *businesses.Business
	event    *events.Event
	stallA   *facilities.EventFacility
	stallB   *facilities.EventFacility
}

func newSubmitFixture() *submitFixture {
	ownerID := uuid.New()
	business := &businesses.Business{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    "Ayam Crispy",
		Status:  businesses.StatusActive,
	}
	event := &events.Event{
		ID:                uuid.New(),
		Name:              "Spring Bazaar",
		ApplicationStatus: events.ApplicationsOpen,
		Status:            events.StatusUpcoming,
	}
	stallA := &facilities.EventFacility{
		ID:                uuid.New(),
		EventID:           event.ID,
		FacilityID:        uuid.New(),
		Facility:          facilities.Facility{Name: "Stall Lot A", Size: "3x3"},
		AvailableQuantity: 10,
		StudentPrice:      20.00,
		NonStudentPrice:   35.00,
		MaxPerBusiness:    3,
	}
	stallB := &facilities.EventFacility{
		ID:                uuid.New(),
		EventID:           event.ID,
		FacilityID:        uuid.New(),
		Facility:          facilities.Facility{Name: "Tent B", Size: "6x6"},
		AvailableQuantity: 5,
		StudentPrice:      50.00,
		NonStudentPrice:   80.00,
		MaxPerBusiness:    2,
	}

	appRepo := newFakeAppRepo()
	service := NewService(
		appRepo,
		&fakeBusinessRepo{byID: map[uuid.UUID]*businesses.Business{business.ID: business}},
		&fakeFacilityRepo{assignments: map[uuid.UUID]*facilities.EventFacility{stallA.ID: stallA, stallB.ID: stallB}},
		&fakeEventRepo{byID: map[uuid.UUID]*events.Event{event.ID: event}},
		nil,
	)

	return &submitFixture{
		service:  service,
		appRepo:  appRepo,
		ownerID:  ownerID,
		business: business,
		event:    event,
		stallA:   stallA,
		stallB:   stallB,
	}
}

func TestSubmitApplications(t *testing.T) {
	fx := newSubmitFixture()

	resp, err := fx.service.SubmitApplications(context.Background(), fx.ownerID, &SubmitRequest{
		BusinessID: fx.business.ID,
		Facilities: []SubmitItem{
			{EventFacilityID: fx.stallA.ID, Quantity: 2},
			{EventFacilityID: fx.stallB.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("SubmitApplications() error = %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("got %d applications, want 2", len(resp))
	}
	for _, r := range resp {
		if r.Status != StatusPending {
			t.Errorf("application status = %v, want PENDING", r.Status)
		}
	}
	if len(fx.appRepo.batches) != 1 {
		t.Errorf("got %d batches, want 1", len(fx.appRepo.batches))
	}
}

func TestSubmitApplicationsBusinessNotOwned(t *testing.T) {
	fx := newSubmitFixture()

	_, err := fx.service.SubmitApplications(context.Background(), uuid.New(), &SubmitRequest{
		BusinessID: fx.business.ID,
		Facilities: []SubmitItem{{EventFacilityID: fx.stallA.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrBusinessNotOwned) {
		t.Errorf("got %v, want ErrBusinessNotOwned", err)
	}
}

func TestSubmitApplicationsBusinessNotActive(t *testing.T) {
	fx := newSubmitFixture()
	fx.business.Status = businesses.StatusBlocked

	_, err := fx.service.SubmitApplications(context.Background(), fx.ownerID, &SubmitRequest{
		BusinessID: fx.business.ID,
		Facilities: []SubmitItem{{EventFacilityID: fx.stallA.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrBusinessNotActive) {
		t.Errorf("got %v, want ErrBusinessNotActive", err)
	}
}

func TestSubmitApplicationsEventClosed(t *testing.T) {
	fx := newSubmitFixture()
	fx.event.ApplicationStatus = events.ApplicationsClosed

	_, err := fx.service.SubmitApplications(context.Background(), fx.ownerID, &SubmitRequest{
		BusinessID: fx.business.ID,
		Facilities: []SubmitItem{{EventFacilityID: fx.stallA.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrApplicationsClosed) {
		t.Errorf("got %v, want ErrApplicationsClosed", err)
	}
}

func TestSubmitApplicationsDuplicatePending(t *testing.T) {
	fx := newSubmitFixture()
	fx.appRepo.pending[quotaKey{fx.business.ID, fx.stallA.ID}] = true

	_, err := fx.service.SubmitApplications(context.Background(), fx.ownerID, &SubmitRequest{
		BusinessID: fx.business.ID,
		Facilities: []SubmitItem{{EventFacilityID: fx.stallA.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrAlreadyPending) {
		t.Errorf("got %v, want ErrAlreadyPending", err)
	}
}

func TestSubmitApplicationsQuotaExceeded(t *testing.T) {
	fx := newSubmitFixture()
	// Business already holds 2 of a max of 3.
	fx.appRepo.applied[quotaKey{fx.business.ID, fx.stallA.ID}] = 2

	_, err := fx.service.SubmitApplications(context.Background(), fx.ownerID, &SubmitRequest{
		BusinessID: fx.business.ID,
		Facilities: []SubmitItem{{EventFacilityID: fx.stallA.ID, Quantity: 2}},
	})

	var qe *QuotaExceededError
	if !errors.As(err, &qe) {
		t.Fatalf("got %v, want QuotaExceededError", err)
	}
	if qe.Remaining != 1 || qe.Requested != 2 {
		t.Errorf("QuotaExceededError{Remaining: %d, Requested: %d}, want {1, 2}", qe.Remaining, qe.Requested)
	}
}

func TestSubmitApplicationsAllOrNothing(t *testing.T) {
	fx := newSubmitFixture()
	// Second line exceeds its per-business allowance.
	_, err := fx.service.SubmitApplications(context.Background(), fx.ownerID, &SubmitRequest{
		BusinessID: fx.business.ID,
		Facilities: []SubmitItem{
			{EventFacilityID: fx.stallA.ID, Quantity: 1},
			{EventFacilityID: fx.stallB.ID, Quantity: 3},
		},
	})
	if !IsQuotaExceeded(err) {
		t.Fatalf("got %v, want QuotaExceededError", err)
	}
	if len(fx.appRepo.batches) != 0 {
		t.Errorf("no rows may be written when any line fails, got %d batches", len(fx.appRepo.batches))
	}
}

func TestCancelApplication(t *testing.T) {
	fx := newSubmitFixture()

	resp, err := fx.service.SubmitApplications(context.Background(), fx.ownerID, &SubmitRequest{
		BusinessID: fx.business.ID,
		Facilities: []SubmitItem{{EventFacilityID: fx.stallA.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("SubmitApplications() error = %v", err)
	}
	appID := resp[0].ID

	cancelled, err := fx.service.CancelApplication(context.Background(), fx.ownerID, appID)
	if err != nil {
		t.Fatalf("CancelApplication() error = %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("status = %v, want CANCELLED", cancelled.Status)
	}
}

func TestCancelApplicationWrongOwner(t *testing.T) {
	fx := newSubmitFixture()

	resp, err := fx.service.SubmitApplications(context.Background(), fx.ownerID, &SubmitRequest{
		BusinessID: fx.business.ID,
		Facilities: []SubmitItem{{EventFacilityID: fx.stallA.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("SubmitApplications() error = %v", err)
	}

	_, err = fx.service.CancelApplication(context.Background(), uuid.New(), resp[0].ID)
	if !errors.Is(err, ErrNotApplicationOwner) {
		t.Errorf("got %v, want ErrNotApplicationOwner", err)
	}
}

func TestCancelApplicationNotPending(t *testing.T) {
	fx := newSubmitFixture()

	resp, err := fx.service.SubmitApplications(context.Background(), fx.ownerID, &SubmitRequest{
		BusinessID: fx.business.ID,
		Facilities: []SubmitItem{{EventFacilityID: fx.stallA.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("SubmitApplications() error = %v", err)
	}
	fx.appRepo.byID[resp[0].ID].Status = StatusApproved

	_, err = fx.service.CancelApplication(context.Background(), fx.ownerID, resp[0].ID)
	if !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("got %v, want ErrInvalidStateTransition", err)
	}
}
