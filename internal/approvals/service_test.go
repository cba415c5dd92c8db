package approvals

import (
	"context"
	"errors"
	"testing"

	"rently/internal/applications"
	"rently/internal/businesses"
	"rently/internal/events"
	"rently/internal/facilities"
	"rently/internal/users"

	"github.com/google/uuid"
)

type fakeRepo struct {
	apps        map[uuid.UUID]*applications.FacilityApplication
	assignments map[uuid.UUID]*facilities.EventFacility
	payments    map[uuid.UUID]*applications.Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		apps:        make(map[uuid.UUID]*applications.FacilityApplication),
		assignments: make(map[uuid.UUID]*facilities.EventFacility),
		payments:    make(map[uuid.UUID]*applications.Payment),
	}
}

func (f *fakeRepo) Transaction(_ context.Context, fn func(tx Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*applications.FacilityApplication, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, applications.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeRepo) LockEventFacility(_ context.Context, id uuid.UUID) (*facilities.EventFacility, error) {
	assignment, ok := f.assignments[id]
	if !ok {
		return nil, facilities.ErrAssignmentNotFound
	}
	snapshot := *assignment
	return &snapshot, nil
}

func (f *fakeRepo) DeductQuota(_ context.Context, eventFacilityID uuid.UUID, quantity int) (bool, error) {
	assignment, ok := f.assignments[eventFacilityID]
	if !ok {
		return false, facilities.ErrAssignmentNotFound
	}
	if assignment.AvailableQuantity < quantity {
		return false, nil
	}
	assignment.AvailableQuantity -= quantity
	return true, nil
}

func (f *fakeRepo) RestoreQuota(_ context.Context, eventFacilityID uuid.UUID, quantity int) error {
	assignment, ok := f.assignments[eventFacilityID]
	if !ok {
		return facilities.ErrAssignmentNotFound
	}
	assignment.AvailableQuantity += quantity
	return nil
}

func (f *fakeRepo) UpdateDecision(_ context.Context, id uuid.UUID, status applications.Status, reason string) error {
	app, ok := f.apps[id]
	if !ok {
		return applications.ErrApplicationNotFound
	}
	app.Status = status
	app.RejectionReason = reason
	return nil
}

func (f *fakeRepo) CreatePayment(_ context.Context, payment *applications.Payment) error {
	payment.ID = uuid.New()
	f.payments[payment.ApplicationID] = payment
	return nil
}

func (f *fakeRepo) GetPayment(_ context.Context, applicationID uuid.UUID) (*applications.Payment, error) {
	return f.payments[applicationID], nil
}

func (f *fakeRepo) UpdatePaymentStatus(_ context.Context, applicationID uuid.UUID, status applications.PaymentStatus) error {
	payment, ok := f.payments[applicationID]
	if !ok {
		return ErrPaymentNotFound
	}
	payment.Status = status
	return nil
}

func (f *fakeRepo) DeleteUnpaidPayment(_ context.Context, applicationID uuid.UUID) error {
	if payment, ok := f.payments[applicationID]; ok && payment.Status == applications.PaymentUnpaid {
		delete(f.payments, applicationID)
	}
	return nil
}

func (f *fakeRepo) ListPendingByEventFacility(_ context.Context, eventFacilityID, excludeID uuid.UUID) ([]applications.FacilityApplication, error) {
	var list []applications.FacilityApplication
	for _, app := range f.apps {
		if app.EventFacilityID == eventFacilityID && app.Status == applications.StatusPending && app.ID != excludeID {
			list = append(list, *app)
		}
	}
	return list, nil
}

func (f *fakeRepo) ListPendingByOwner(_ context.Context, ownerID uuid.UUID) ([]applications.FacilityApplication, error) {
	var list []applications.FacilityApplication
	for _, app := range f.apps {
		if app.Business.OwnerID == ownerID && app.Status == applications.StatusPending {
			list = append(list, *app)
		}
	}
	return list, nil
}

func (f *fakeRepo) ListByEvent(_ context.Context, eventID uuid.UUID, _ ListFilters) ([]applications.FacilityApplication, error) {
	var list []applications.FacilityApplication
	for _, app := range f.apps {
		if app.EventFacility.EventID == eventID {
			list = append(list, *app)
		}
	}
	return list, nil
}

func (f *fakeRepo) CountsByEvent(_ context.Context) (map[uuid.UUID]StatusCounts, error) {
	counts := make(map[uuid.UUID]StatusCounts)
	for _, app := range f.apps {
		c := counts[app.EventFacility.EventID]
		switch app.Status {
		case applications.StatusPending:
			c.Pending++
		case applications.StatusApproved:
			c.Approved++
		case applications.StatusRejected:
			c.Rejected++
		case applications.StatusCancelled:
			c.Cancelled++
		}
		counts[app.EventFacility.EventID] = c
	}
	return counts, nil
}

type fakeEventRepo struct {
	events.Repository
	byID map[uuid.UUID]*events.Event
}

func (f *fakeEventRepo) GetByID(_ context.Context, id uuid.UUID) (*events.Event, error) {
	event, ok := f.byID[id]
	if !ok {
		return nil, events.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) List(_ context.Context, _ events.ListFilters) ([]events.Event, error) {
	var list []events.Event
	for _, event := range f.byID {
		list = append(list, *event)
	}
	return list, nil
}

type approvalFixture struct {
	service Service
	repo    *fakeRepo
	mppID   uuid.UUID
	event   *events.Event
	stall   *facilities.EventFacility
}

func newApprovalFixture(quota int) *approvalFixture {
	event := &events.Event{ID: uuid.New(), Name: "Spring Bazaar"}
	stall := &facilities.EventFacility{
		ID:                uuid.New(),
		EventID:           event.ID,
		FacilityID:        uuid.New(),
		Facility:          facilities.Facility{Name: "Stall Lot A", Size: "3x3"},
		AvailableQuantity: quota,
		StudentPrice:      20.00,
		NonStudentPrice:   35.00,
		MaxPerBusiness:    quota,
	}

	repo := newFakeRepo()
	repo.assignments[stall.ID] = stall

	eventRepo := &fakeEventRepo{byID: map[uuid.UUID]*events.Event{event.ID: event}}

	return &approvalFixture{
		service: NewService(repo, eventRepo),
		repo:    repo,
		mppID:   uuid.New(),
		event:   event,
		stall:   stall,
	}
}

func (fx *approvalFixture) addApplication(quantity int, category users.Category) *applications.FacilityApplication {
	ownerID := uuid.New()
	app := &applications.FacilityApplication{
		ID:         uuid.New(),
		BusinessID: uuid.New(),
		Business: businesses.Business{
			ID:      uuid.New(),
			OwnerID: ownerID,
			Name:    "Ayam Crispy",
			Owner:   users.User{Name: "Aina", Email: "aina@example.com", Category: category},
		},
		EventFacilityID: fx.stall.ID,
		EventFacility:   *fx.stall,
		Quantity:        quantity,
		Status:          applications.StatusPending,
	}
	app.Business.Owner.ID = ownerID
	fx.repo.apps[app.ID] = app
	return app
}

func TestApproveDeductsQuotaAndCreatesPayment(t *testing.T) {
	fx := newApprovalFixture(10)
	app := fx.addApplication(4, users.CategoryStudent)

	resp, err := fx.service.Approve(context.Background(), fx.mppID, app.ID)
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if resp.Status != applications.StatusApproved {
		t.Errorf("status = %v, want APPROVED", resp.Status)
	}
	if fx.repo.assignments[fx.stall.ID].AvailableQuantity != 6 {
		t.Errorf("quota = %d, want 6", fx.repo.assignments[fx.stall.ID].AvailableQuantity)
	}

	payment := fx.repo.payments[app.ID]
	if payment == nil {
		t.Fatal("expected a payment record")
	}
	if payment.Amount != 80.00 {
		t.Errorf("payment amount = %.2f, want 80.00", payment.Amount)
	}
	if payment.Status != applications.PaymentUnpaid {
		t.Errorf("payment status = %v, want UNPAID", payment.Status)
	}
	if resp.PaymentAmount == nil || *resp.PaymentAmount != 80.00 {
		t.Errorf("response payment amount = %v, want 80.00", resp.PaymentAmount)
	}
}

func TestApproveUsesNonStudentPrice(t *testing.T) {
	fx := newApprovalFixture(10)
	app := fx.addApplication(2, users.CategoryNonStudent)

	if _, err := fx.service.Approve(context.Background(), fx.mppID, app.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	payment := fx.repo.payments[app.ID]
	if payment == nil || payment.Amount != 70.00 {
		t.Fatalf("payment = %+v, want amount 70.00", payment)
	}
}

func TestApproveZeroAmountSkipsPayment(t *testing.T) {
	fx := newApprovalFixture(10)
	fx.stall.StudentPrice = 0
	app := fx.addApplication(2, users.CategoryStudent)
	app.EventFacility.StudentPrice = 0

	if _, err := fx.service.Approve(context.Background(), fx.mppID, app.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if fx.repo.payments[app.ID] != nil {
		t.Error("no payment record expected for a zero amount")
	}
}

func TestApproveCascadeWhenQuotaExhausted(t *testing.T) {
	fx := newApprovalFixture(5)
	first := fx.addApplication(3, users.CategoryStudent)
	second := fx.addApplication(2, users.CategoryStudent)
	third := fx.addApplication(1, users.CategoryStudent)

	if _, err := fx.service.Approve(context.Background(), fx.mppID, first.ID); err != nil {
		t.Fatalf("first Approve() error = %v", err)
	}
	// 2 units left, nothing should cascade yet.
	if second.Status != applications.StatusPending || third.Status != applications.StatusPending {
		t.Fatal("remaining applications must stay PENDING while quota remains")
	}

	if _, err := fx.service.Approve(context.Background(), fx.mppID, second.ID); err != nil {
		t.Fatalf("second Approve() error = %v", err)
	}
	if fx.repo.assignments[fx.stall.ID].AvailableQuantity != 0 {
		t.Errorf("quota = %d, want 0", fx.repo.assignments[fx.stall.ID].AvailableQuantity)
	}
	if third.Status != applications.StatusRejected {
		t.Errorf("third application status = %v, want REJECTED", third.Status)
	}
	if third.RejectionReason != QuotaFilledReason {
		t.Errorf("rejection reason = %q, want %q", third.RejectionReason, QuotaFilledReason)
	}
}

func TestApproveInsufficientQuota(t *testing.T) {
	fx := newApprovalFixture(2)
	app := fx.addApplication(3, users.CategoryStudent)

	_, err := fx.service.Approve(context.Background(), fx.mppID, app.ID)

	var quotaErr *applications.QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("got %v, want QuotaExceededError", err)
	}
	if quotaErr.Remaining != 2 || quotaErr.Requested != 3 {
		t.Errorf("QuotaExceededError{Remaining: %d, Requested: %d}, want {2, 3}", quotaErr.Remaining, quotaErr.Requested)
	}
	if app.Status != applications.StatusPending {
		t.Errorf("application status = %v, want PENDING", app.Status)
	}
	if fx.repo.assignments[fx.stall.ID].AvailableQuantity != 2 {
		t.Errorf("quota = %d, want unchanged 2", fx.repo.assignments[fx.stall.ID].AvailableQuantity)
	}
}

func TestApproveNonPending(t *testing.T) {
	fx := newApprovalFixture(10)
	app := fx.addApplication(1, users.CategoryStudent)
	app.Status = applications.StatusApproved

	_, err := fx.service.Approve(context.Background(), fx.mppID, app.ID)
	if !errors.Is(err, applications.ErrInvalidStateTransition) {
		t.Errorf("got %v, want ErrInvalidStateTransition", err)
	}
}

func TestRejectSetsReason(t *testing.T) {
	fx := newApprovalFixture(10)
	app := fx.addApplication(1, users.CategoryStudent)

	resp, err := fx.service.Reject(context.Background(), fx.mppID, app.ID, "Incomplete documents")
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if resp.Status != applications.StatusRejected {
		t.Errorf("status = %v, want REJECTED", resp.Status)
	}
	if resp.RejectionReason != "Incomplete documents" {
		t.Errorf("reason = %q, want %q", resp.RejectionReason, "Incomplete documents")
	}
	if fx.repo.assignments[fx.stall.ID].AvailableQuantity != 10 {
		t.Errorf("quota must not change on rejection, got %d", fx.repo.assignments[fx.stall.ID].AvailableQuantity)
	}
}

func TestRevertApprovedRestoresQuotaAndDropsPayment(t *testing.T) {
	fx := newApprovalFixture(10)
	app := fx.addApplication(4, users.CategoryStudent)

	if _, err := fx.service.Approve(context.Background(), fx.mppID, app.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	resp, err := fx.service.Revert(context.Background(), fx.mppID, app.ID)
	if err != nil {
		t.Fatalf("Revert() error = %v", err)
	}
	if resp.Status != applications.StatusPending {
		t.Errorf("status = %v, want PENDING", resp.Status)
	}
	if fx.repo.assignments[fx.stall.ID].AvailableQuantity != 10 {
		t.Errorf("quota = %d, want restored 10", fx.repo.assignments[fx.stall.ID].AvailableQuantity)
	}
	if fx.repo.payments[app.ID] != nil {
		t.Error("unpaid payment must be deleted on revert")
	}
}

func TestRevertKeepsSettledPayment(t *testing.T) {
	fx := newApprovalFixture(10)
	app := fx.addApplication(4, users.CategoryStudent)

	if _, err := fx.service.Approve(context.Background(), fx.mppID, app.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if _, err := fx.service.MarkPaymentPaid(context.Background(), app.ID); err != nil {
		t.Fatalf("MarkPaymentPaid() error = %v", err)
	}

	if _, err := fx.service.Revert(context.Background(), fx.mppID, app.ID); err != nil {
		t.Fatalf("Revert() error = %v", err)
	}

	payment := fx.repo.payments[app.ID]
	if payment == nil {
		t.Fatal("settled payment must survive the revert")
	}
	if payment.Status != applications.PaymentPaid {
		t.Errorf("payment status = %v, want PAID", payment.Status)
	}
	if fx.repo.assignments[fx.stall.ID].AvailableQuantity != 10 {
		t.Errorf("quota = %d, want restored 10", fx.repo.assignments[fx.stall.ID].AvailableQuantity)
	}
}

func TestRevertRejectedClearsReason(t *testing.T) {
	fx := newApprovalFixture(10)
	app := fx.addApplication(1, users.CategoryStudent)

	if _, err := fx.service.Reject(context.Background(), fx.mppID, app.ID, "Incomplete documents"); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}

	resp, err := fx.service.Revert(context.Background(), fx.mppID, app.ID)
	if err != nil {
		t.Fatalf("Revert() error = %v", err)
	}
	if resp.Status != applications.StatusPending || resp.RejectionReason != "" {
		t.Errorf("got status %v reason %q, want PENDING with cleared reason", resp.Status, resp.RejectionReason)
	}
}

func TestRevertPendingFails(t *testing.T) {
	fx := newApprovalFixture(10)
	app := fx.addApplication(1, users.CategoryStudent)

	_, err := fx.service.Revert(context.Background(), fx.mppID, app.ID)
	if !errors.Is(err, applications.ErrInvalidStateTransition) {
		t.Errorf("got %v, want ErrInvalidStateTransition", err)
	}
}

func TestBulkApproveReportsPerItemFailures(t *testing.T) {
	fx := newApprovalFixture(10)
	good := fx.addApplication(2, users.CategoryStudent)
	bad := fx.addApplication(1, users.CategoryStudent)
	bad.Status = applications.StatusRejected

	result, err := fx.service.BulkApprove(context.Background(), fx.mppID, []uuid.UUID{good.ID, bad.ID})
	if err != nil {
		t.Fatalf("BulkApprove() error = %v", err)
	}
	if len(result.Succeeded) != 1 {
		t.Errorf("got %d succeeded, want 1", len(result.Succeeded))
	}
	if len(result.Failed) != 1 {
		t.Fatalf("got %d failed, want 1", len(result.Failed))
	}
	if result.Failed[0].ID != bad.ID || result.Failed[0].Reason == "" {
		t.Errorf("failure = %+v, want the rejected application with a reason", result.Failed[0])
	}
}

func TestAutoRejectPendingForBlockedUser(t *testing.T) {
	fx := newApprovalFixture(10)
	first := fx.addApplication(1, users.CategoryStudent)
	second := fx.addApplication(2, users.CategoryStudent)
	second.Business.OwnerID = first.Business.OwnerID
	approved := fx.addApplication(1, users.CategoryStudent)
	approved.Business.OwnerID = first.Business.OwnerID
	approved.Status = applications.StatusApproved

	rejected, err := fx.service.AutoRejectPendingForBlockedUser(context.Background(), first.Business.OwnerID)
	if err != nil {
		t.Fatalf("AutoRejectPendingForBlockedUser() error = %v", err)
	}
	if rejected != 2 {
		t.Errorf("rejected = %d, want 2", rejected)
	}
	for _, app := range []*applications.FacilityApplication{first, second} {
		if app.Status != applications.StatusRejected {
			t.Errorf("application %s status = %v, want REJECTED", app.ID, app.Status)
		}
		if app.RejectionReason != BlockedAccountReason {
			t.Errorf("reason = %q, want %q", app.RejectionReason, BlockedAccountReason)
		}
	}
	if approved.Status != applications.StatusApproved {
		t.Error("approved application must not be touched by the blocked-user cascade")
	}
}

func TestHasBeenPaid(t *testing.T) {
	fx := newApprovalFixture(10)
	app := fx.addApplication(2, users.CategoryStudent)

	if _, err := fx.service.Approve(context.Background(), fx.mppID, app.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	paid, err := fx.service.HasBeenPaid(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("HasBeenPaid() error = %v", err)
	}
	if paid {
		t.Error("freshly created payment must report unpaid")
	}

	if _, err := fx.service.MarkPaymentPaid(context.Background(), app.ID); err != nil {
		t.Fatalf("MarkPaymentPaid() error = %v", err)
	}
	paid, err = fx.service.HasBeenPaid(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("HasBeenPaid() error = %v", err)
	}
	if !paid {
		t.Error("settled payment must report paid")
	}
}

func TestEventSummaryCounts(t *testing.T) {
	fx := newApprovalFixture(10)
	fx.addApplication(1, users.CategoryStudent)
	rejectedApp := fx.addApplication(1, users.CategoryStudent)
	rejectedApp.Status = applications.StatusRejected

	summaries, err := fx.service.GetEventsWithApplicationSummary(context.Background(), "")
	if err != nil {
		t.Fatalf("GetEventsWithApplicationSummary() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	counts := summaries[0].Applications
	if counts.Pending != 1 || counts.Rejected != 1 {
		t.Errorf("counts = %+v, want 1 pending and 1 rejected", counts)
	}
}
