package approvals

import (
	"context"
	"fmt"
	"math"

	"rently/internal/applications"
	"rently/internal/events"
	"rently/internal/notifications"
	"rently/internal/shared/constants"
	"rently/internal/users"
	"rently/pkg/cache"
	"rently/pkg/logger"

	"github.com/google/uuid"
)

// Rejection reasons written by the automatic cascades.
const (
	QuotaFilledReason    = "Facility quota has been filled"
	BlockedAccountReason = "Application rejected due to blocked account"
)

// Service is the MPP approval orchestrator. Every decision moves the
// application state machine and the quota ledger together.
type Service interface {
	Approve(ctx context.Context, mppID, applicationID uuid.UUID) (*MPPApplicationResponse, error)
	Reject(ctx context.Context, mppID, applicationID uuid.UUID, reason string) (*MPPApplicationResponse, error)
	Revert(ctx context.Context, mppID, applicationID uuid.UUID) (*MPPApplicationResponse, error)

	BulkApprove(ctx context.Context, mppID uuid.UUID, ids []uuid.UUID) (*BulkResult, error)
	BulkReject(ctx context.Context, mppID uuid.UUID, ids []uuid.UUID, reason string) (*BulkResult, error)
	BulkRevert(ctx context.Context, mppID uuid.UUID, ids []uuid.UUID) (*BulkResult, error)

	HasBeenPaid(ctx context.Context, applicationID uuid.UUID) (bool, error)
	MarkPaymentPaid(ctx context.Context, applicationID uuid.UUID) (*applications.Payment, error)

	// AutoRejectPendingForBlockedUser rejects every PENDING application
	// held by the blocked user's businesses and returns how many.
	AutoRejectPendingForBlockedUser(ctx context.Context, userID uuid.UUID) (int, error)

	GetEventsWithApplicationSummary(ctx context.Context, statusFilter string) ([]EventSummaryResponse, error)
	GetApplicationsByEvent(ctx context.Context, eventID uuid.UUID, filters ListFilters) ([]MPPApplicationResponse, error)

	SetCacheService(cacheService cache.Service)
	SetPublisher(publisher notifications.Publisher)
}

type service struct {
	repo      Repository
	eventRepo events.Repository
	cache     cache.Service
	publisher notifications.Publisher
	log       *logger.Logger
}

func NewService(repo Repository, eventRepo events.Repository) Service {
	return &service{
		repo:      repo,
		eventRepo: eventRepo,
		log:       logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cache = cacheService
}

func (s *service) SetPublisher(publisher notifications.Publisher) {
	s.publisher = publisher
}

// Approve flips a PENDING application to APPROVED, deducts its quantity
// from the facility quota, binds a payment when the computed amount is
// positive, and auto-rejects the remaining PENDING applications once
// the quota reaches zero.
func (s *service) Approve(ctx context.Context, mppID, applicationID uuid.UUID) (*MPPApplicationResponse, error) {
	resp, err := s.approveOne(ctx, mppID, applicationID)
	if err != nil {
		return nil, err
	}
	s.invalidateDecisionCaches(ctx)
	return resp, nil
}

func (s *service) approveOne(ctx context.Context, mppID, applicationID uuid.UUID) (*MPPApplicationResponse, error) {
	var (
		app       *applications.FacilityApplication
		payment   *applications.Payment
		remaining int
		cascaded  int
	)

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		var err error
		app, err = tx.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if !app.Status.CanApprove() {
			return fmt.Errorf("%w: cannot approve %s application", applications.ErrInvalidStateTransition, app.Status)
		}

		assignment, err := tx.LockEventFacility(ctx, app.EventFacilityID)
		if err != nil {
			return err
		}
		if assignment.AvailableQuantity < app.Quantity {
			return &applications.QuotaExceededError{
				FacilityName: app.EventFacility.Facility.Name,
				Remaining:    assignment.AvailableQuantity,
				Requested:    app.Quantity,
			}
		}

		deducted, err := tx.DeductQuota(ctx, app.EventFacilityID, app.Quantity)
		if err != nil {
			return err
		}
		if !deducted {
			return &applications.QuotaExceededError{
				FacilityName: app.EventFacility.Facility.Name,
				Remaining:    assignment.AvailableQuantity,
				Requested:    app.Quantity,
			}
		}
		remaining = assignment.AvailableQuantity - app.Quantity

		if err := tx.UpdateDecision(ctx, app.ID, applications.StatusApproved, ""); err != nil {
			return err
		}
		app.Status = applications.StatusApproved
		app.RejectionReason = ""

		amount := paymentAmount(app)
		if amount > 0 {
			payment = &applications.Payment{
				ApplicationID: app.ID,
				Amount:        amount,
				Status:        applications.PaymentUnpaid,
			}
			if err := tx.CreatePayment(ctx, payment); err != nil {
				return err
			}
		}

		// Quota exhausted, nobody else waiting on this facility can be
		// served anymore.
		if remaining == 0 {
			others, err := tx.ListPendingByEventFacility(ctx, app.EventFacilityID, app.ID)
			if err != nil {
				return err
			}
			for i := range others {
				if err := tx.UpdateDecision(ctx, others[i].ID, applications.StatusRejected, QuotaFilledReason); err != nil {
					return err
				}
			}
			cascaded = len(others)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.LogApplicationApproved(ctx, app.ID.String(), app.Quantity, remaining)
	if payment != nil {
		s.log.LogPaymentCreated(ctx, payment.ID.String(), app.ID.String(), payment.Amount)
	}
	if cascaded > 0 {
		s.log.Info("auto-rejected pending applications, facility quota filled",
			"event_facility_id", app.EventFacilityID,
			"rejected_count", cascaded,
			"decided_by", mppID)
	}

	s.publishDecision(ctx, notifications.DecisionApproved, app, "")

	resp := s.toMPPResponse(ctx, app, payment)
	return &resp, nil
}

// Reject refuses a PENDING application with a reason the business
// owner will see.
func (s *service) Reject(ctx context.Context, mppID, applicationID uuid.UUID, reason string) (*MPPApplicationResponse, error) {
	resp, err := s.rejectOne(ctx, mppID, applicationID, reason)
	if err != nil {
		return nil, err
	}
	s.invalidateDecisionCaches(ctx)
	return resp, nil
}

func (s *service) rejectOne(ctx context.Context, mppID, applicationID uuid.UUID, reason string) (*MPPApplicationResponse, error) {
	var app *applications.FacilityApplication

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		var err error
		app, err = tx.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if !app.Status.CanReject() {
			return fmt.Errorf("%w: cannot reject %s application", applications.ErrInvalidStateTransition, app.Status)
		}
		if err := tx.UpdateDecision(ctx, app.ID, applications.StatusRejected, reason); err != nil {
			return err
		}
		app.Status = applications.StatusRejected
		app.RejectionReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.LogApplicationRejected(ctx, app.ID.String(), reason)
	s.publishDecision(ctx, notifications.DecisionRejected, app, reason)

	resp := s.toMPPResponse(ctx, app, nil)
	return &resp, nil
}

// Revert undoes a decision and puts the application back to PENDING.
// Reverting an approval restores the quota and drops the payment
// unless it was already settled.
func (s *service) Revert(ctx context.Context, mppID, applicationID uuid.UUID) (*MPPApplicationResponse, error) {
	resp, err := s.revertOne(ctx, mppID, applicationID)
	if err != nil {
		return nil, err
	}
	s.invalidateDecisionCaches(ctx)
	return resp, nil
}

func (s *service) revertOne(ctx context.Context, mppID, applicationID uuid.UUID) (*MPPApplicationResponse, error) {
	var (
		app            *applications.FacilityApplication
		previousStatus applications.Status
		payment        *applications.Payment
	)

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		var err error
		app, err = tx.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if !app.Status.CanRevert() {
			return fmt.Errorf("%w: cannot revert %s application", applications.ErrInvalidStateTransition, app.Status)
		}
		previousStatus = app.Status

		if previousStatus == applications.StatusApproved {
			if _, err := tx.LockEventFacility(ctx, app.EventFacilityID); err != nil {
				return err
			}
			if err := tx.RestoreQuota(ctx, app.EventFacilityID, app.Quantity); err != nil {
				return err
			}
			// A settled payment survives the revert as the record of
			// money already taken.
			if err := tx.DeleteUnpaidPayment(ctx, app.ID); err != nil {
				return err
			}
			payment, err = tx.GetPayment(ctx, app.ID)
			if err != nil {
				return err
			}
		}

		if err := tx.UpdateDecision(ctx, app.ID, applications.StatusPending, ""); err != nil {
			return err
		}
		app.Status = applications.StatusPending
		app.RejectionReason = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.LogApplicationReverted(ctx, app.ID.String(), previousStatus.String())
	s.publishDecision(ctx, notifications.DecisionReverted, app, "")

	resp := s.toMPPResponse(ctx, app, payment)
	return &resp, nil
}

// BulkApprove decides each application independently and reports which
// ones failed instead of aborting the whole batch.
func (s *service) BulkApprove(ctx context.Context, mppID uuid.UUID, ids []uuid.UUID) (*BulkResult, error) {
	result := &BulkResult{}
	for _, id := range ids {
		resp, err := s.approveOne(ctx, mppID, id)
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, *resp)
	}
	s.invalidateDecisionCaches(ctx)
	return result, nil
}

func (s *service) BulkReject(ctx context.Context, mppID uuid.UUID, ids []uuid.UUID, reason string) (*BulkResult, error) {
	result := &BulkResult{}
	for _, id := range ids {
		resp, err := s.rejectOne(ctx, mppID, id, reason)
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, *resp)
	}
	s.invalidateDecisionCaches(ctx)
	return result, nil
}

func (s *service) BulkRevert(ctx context.Context, mppID uuid.UUID, ids []uuid.UUID) (*BulkResult, error) {
	result := &BulkResult{}
	for _, id := range ids {
		resp, err := s.revertOne(ctx, mppID, id)
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, *resp)
	}
	s.invalidateDecisionCaches(ctx)
	return result, nil
}

func (s *service) HasBeenPaid(ctx context.Context, applicationID uuid.UUID) (bool, error) {
	if _, err := s.repo.GetByID(ctx, applicationID); err != nil {
		return false, err
	}
	payment, err := s.repo.GetPayment(ctx, applicationID)
	if err != nil {
		return false, err
	}
	return payment != nil && payment.Status == applications.PaymentPaid, nil
}

func (s *service) MarkPaymentPaid(ctx context.Context, applicationID uuid.UUID) (*applications.Payment, error) {
	payment, err := s.repo.GetPayment(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status == applications.PaymentPaid {
		return payment, nil
	}
	if err := s.repo.UpdatePaymentStatus(ctx, applicationID, applications.PaymentPaid); err != nil {
		return nil, err
	}
	payment.Status = applications.PaymentPaid

	s.log.Info("payment settled", "payment_id", payment.ID, "application_id", applicationID, "amount", payment.Amount)
	return payment, nil
}

func (s *service) AutoRejectPendingForBlockedUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var rejected int
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		pending, err := tx.ListPendingByOwner(ctx, userID)
		if err != nil {
			return err
		}
		for i := range pending {
			if err := tx.UpdateDecision(ctx, pending[i].ID, applications.StatusRejected, BlockedAccountReason); err != nil {
				return err
			}
		}
		rejected = len(pending)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if rejected > 0 {
		s.log.Info("auto-rejected pending applications for blocked user",
			"user_id", userID, "rejected_count", rejected)
		s.invalidateDecisionCaches(ctx)
	}
	return rejected, nil
}

func (s *service) GetEventsWithApplicationSummary(ctx context.Context, statusFilter string) ([]EventSummaryResponse, error) {
	fetch := func() ([]EventSummaryResponse, error) {
		list, err := s.eventRepo.List(ctx, events.ListFilters{Status: statusFilter})
		if err != nil {
			return nil, err
		}
		counts, err := s.repo.CountsByEvent(ctx)
		if err != nil {
			return nil, err
		}
		summaries := make([]EventSummaryResponse, 0, len(list))
		for i := range list {
			summaries = append(summaries, EventSummaryResponse{
				EventResponse: list[i].ToResponse(),
				Applications:  counts[list[i].ID],
			})
		}
		return summaries, nil
	}

	if s.cache == nil {
		return fetch()
	}

	var summaries []EventSummaryResponse
	err := s.cache.GetOrSet(ctx, constants.ApprovalSummaryKey(statusFilter), constants.TTL_APPROVAL_SUMMARY,
		func() (interface{}, error) { return fetch() }, &summaries)
	if err != nil {
		return fetch()
	}
	return summaries, nil
}

func (s *service) GetApplicationsByEvent(ctx context.Context, eventID uuid.UUID, filters ListFilters) ([]MPPApplicationResponse, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	fetch := func() ([]MPPApplicationResponse, error) {
		list, err := s.repo.ListByEvent(ctx, eventID, filters)
		if err != nil {
			return nil, err
		}
		responses := make([]MPPApplicationResponse, 0, len(list))
		for i := range list {
			payment, err := s.repo.GetPayment(ctx, list[i].ID)
			if err != nil {
				return nil, err
			}
			responses = append(responses, s.toMPPResponse(ctx, &list[i], payment))
		}
		return responses, nil
	}

	if s.cache == nil {
		return fetch()
	}

	key := constants.EventApplicationsKey(eventID.String(), filters.Status, filters.Search, filters.SortOrder)
	var responses []MPPApplicationResponse
	err := s.cache.GetOrSet(ctx, key, constants.TTL_EVENT_APPS,
		func() (interface{}, error) { return fetch() }, &responses)
	if err != nil {
		return fetch()
	}
	return responses, nil
}

// paymentAmount prices the application by the owner's category.
func paymentAmount(app *applications.FacilityApplication) float64 {
	price := app.EventFacility.NonStudentPrice
	if app.Business.Owner.Category == users.CategoryStudent {
		price = app.EventFacility.StudentPrice
	}
	return math.Round(price*float64(app.Quantity)*100) / 100
}

func (s *service) toMPPResponse(ctx context.Context, app *applications.FacilityApplication, payment *applications.Payment) MPPApplicationResponse {
	resp := NewMPPApplicationResponse(app, payment)
	if event, err := s.eventRepo.GetByID(ctx, app.EventFacility.EventID); err == nil {
		resp.EventID = event.ID
		resp.EventName = event.Name
	}
	return resp
}

func (s *service) publishDecision(ctx context.Context, decisionType notifications.DecisionType, app *applications.FacilityApplication, reason string) {
	if s.publisher == nil {
		return
	}
	event := notifications.NewDecisionEvent(decisionType)
	event.ApplicationID = app.ID
	event.BusinessID = app.BusinessID
	event.BusinessName = app.Business.Name
	event.OwnerID = app.Business.OwnerID
	event.OwnerEmail = app.Business.Owner.Email
	event.FacilityName = app.EventFacility.Facility.Name
	event.Quantity = app.Quantity
	event.Reason = reason
	if e, err := s.eventRepo.GetByID(ctx, app.EventFacility.EventID); err == nil {
		event.EventName = e.Name
	}

	// Notification delivery never blocks or fails a decision.
	if err := s.publisher.PublishDecision(ctx, event); err != nil {
		s.log.Warn("failed to publish decision event", "error", err, "application_id", app.ID)
	}
}

func (s *service) invalidateDecisionCaches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.ApprovalSummaryPattern); err != nil {
		s.log.Warn("failed to invalidate approval summary cache", "error", err)
	}
	if err := s.cache.DeletePattern(ctx, constants.EventApplicationsPattern); err != nil {
		s.log.Warn("failed to invalidate event applications cache", "error", err)
	}
}
