package applications

import (
	"context"
	"fmt"
	"time"

	"rently/internal/businesses"
	"rently/internal/events"
	"rently/internal/facilities"
	"rently/internal/users"
	"rently/pkg/logger"

	"github.com/google/uuid"
)

// OwnerEventResponse pairs an event with the caller's quota position
// on each assigned facility.
type OwnerEventResponse struct {
	events.EventResponse
	Facilities []OwnerFacilityResponse `json:"facilities"`
}

type Service interface {
	SubmitApplications(ctx context.Context, ownerID uuid.UUID, req *SubmitRequest) ([]ApplicationResponse, error)
	GetMyApplications(ctx context.Context, ownerID uuid.UUID) ([]ApplicationResponse, error)
	CancelApplication(ctx context.Context, ownerID, applicationID uuid.UUID) (*ApplicationResponse, error)

	BrowseEvents(ctx context.Context, query EventBrowseQuery) ([]events.EventResponse, error)
	GetEventForOwner(ctx context.Context, ownerID, eventID uuid.UUID) (*OwnerEventResponse, error)

	// HasActiveApplications reports whether a business still holds
	// PENDING or APPROVED applications.
	HasActiveApplications(ctx context.Context, businessID uuid.UUID) (bool, error)
}

type service struct {
	repo         Repository
	businessRepo businesses.Repository
	facilityRepo facilities.Repository
	eventRepo    events.Repository
	userRepo     users.Repository
	log          *logger.Logger
}

func NewService(
	repo Repository,
	businessRepo businesses.Repository,
	facilityRepo facilities.Repository,
	eventRepo events.Repository,
	userRepo users.Repository,
) Service {
	return &service{
		repo:         repo,
		businessRepo: businessRepo,
		facilityRepo: facilityRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		log:          logger.GetDefault(),
	}
}

// SubmitApplications validates every line of the batch before any row
// is written, then persists the whole batch in one transaction.
func (s *service) SubmitApplications(ctx context.Context, ownerID uuid.UUID, req *SubmitRequest) ([]ApplicationResponse, error) {
	business, err := s.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if business.OwnerID != ownerID {
		return nil, ErrBusinessNotOwned
	}
	if !business.IsActive() {
		return nil, ErrBusinessNotActive
	}

	apps := make([]*FacilityApplication, 0, len(req.Facilities))
	seen := make(map[uuid.UUID]bool, len(req.Facilities))

	for _, item := range req.Facilities {
		assignment, err := s.facilityRepo.GetAssignmentByID(ctx, item.EventFacilityID)
		if err != nil {
			return nil, err
		}

		event, err := s.eventRepo.GetByID(ctx, assignment.EventID)
		if err != nil {
			return nil, err
		}
		if !event.AcceptsApplications() {
			return nil, fmt.Errorf("%w: %s", ErrApplicationsClosed, event.Name)
		}

		if seen[item.EventFacilityID] {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyPending, assignment.Facility.Name)
		}
		seen[item.EventFacilityID] = true

		pending, err := s.repo.HasPendingApplication(ctx, business.ID, item.EventFacilityID)
		if err != nil {
			return nil, err
		}
		if pending {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyPending, assignment.Facility.Name)
		}

		applied, err := s.repo.TotalAppliedQuantity(ctx, business.ID, item.EventFacilityID)
		if err != nil {
			return nil, err
		}
		remaining := assignment.MaxPerBusiness - applied
		if item.Quantity > remaining {
			return nil, &QuotaExceededError{
				FacilityName: assignment.Facility.Name,
				Remaining:    remaining,
				Requested:    item.Quantity,
			}
		}

		apps = append(apps, &FacilityApplication{
			BusinessID:      business.ID,
			Business:        *business,
			EventFacilityID: item.EventFacilityID,
			EventFacility:   *assignment,
			Quantity:        item.Quantity,
			Status:          StatusPending,
		})
	}

	if err := s.repo.CreateBatch(ctx, apps); err != nil {
		return nil, err
	}

	responses := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		s.log.LogApplicationSubmitted(ctx, app.ID.String(), app.BusinessID.String(), app.EventFacilityID.String(), app.Quantity)
		responses = append(responses, app.ToResponse(nil))
	}
	return responses, nil
}

func (s *service) GetMyApplications(ctx context.Context, ownerID uuid.UUID) ([]ApplicationResponse, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]ApplicationResponse, 0, len(list))
	for i := range list {
		payment, err := s.repo.GetPaymentByApplicationID(ctx, list[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, list[i].ToResponse(payment))
	}
	return responses, nil
}

func (s *service) CancelApplication(ctx context.Context, ownerID, applicationID uuid.UUID) (*ApplicationResponse, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Business.OwnerID != ownerID {
		return nil, ErrNotApplicationOwner
	}
	if !app.Status.CanCancel() {
		return nil, fmt.Errorf("%w: cannot cancel %s application", ErrInvalidStateTransition, app.Status)
	}

	if err := s.repo.UpdateStatus(ctx, applicationID, StatusCancelled); err != nil {
		return nil, err
	}
	app.Status = StatusCancelled

	s.log.Info("application cancelled", "application_id", applicationID, "business_id", app.BusinessID)

	resp := app.ToResponse(nil)
	return &resp, nil
}

// BrowseEvents lists events for business owners. Cancelled events are
// hidden, completed events drop off three days after they end.
func (s *service) BrowseEvents(ctx context.Context, query EventBrowseQuery) ([]events.EventResponse, error) {
	list, err := s.eventRepo.List(ctx, events.ListFilters{Search: query.Search, Status: query.Status})
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -3)
	responses := make([]events.EventResponse, 0, len(list))
	for i := range list {
		event := &list[i]
		if event.Status == events.StatusCancelled {
			continue
		}
		if event.Status == events.StatusCompleted && event.EndDate.Before(cutoff) {
			continue
		}
		responses = append(responses, event.ToResponse())
	}
	return responses, nil
}

func (s *service) GetEventForOwner(ctx context.Context, ownerID, eventID uuid.UUID) (*OwnerEventResponse, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.facilityRepo.ListAssignmentsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ownerBusinesses, err := s.businessRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	facilityResponses := make([]OwnerFacilityResponse, 0, len(assignments))
	for i := range assignments {
		resp, err := s.buildOwnerFacility(ctx, &assignments[i], owner, ownerBusinesses)
		if err != nil {
			return nil, err
		}
		facilityResponses = append(facilityResponses, resp)
	}

	return &OwnerEventResponse{
		EventResponse: event.ToResponse(),
		Facilities:    facilityResponses,
	}, nil
}

func (s *service) HasActiveApplications(ctx context.Context, businessID uuid.UUID) (bool, error) {
	return s.repo.HasLiveApplications(ctx, businessID)
}

// buildOwnerFacility computes the caller's quota position on one
// assignment: the most constrained of their businesses wins.
func (s *service) buildOwnerFacility(
	ctx context.Context,
	assignment *facilities.EventFacility,
	owner *users.User,
	ownerBusinesses []businesses.Business,
) (OwnerFacilityResponse, error) {
	applicablePrice := assignment.NonStudentPrice
	if owner.Category == users.CategoryStudent {
		applicablePrice = assignment.StudentPrice
	}

	minRemaining := assignment.MaxPerBusiness
	anyPending := false
	for i := range ownerBusinesses {
		applied, err := s.repo.TotalAppliedQuantity(ctx, ownerBusinesses[i].ID, assignment.ID)
		if err != nil {
			return OwnerFacilityResponse{}, err
		}
		if remaining := assignment.MaxPerBusiness - applied; remaining < minRemaining {
			minRemaining = remaining
		}
		pending, err := s.repo.HasPendingApplication(ctx, ownerBusinesses[i].ID, assignment.ID)
		if err != nil {
			return OwnerFacilityResponse{}, err
		}
		if pending {
			anyPending = true
		}
	}

	return OwnerFacilityResponse{
		EventFacilityID:   assignment.ID,
		FacilityID:        assignment.FacilityID,
		FacilityName:      assignment.Facility.Name,
		FacilitySize:      assignment.Facility.Size,
		FacilityType:      assignment.Facility.Type,
		Description:       assignment.Facility.Description,
		Usage:             assignment.Facility.Usage,
		AvailableQuantity: assignment.AvailableQuantity,
		StudentPrice:      assignment.StudentPrice,
		NonStudentPrice:   assignment.NonStudentPrice,
		ApplicablePrice:   applicablePrice,
		MaxPerBusiness:    assignment.MaxPerBusiness,
		RemainingQuota:    minRemaining,
		HasPending:        anyPending,
	}, nil
}
