package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rently/internal/facilities"
	"rently/internal/shared/constants"
	"rently/pkg/cache"
	"rently/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrDuplicateEventName  = errors.New("event name already exists")
	ErrStartDateInPast     = errors.New("event start date cannot be in the past")
	ErrEndBeforeStart      = errors.New("event end date must be after start date")
	ErrEndTimeBeforeStart  = errors.New("event end time must be after start time")
	ErrEventNotEditable    = errors.New("completed or cancelled events cannot be edited")
	ErrEventNotCancellable = errors.New("only upcoming events can be cancelled")
	ErrEventAlreadyOver    = errors.New("application status can only be toggled for upcoming or active events")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateEvent(ctx context.Context, req *CreateEventRequest) (*EventWithFacilitiesResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	GetEventWithFacilities(ctx context.Context, id uuid.UUID) (*EventWithFacilitiesResponse, error)
	ListEvents(ctx context.Context, query ListQuery) ([]EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req *UpdateEventRequest) (*EventWithFacilitiesResponse, error)
	CancelEvent(ctx context.Context, id uuid.UUID) error
	ToggleApplicationStatus(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	RefreshStatuses(ctx context.Context) (int, error)
}

type service struct {
	repo         Repository
	facilitySvc  facilities.Service
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository, facilitySvc facilities.Service) Service {
	return &service{
		repo:        repo,
		facilitySvc: facilitySvc,
		log:         logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateEvent(ctx context.Context, req *CreateEventRequest) (*EventWithFacilitiesResponse, error) {
	startDate, endDate, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := validateDates(startDate, endDate, req.StartTime, req.EndTime, time.Now()); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEventName
	}

	event := &Event{
		Name:              req.Name,
		Venue:             req.Venue,
		StartDate:         startDate,
		EndDate:           endDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Type:              req.Type,
		Description:       req.Description,
		ApplicationStatus: ApplicationsOpen,
		Status:            DeriveStatus(startDate, endDate, time.Now()),
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	assigned, err := s.facilitySvc.AssignFacilities(ctx, event.ID, req.Facilities)
	if err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx)
	s.log.Info("event created", "event_id", event.ID, "name", event.Name, "facilities", len(assigned))

	return &EventWithFacilitiesResponse{
		EventResponse: event.ToResponse(),
		Facilities:    assigned,
	}, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	cacheKey := constants.EventDetailKey(id.String())
	if s.cacheService != nil {
		var cached EventResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.getRefreshed(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := event.ToResponse()
	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, resp, constants.TTL_EVENT_DETAIL); err != nil {
			s.log.Warn("failed to cache event detail", "error", err)
		}
	}
	return &resp, nil
}

func (s *service) GetEventWithFacilities(ctx context.Context, id uuid.UUID) (*EventWithFacilitiesResponse, error) {
	event, err := s.getRefreshed(ctx, id)
	if err != nil {
		return nil, err
	}

	assignments, err := s.facilitySvc.ListEventAssignments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &EventWithFacilitiesResponse{
		EventResponse: event.ToResponse(),
		Facilities:    assignments,
	}, nil
}

func (s *service) ListEvents(ctx context.Context, query ListQuery) ([]EventResponse, error) {
	cacheable := query.Search == ""
	cacheKey := constants.EventListKey(query.Status)

	if cacheable && s.cacheService != nil {
		var cached []EventResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	list, err := s.repo.List(ctx, ListFilters{Search: query.Search, Status: query.Status})
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, 0, len(list))
	now := time.Now()
	for i := range list {
		event := &list[i]
		if event.Status != StatusCancelled {
			if derived := DeriveStatus(event.StartDate, event.EndDate, now); derived != event.Status {
				event.Status = derived
				if err := s.repo.UpdateStatus(ctx, event.ID, derived); err != nil {
					s.log.Warn("failed to refresh event status", "event_id", event.ID, "error", err)
				}
			}
		}
		responses = append(responses, event.ToResponse())
	}

	if cacheable && s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, responses, constants.TTL_EVENT_LISTING); err != nil {
			s.log.Warn("failed to cache event list", "error", err)
		}
	}

	return responses, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, req *UpdateEventRequest) (*EventWithFacilitiesResponse, error) {
	event, err := s.getRefreshed(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status == StatusCompleted || event.Status == StatusCancelled {
		return nil, ErrEventNotEditable
	}

	if event.Name != req.Name {
		exists, err := s.repo.NameExists(ctx, req.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateEventName
		}
	}

	event.Name = req.Name
	event.Venue = req.Venue
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.Type = req.Type
	event.Description = req.Description

	if event.Status == StatusUpcoming {
		if req.StartDate == "" || req.EndDate == "" {
			return nil, fmt.Errorf("start and end dates are required for upcoming events")
		}
		startDate, endDate, err := parseDates(req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
		if err := validateDates(startDate, endDate, req.StartTime, req.EndTime, time.Now()); err != nil {
			return nil, err
		}
		event.StartDate = startDate
		event.EndDate = endDate
	} else if err := validateTimes(req.StartTime, req.EndTime); err != nil {
		// Dates are frozen once the event is running.
		return nil, err
	}

	event.Status = DeriveStatus(event.StartDate, event.EndDate, time.Now())
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	assignments, err := s.facilitySvc.ReplaceAssignments(ctx, id, req.Facilities)
	if err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx)
	s.log.Info("event updated", "event_id", event.ID)

	return &EventWithFacilitiesResponse{
		EventResponse: event.ToResponse(),
		Facilities:    assignments,
	}, nil
}

func (s *service) CancelEvent(ctx context.Context, id uuid.UUID) error {
	event, err := s.getRefreshed(ctx, id)
	if err != nil {
		return err
	}
	if event.Status != StatusUpcoming {
		return ErrEventNotCancellable
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return err
	}

	s.invalidateEventCache(ctx)
	s.log.Warn("event cancelled", "event_id", id, "name", event.Name)
	return nil
}

func (s *service) ToggleApplicationStatus(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	event, err := s.getRefreshed(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != StatusUpcoming && event.Status != StatusActive {
		return nil, ErrEventAlreadyOver
	}

	event.ApplicationStatus = event.ApplicationStatus.Toggle()
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx)
	s.log.Info("event application status toggled", "event_id", id, "application_status", event.ApplicationStatus)

	resp := event.ToResponse()
	return &resp, nil
}

// RefreshStatuses rederives the lifecycle status of every non-terminal
// event. Returns the number of events updated.
func (s *service) RefreshStatuses(ctx context.Context) (int, error) {
	now := time.Now()
	stale, err := s.repo.FindNeedingStatusRefresh(ctx, now)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range stale {
		status := DeriveStatus(stale[i].StartDate, stale[i].EndDate, now)
		if err := s.repo.UpdateStatus(ctx, stale[i].ID, status); err != nil {
			s.log.Error("failed to refresh event status", "event_id", stale[i].ID, "error", err)
			continue
		}
		updated++
	}

	if updated > 0 {
		s.invalidateEventCache(ctx)
	}
	return updated, nil
}

// getRefreshed loads an event and rederives its status so stale rows
// never leak into decisions.
func (s *service) getRefreshed(ctx context.Context, id uuid.UUID) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != StatusCancelled {
		if derived := DeriveStatus(event.StartDate, event.EndDate, time.Now()); derived != event.Status {
			event.Status = derived
			if err := s.repo.UpdateStatus(ctx, id, derived); err != nil {
				return nil, err
			}
		}
	}
	return event, nil
}

func (s *service) invalidateEventCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.EventCachePattern); err != nil {
		s.log.Warn("failed to invalidate event cache", "error", err)
	}
}

func parseDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
	}
	return startDate, endDate, nil
}

func validateDates(startDate, endDate time.Time, startTime, endTime string, now time.Time) error {
	today := now.Truncate(24 * time.Hour)
	if startDate.Before(today) {
		return ErrStartDateInPast
	}
	if endDate.Before(startDate) {
		return ErrEndBeforeStart
	}
	if startDate.Equal(endDate) {
		return validateTimes(startTime, endTime)
	}
	return nil
}

func validateTimes(startTime, endTime string) error {
	if endTime <= startTime {
		return ErrEndTimeBeforeStart
	}
	return nil
}
