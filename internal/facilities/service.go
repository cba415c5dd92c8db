package facilities

import (
	"context"
	"errors"
	"fmt"

	"rently/internal/shared/constants"
	"rently/pkg/cache"
	"rently/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrDuplicateFacilityName = errors.New("facility name already exists")
	ErrFacilityInactive      = errors.New("facility is inactive")
	ErrFacilityInUse         = errors.New("facility is assigned to one or more events")
	ErrAlreadyAssigned       = errors.New("facility is already assigned to this event")
	ErrAssignmentInUse       = errors.New("assignment has existing applications")
	ErrNoFacilities          = errors.New("at least one facility must be assigned")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateFacility(ctx context.Context, req *CreateFacilityRequest) (*FacilityResponse, error)
	GetFacility(ctx context.Context, id uuid.UUID) (*FacilityResponse, error)
	ListFacilities(ctx context.Context, query CatalogQuery) ([]FacilityResponse, error)
	UpdateFacility(ctx context.Context, id uuid.UUID, req *UpdateFacilityRequest) (*FacilityResponse, error)
	DeleteFacility(ctx context.Context, id uuid.UUID) error

	AssignFacilities(ctx context.Context, eventID uuid.UUID, reqs []AssignmentRequest) ([]AssignmentResponse, error)
	ReplaceAssignments(ctx context.Context, eventID uuid.UUID, reqs []AssignmentRequest) ([]AssignmentResponse, error)
	ListEventAssignments(ctx context.Context, eventID uuid.UUID) ([]AssignmentResponse, error)
	GetAssignment(ctx context.Context, id uuid.UUID) (*EventFacility, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateFacility(ctx context.Context, req *CreateFacilityRequest) (*FacilityResponse, error) {
	exists, err := s.repo.FacilityNameExists(ctx, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateFacilityName
	}

	status := FacilityStatus(req.Status)
	if !status.IsValid() {
		status = FacilityStatusActive
	}

	facility := &Facility{
		Name:                req.Name,
		Size:                req.Size,
		Type:                req.Type,
		Description:         req.Description,
		Usage:               req.Usage,
		Remark:              req.Remark,
		BaseStudentPrice:    req.BaseStudentPrice,
		BaseNonStudentPrice: req.BaseNonStudentPrice,
		Status:              status,
	}
	if err := s.repo.CreateFacility(ctx, facility); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	s.log.Info("facility created", "facility_id", facility.ID, "name", facility.Name)

	resp := facility.ToResponse()
	return &resp, nil
}

func (s *service) GetFacility(ctx context.Context, id uuid.UUID) (*FacilityResponse, error) {
	facility, err := s.repo.GetFacilityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := facility.ToResponse()
	return &resp, nil
}

func (s *service) ListFacilities(ctx context.Context, query CatalogQuery) ([]FacilityResponse, error) {
	filters := CatalogFilters(query)

	// Only the plain per-status listing is cached, filtered views go
	// straight to the database.
	cacheable := filters.Search == "" && filters.Type == "" && filters.Size == ""
	cacheKey := constants.FacilityCatalogKey(filters.Status)

	if cacheable && s.cacheService != nil {
		var cached []FacilityResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	list, err := s.repo.ListFacilities(ctx, filters)
	if err != nil {
		return nil, err
	}
	responses := make([]FacilityResponse, 0, len(list))
	for i := range list {
		responses = append(responses, list[i].ToResponse())
	}

	if cacheable && s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, responses, constants.TTL_FACILITY_CATALOG); err != nil {
			s.log.Warn("failed to cache facility catalog", "error", err)
		}
	}

	return responses, nil
}

func (s *service) UpdateFacility(ctx context.Context, id uuid.UUID, req *UpdateFacilityRequest) (*FacilityResponse, error) {
	facility, err := s.repo.GetFacilityByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if facility.Name != req.Name {
		exists, err := s.repo.FacilityNameExists(ctx, req.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateFacilityName
		}
	}

	facility.Name = req.Name
	facility.Size = req.Size
	facility.Type = req.Type
	facility.Description = req.Description
	facility.Usage = req.Usage
	facility.Remark = req.Remark
	facility.BaseStudentPrice = req.BaseStudentPrice
	facility.BaseNonStudentPrice = req.BaseNonStudentPrice
	facility.Status = FacilityStatus(req.Status)

	if err := s.repo.UpdateFacility(ctx, facility); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	s.log.Info("facility updated", "facility_id", facility.ID)

	resp := facility.ToResponse()
	return &resp, nil
}

func (s *service) DeleteFacility(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetFacilityByID(ctx, id); err != nil {
		return err
	}

	assigned, err := s.repo.FacilityAssignedToEvents(ctx, id)
	if err != nil {
		return err
	}
	if assigned {
		return ErrFacilityInUse
	}

	if err := s.repo.DeleteFacility(ctx, id); err != nil {
		return err
	}

	s.invalidateCatalogCache(ctx)
	s.log.Info("facility deleted", "facility_id", id)
	return nil
}

func (s *service) AssignFacilities(ctx context.Context, eventID uuid.UUID, reqs []AssignmentRequest) ([]AssignmentResponse, error) {
	if len(reqs) == 0 {
		return nil, ErrNoFacilities
	}

	responses := make([]AssignmentResponse, 0, len(reqs))
	for _, req := range reqs {
		assignment, err := s.createAssignment(ctx, eventID, req)
		if err != nil {
			return nil, err
		}
		responses = append(responses, assignment.ToResponse())
	}
	return responses, nil
}

func (s *service) ReplaceAssignments(ctx context.Context, eventID uuid.UUID, reqs []AssignmentRequest) ([]AssignmentResponse, error) {
	if len(reqs) == 0 {
		return nil, ErrNoFacilities
	}

	existing, err := s.repo.ListAssignmentsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	existingByID := make(map[uuid.UUID]*EventFacility, len(existing))
	for i := range existing {
		existingByID[existing[i].ID] = &existing[i]
	}

	kept := make(map[uuid.UUID]bool, len(reqs))
	for _, req := range reqs {
		if req.AssignmentID != nil {
			assignment, ok := existingByID[*req.AssignmentID]
			if !ok {
				return nil, ErrAssignmentNotFound
			}
			assignment.AvailableQuantity = req.Quantity
			assignment.StudentPrice = req.StudentPrice
			assignment.NonStudentPrice = req.NonStudentPrice
			assignment.MaxPerBusiness = req.MaxPerBusiness
			if err := s.repo.UpdateAssignment(ctx, assignment); err != nil {
				return nil, err
			}
			kept[assignment.ID] = true
		} else {
			if _, err := s.createAssignment(ctx, eventID, req); err != nil {
				return nil, err
			}
		}
	}

	// Unassigning is refused once a facility has received applications.
	for i := range existing {
		if kept[existing[i].ID] {
			continue
		}
		hasApps, err := s.repo.AssignmentHasApplications(ctx, existing[i].ID)
		if err != nil {
			return nil, err
		}
		if hasApps {
			return nil, fmt.Errorf("%w: %s", ErrAssignmentInUse, existing[i].Facility.Name)
		}
		if err := s.repo.DeleteAssignment(ctx, existing[i].ID); err != nil {
			return nil, err
		}
	}

	return s.ListEventAssignments(ctx, eventID)
}

func (s *service) ListEventAssignments(ctx context.Context, eventID uuid.UUID) ([]AssignmentResponse, error) {
	list, err := s.repo.ListAssignmentsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	responses := make([]AssignmentResponse, 0, len(list))
	for i := range list {
		responses = append(responses, list[i].ToResponse())
	}
	return responses, nil
}

func (s *service) GetAssignment(ctx context.Context, id uuid.UUID) (*EventFacility, error) {
	return s.repo.GetAssignmentByID(ctx, id)
}

func (s *service) createAssignment(ctx context.Context, eventID uuid.UUID, req AssignmentRequest) (*EventFacility, error) {
	facility, err := s.repo.GetFacilityByID(ctx, req.FacilityID)
	if err != nil {
		return nil, err
	}
	if !facility.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrFacilityInactive, facility.Name)
	}

	assigned, err := s.repo.AssignmentExists(ctx, eventID, req.FacilityID)
	if err != nil {
		return nil, err
	}
	if assigned {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyAssigned, facility.Name)
	}

	assignment := &EventFacility{
		EventID:           eventID,
		FacilityID:        req.FacilityID,
		Facility:          *facility,
		AvailableQuantity: req.Quantity,
		StudentPrice:      req.StudentPrice,
		NonStudentPrice:   req.NonStudentPrice,
		MaxPerBusiness:    req.MaxPerBusiness,
	}
	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *service) invalidateCatalogCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.FacilityCachePattern); err != nil {
		s.log.Warn("failed to invalidate facility cache", "error", err)
	}
}
