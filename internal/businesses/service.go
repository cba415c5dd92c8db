package businesses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rently/internal/users"
	"rently/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrDuplicateName         = errors.New("business name already exists")
	ErrDuplicateSSMNumber    = errors.New("ssm number already exists")
	ErrSSMNumberRequired     = errors.New("ssm number is required for non-student owners")
	ErrNotOwner              = errors.New("caller does not own this business")
	ErrBusinessBlocked       = errors.New("business is blocked")
	ErrStatusUnchanged       = errors.New("business already has the requested status")
	ErrHasActiveApplications = errors.New("business has pending or approved applications")
)

// ApplicationChecker is the subset of the application service the
// business service needs before destructive operations (local
// interface to avoid a circular dependency).
type ApplicationChecker interface {
	HasActiveApplications(ctx context.Context, businessID uuid.UUID) (bool, error)
}

type Service interface {
	CreateBusiness(ctx context.Context, ownerID uuid.UUID, req *CreateBusinessRequest) (*Response, error)
	GetMyBusinesses(ctx context.Context, ownerID uuid.UUID) ([]Response, error)
	GetBusiness(ctx context.Context, ownerID, businessID uuid.UUID) (*Response, error)
	UpdateBusiness(ctx context.Context, ownerID, businessID uuid.UUID, req *UpdateBusinessRequest) (*Response, error)
	DeleteBusiness(ctx context.Context, ownerID, businessID uuid.UUID) error

	ListBusinesses(ctx context.Context, query ListQuery) ([]ManagementResponse, error)
	GetBusinessDetail(ctx context.Context, businessID uuid.UUID) (*ManagementResponse, error)
	UpdateBusinessStatus(ctx context.Context, businessID uuid.UUID, req *UpdateStatusRequest) (*ManagementResponse, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}

func NewService(repo Repository, userRepo users.Repository) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		userRepo: userRepo,
		log:      logger.GetDefault(),
	}
}

// ServiceImpl implements Service; exported so the router can inject the
// application checker after construction.
type ServiceImpl struct {
	repo         Repository
	userRepo     users.Repository
	applications ApplicationChecker
	log          *logger.Logger
}

// SetApplicationChecker wires the application service used to refuse
// deleting a business that still has live applications.
func (s *ServiceImpl) SetApplicationChecker(applications ApplicationChecker) {
	s.applications = applications
}

func (s *ServiceImpl) CreateBusiness(ctx context.Context, ownerID uuid.UUID, req *CreateBusinessRequest) (*Response, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	// External owners must register with a company number.
	if owner.Category == users.CategoryNonStudent {
		if req.SSMNumber == "" {
			return nil, ErrSSMNumberRequired
		}
		taken, err := s.repo.SSMNumberExists(ctx, req.SSMNumber, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateSSMNumber
		}
	}

	business := &Business{
		OwnerID:     ownerID,
		Name:        req.Name,
		SSMNumber:   req.SSMNumber,
		Category:    req.Category,
		Description: req.Description,
		Status:      StatusActive,
	}
	if err := s.repo.Create(ctx, business); err != nil {
		return nil, err
	}

	s.log.Info("business created", "business_id", business.ID, "owner_id", ownerID, "name", business.Name)

	resp := business.ToResponse()
	return &resp, nil
}

func (s *ServiceImpl) GetMyBusinesses(ctx context.Context, ownerID uuid.UUID) ([]Response, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	responses := make([]Response, 0, len(list))
	for i := range list {
		responses = append(responses, list[i].ToResponse())
	}
	return responses, nil
}

func (s *ServiceImpl) GetBusiness(ctx context.Context, ownerID, businessID uuid.UUID) (*Response, error) {
	business, err := s.getOwned(ctx, ownerID, businessID)
	if err != nil {
		return nil, err
	}
	resp := business.ToResponse()
	return &resp, nil
}

func (s *ServiceImpl) UpdateBusiness(ctx context.Context, ownerID, businessID uuid.UUID, req *UpdateBusinessRequest) (*Response, error) {
	business, err := s.getOwned(ctx, ownerID, businessID)
	if err != nil {
		return nil, err
	}
	if business.Status == StatusBlocked {
		return nil, ErrBusinessBlocked
	}

	if business.Name != req.Name {
		exists, err := s.repo.NameExists(ctx, req.Name, businessID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateName
		}
	}

	if business.Owner.Category == users.CategoryNonStudent {
		if req.SSMNumber == "" {
			return nil, ErrSSMNumberRequired
		}
		if business.SSMNumber != req.SSMNumber {
			taken, err := s.repo.SSMNumberExists(ctx, req.SSMNumber, businessID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrDuplicateSSMNumber
			}
		}
	}

	business.Name = req.Name
	business.SSMNumber = req.SSMNumber
	business.Category = req.Category
	business.Description = req.Description

	if err := s.repo.Update(ctx, business); err != nil {
		return nil, err
	}

	s.log.Info("business updated", "business_id", business.ID, "owner_id", ownerID)

	resp := business.ToResponse()
	return &resp, nil
}

func (s *ServiceImpl) DeleteBusiness(ctx context.Context, ownerID, businessID uuid.UUID) error {
	business, err := s.getOwned(ctx, ownerID, businessID)
	if err != nil {
		return err
	}

	if s.applications != nil {
		active, err := s.applications.HasActiveApplications(ctx, businessID)
		if err != nil {
			return fmt.Errorf("failed to check applications: %w", err)
		}
		if active {
			return ErrHasActiveApplications
		}
	}

	if err := s.repo.Delete(ctx, businessID); err != nil {
		return err
	}

	s.log.Info("business deleted", "business_id", business.ID, "owner_id", ownerID, "name", business.Name)
	return nil
}

func (s *ServiceImpl) ListBusinesses(ctx context.Context, query ListQuery) ([]ManagementResponse, error) {
	filters := ListFilters{
		Search:        query.Search,
		Category:      query.Category,
		Status:        query.Status,
		OwnerCategory: query.OwnerCategory,
	}
	if query.RegisteredFrom != "" {
		from, err := time.Parse("2006-01-02", query.RegisteredFrom)
		if err == nil {
			filters.RegisteredFrom = &from
		}
	}
	if query.RegisteredTo != "" {
		to, err := time.Parse("2006-01-02", query.RegisteredTo)
		if err == nil {
			end := to.Add(24*time.Hour - time.Nanosecond)
			filters.RegisteredTo = &end
		}
	}

	list, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	responses := make([]ManagementResponse, 0, len(list))
	for i := range list {
		responses = append(responses, list[i].ToManagementResponse())
	}
	return responses, nil
}

func (s *ServiceImpl) GetBusinessDetail(ctx context.Context, businessID uuid.UUID) (*ManagementResponse, error) {
	business, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	resp := business.ToManagementResponse()
	return &resp, nil
}

func (s *ServiceImpl) UpdateBusinessStatus(ctx context.Context, businessID uuid.UUID, req *UpdateStatusRequest) (*ManagementResponse, error) {
	business, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.Status == req.Status {
		return nil, ErrStatusUnchanged
	}

	if err := s.repo.UpdateStatus(ctx, businessID, req.Status); err != nil {
		return nil, err
	}
	business.Status = req.Status

	if req.Status == StatusBlocked {
		s.log.Warn("business blocked", "business_id", businessID, "reason", req.Reason)
	} else {
		s.log.Info("business activated", "business_id", businessID)
	}

	resp := business.ToManagementResponse()
	return &resp, nil
}

func (s *ServiceImpl) GetStatistics(ctx context.Context) (*Statistics, error) {
	total, active, blocked, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &Statistics{Total: total, Active: active, Blocked: blocked}, nil
}

func (s *ServiceImpl) getOwned(ctx context.Context, ownerID, businessID uuid.UUID) (*Business, error) {
	business, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return business, nil
}
