package users

import (
	"context"
	"errors"
	"fmt"

	"rently/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrCannotBlockMPP   = errors.New("MPP accounts cannot be blocked")
	ErrBankAccountInUse = errors.New("bank account number already registered")
)

// ApprovalService is the subset of the approval orchestrator the user
// service needs when an account gets blocked (local interface to avoid
// a circular dependency).
type ApprovalService interface {
	AutoRejectPendingForBlockedUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// Service defines MPP user-management business logic
type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context, query ListQuery) ([]ManagementResponse, error)
	ToggleStatus(ctx context.Context, id uuid.UUID, status Status) (*ManagementResponse, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*ManagementResponse, error)
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

// ServiceImpl implements Service; exported so the router can inject the
// approval service after construction.
type ServiceImpl struct {
	repo      Repository
	approvals ApprovalService
	log       *logger.Logger
}

// SetApprovalService wires the approval orchestrator used for the
// blocked-account auto-reject cascade.
func (s *ServiceImpl) SetApprovalService(approvals ApprovalService) {
	s.approvals = approvals
}

func (s *ServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ServiceImpl) ListUsers(ctx context.Context, query ListQuery) ([]ManagementResponse, error) {
	list, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]ManagementResponse, 0, len(list))
	for i := range list {
		responses = append(responses, list[i].ToManagementResponse())
	}
	return responses, nil
}

// ToggleStatus activates or blocks an account. Blocking a business
// owner rejects every PENDING application of that owner's businesses.
func (s *ServiceImpl) ToggleStatus(ctx context.Context, id uuid.UUID, status Status) (*ManagementResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.IsMPP() && status == StatusBlocked {
		return nil, ErrCannotBlockMPP
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	user.Status = status

	if status == StatusBlocked && s.approvals != nil {
		rejected, err := s.approvals.AutoRejectPendingForBlockedUser(ctx, id)
		if err != nil {
			// The block itself succeeded; report the cascade failure but don't undo it
			s.log.ErrorWithContext(ctx, "Failed to auto-reject applications for blocked user", err,
				map[string]interface{}{"user_id": id.String()})
		} else {
			s.log.InfoWithContext(ctx, "Auto-rejected pending applications for blocked user",
				map[string]interface{}{"user_id": id.String(), "rejected_count": rejected})
		}
	}

	resp := user.ToManagementResponse()
	return &resp, nil
}

func (s *ServiceImpl) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*ManagementResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.BankName != nil && *req.BankName != "" {
		user.BankName = *req.BankName
	}
	if req.BankAccountNumber != nil && *req.BankAccountNumber != "" {
		taken, err := s.repo.BankAccountNumberExists(ctx, *req.BankAccountNumber, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrBankAccountInUse
		}
		user.BankAccountNumber = *req.BankAccountNumber
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	resp := user.ToManagementResponse()
	return &resp, nil
}
