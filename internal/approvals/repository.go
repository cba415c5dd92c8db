package approvals

import (
	"context"
	"errors"
	"fmt"

	"rently/internal/applications"
	"rently/internal/facilities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListFilters narrows the per-event application listing on the MPP
// approval page.
type ListFilters struct {
	Status    string
	Search    string
	SortOrder string
}

// StatusCounts aggregates application counts for one event.
type StatusCounts struct {
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
}

type Repository interface {
	// Transaction runs fn against a transactional copy of the
	// repository. Every write inside a decision happens here so the
	// quota ledger and application row move together.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	GetByID(ctx context.Context, id uuid.UUID) (*applications.FacilityApplication, error)

	// LockEventFacility loads the quota row under FOR UPDATE so
	// concurrent decisions against the same facility serialize.
	LockEventFacility(ctx context.Context, id uuid.UUID) (*facilities.EventFacility, error)

	// DeductQuota conditionally subtracts from available_quantity and
	// reports false when the row no longer holds enough units.
	DeductQuota(ctx context.Context, eventFacilityID uuid.UUID, quantity int) (bool, error)
	RestoreQuota(ctx context.Context, eventFacilityID uuid.UUID, quantity int) error

	UpdateDecision(ctx context.Context, id uuid.UUID, status applications.Status, reason string) error

	CreatePayment(ctx context.Context, payment *applications.Payment) error
	GetPayment(ctx context.Context, applicationID uuid.UUID) (*applications.Payment, error)
	UpdatePaymentStatus(ctx context.Context, applicationID uuid.UUID, status applications.PaymentStatus) error
	DeleteUnpaidPayment(ctx context.Context, applicationID uuid.UUID) error

	ListPendingByEventFacility(ctx context.Context, eventFacilityID, excludeID uuid.UUID) ([]applications.FacilityApplication, error)
	ListPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]applications.FacilityApplication, error)

	ListByEvent(ctx context.Context, eventID uuid.UUID, filters ListFilters) ([]applications.FacilityApplication, error)
	CountsByEvent(ctx context.Context) (map[uuid.UUID]StatusCounts, error)
}

var ErrPaymentNotFound = errors.New("payment not found")

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*applications.FacilityApplication, error) {
	var app applications.FacilityApplication
	err := r.db.WithContext(ctx).
		Preload("Business").
		Preload("Business.Owner").
		Preload("EventFacility").
		Preload("EventFacility.Facility").
		First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, applications.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

func (r *repository) LockEventFacility(ctx context.Context, id uuid.UUID) (*facilities.EventFacility, error) {
	var assignment facilities.EventFacility
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&assignment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, facilities.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to lock event facility: %w", err)
	}
	return &assignment, nil
}

func (r *repository) DeductQuota(ctx context.Context, eventFacilityID uuid.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&facilities.EventFacility{}).
		Where("id = ? AND available_quantity >= ?", eventFacilityID, quantity).
		Update("available_quantity", gorm.Expr("available_quantity - ?", quantity))
	if result.Error != nil {
		return false, fmt.Errorf("failed to deduct quota: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) RestoreQuota(ctx context.Context, eventFacilityID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).Model(&facilities.EventFacility{}).
		Where("id = ?", eventFacilityID).
		Update("available_quantity", gorm.Expr("available_quantity + ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to restore quota: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return facilities.ErrAssignmentNotFound
	}
	return nil
}

func (r *repository) UpdateDecision(ctx context.Context, id uuid.UUID, status applications.Status, reason string) error {
	result := r.db.WithContext(ctx).Model(&applications.FacilityApplication{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"rejection_reason": reason,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update application decision: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return applications.ErrApplicationNotFound
	}
	return nil
}

func (r *repository) CreatePayment(ctx context.Context, payment *applications.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *repository) GetPayment(ctx context.Context, applicationID uuid.UUID) (*applications.Payment, error) {
	var payment applications.Payment
	err := r.db.WithContext(ctx).First(&payment, "application_id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, applicationID uuid.UUID, status applications.PaymentStatus) error {
	result := r.db.WithContext(ctx).Model(&applications.Payment{}).
		Where("application_id = ?", applicationID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// DeleteUnpaidPayment removes the payment bound to an application
// unless it has already been settled. Deleting nothing is fine, the
// application may never have had a payment.
func (r *repository) DeleteUnpaidPayment(ctx context.Context, applicationID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("application_id = ? AND status = ?", applicationID, applications.PaymentUnpaid).
		Delete(&applications.Payment{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

func (r *repository) ListPendingByEventFacility(ctx context.Context, eventFacilityID, excludeID uuid.UUID) ([]applications.FacilityApplication, error) {
	var list []applications.FacilityApplication
	query := r.db.WithContext(ctx).
		Preload("Business").
		Preload("Business.Owner").
		Where("event_facility_id = ? AND status = ?", eventFacilityID, applications.StatusPending)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending applications: %w", err)
	}
	return list, nil
}

func (r *repository) ListPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]applications.FacilityApplication, error) {
	var list []applications.FacilityApplication
	err := r.db.WithContext(ctx).
		Joins("JOIN businesses ON businesses.id = facility_applications.business_id").
		Where("businesses.owner_id = ? AND facility_applications.status = ?", ownerID, applications.StatusPending).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending applications by owner: %w", err)
	}
	return list, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID, filters ListFilters) ([]applications.FacilityApplication, error) {
	query := r.db.WithContext(ctx).
		Preload("Business").
		Preload("Business.Owner").
		Preload("EventFacility").
		Preload("EventFacility.Facility").
		Joins("JOIN event_facilities ON event_facilities.id = facility_applications.event_facility_id").
		Joins("JOIN businesses ON businesses.id = facility_applications.business_id").
		Joins("JOIN users ON users.id = businesses.owner_id").
		Where("event_facilities.event_id = ?", eventID)

	if filters.Status != "" {
		query = query.Where("facility_applications.status = ?", filters.Status)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where(
			"LOWER(businesses.name) LIKE LOWER(?) OR LOWER(users.name) LIKE LOWER(?)",
			pattern, pattern)
	}

	order := "facility_applications.created_at DESC"
	if filters.SortOrder == "asc" {
		order = "facility_applications.created_at ASC"
	}

	var list []applications.FacilityApplication
	if err := query.Order(order).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications by event: %w", err)
	}
	return list, nil
}

func (r *repository) CountsByEvent(ctx context.Context) (map[uuid.UUID]StatusCounts, error) {
	var rows []struct {
		EventID uuid.UUID
		Status  applications.Status
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&applications.FacilityApplication{}).
		Select("event_facilities.event_id AS event_id, facility_applications.status AS status, COUNT(*) AS count").
		Joins("JOIN event_facilities ON event_facilities.id = facility_applications.event_facility_id").
		Group("event_facilities.event_id, facility_applications.status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count applications by event: %w", err)
	}

	counts := make(map[uuid.UUID]StatusCounts, len(rows))
	for _, row := range rows {
		c := counts[row.EventID]
		switch row.Status {
		case applications.StatusPending:
			c.Pending = row.Count
		case applications.StatusApproved:
			c.Approved = row.Count
		case applications.StatusRejected:
			c.Rejected = row.Count
		case applications.StatusCancelled:
			c.Cancelled = row.Count
		}
		counts[row.EventID] = c
	}
	return counts, nil
}
