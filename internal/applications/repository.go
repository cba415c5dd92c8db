package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// CreateBatch persists all applications atomically, the whole
	// submission succeeds or none of it does.
	CreateBatch(ctx context.Context, apps []*FacilityApplication) error

	GetByID(ctx context.Context, id uuid.UUID) (*FacilityApplication, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]FacilityApplication, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]FacilityApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// TotalAppliedQuantity sums PENDING and APPROVED quantities a
	// business holds against one event facility.
	TotalAppliedQuantity(ctx context.Context, businessID, eventFacilityID uuid.UUID) (int, error)
	HasPendingApplication(ctx context.Context, businessID, eventFacilityID uuid.UUID) (bool, error)
	HasLiveApplications(ctx context.Context, businessID uuid.UUID) (bool, error)

	GetPaymentByApplicationID(ctx context.Context, applicationID uuid.UUID) (*Payment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBatch(ctx context.Context, apps []*FacilityApplication) error {
	if len(apps) == 0 {
		return nil
	}
	// A single multi-row insert keeps the batch atomic. The loaded
	// Business and EventFacility structs are response material only and
	// must not be upserted alongside the applications.
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&apps).Error
	if err != nil {
		return fmt.Errorf("failed to create applications: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*FacilityApplication, error) {
	var app FacilityApplication
	err := r.db.WithContext(ctx).
		Preload("Business").
		Preload("Business.Owner").
		Preload("EventFacility").
		Preload("EventFacility.Facility").
		First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]FacilityApplication, error) {
	var list []FacilityApplication
	err := r.db.WithContext(ctx).
		Preload("Business").
		Preload("EventFacility").
		Preload("EventFacility.Facility").
		Joins("JOIN businesses ON businesses.id = facility_applications.business_id").
		Where("businesses.owner_id = ?", ownerID).
		Order("facility_applications.created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return list, nil
}

func (r *repository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]FacilityApplication, error) {
	var list []FacilityApplication
	err := r.db.WithContext(ctx).
		Preload("Business").
		Preload("EventFacility").
		Preload("EventFacility.Facility").
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return list, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).Model(&FacilityApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update application status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *repository) TotalAppliedQuantity(ctx context.Context, businessID, eventFacilityID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&FacilityApplication{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("business_id = ? AND event_facility_id = ? AND status IN ?",
			businessID, eventFacilityID, []Status{StatusPending, StatusApproved}).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum applied quantity: %w", err)
	}
	return int(total), nil
}

func (r *repository) HasPendingApplication(ctx context.Context, businessID, eventFacilityID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FacilityApplication{}).
		Where("business_id = ? AND event_facility_id = ? AND status = ?",
			businessID, eventFacilityID, StatusPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pending application: %w", err)
	}
	return count > 0, nil
}

func (r *repository) HasLiveApplications(ctx context.Context, businessID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FacilityApplication{}).
		Where("business_id = ? AND status IN ?",
			businessID, []Status{StatusPending, StatusApproved}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check live applications: %w", err)
	}
	return count > 0, nil
}

func (r *repository) GetPaymentByApplicationID(ctx context.Context, applicationID uuid.UUID) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).First(&payment, "application_id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}
