package facilities

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrFacilityNotFound   = errors.New("facility not found")
	ErrAssignmentNotFound = errors.New("event facility assignment not found")
)

// CatalogFilters narrows the facility catalog listing.
type CatalogFilters struct {
	Search string
	Type   string
	Size   string
	Status string
}

type Repository interface {
	CreateFacility(ctx context.Context, facility *Facility) error
	GetFacilityByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	ListFacilities(ctx context.Context, filters CatalogFilters) ([]Facility, error)
	UpdateFacility(ctx context.Context, facility *Facility) error
	DeleteFacility(ctx context.Context, id uuid.UUID) error
	FacilityNameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	FacilityAssignedToEvents(ctx context.Context, facilityID uuid.UUID) (bool, error)

	CreateAssignment(ctx context.Context, assignment *EventFacility) error
	GetAssignmentByID(ctx context.Context, id uuid.UUID) (*EventFacility, error)
	ListAssignmentsByEvent(ctx context.Context, eventID uuid.UUID) ([]EventFacility, error)
	UpdateAssignment(ctx context.Context, assignment *EventFacility) error
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
	AssignmentExists(ctx context.Context, eventID, facilityID uuid.UUID) (bool, error)
	AssignmentHasApplications(ctx context.Context, assignmentID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFacility(ctx context.Context, facility *Facility) error {
	if err := r.db.WithContext(ctx).Create(facility).Error; err != nil {
		return fmt.Errorf("failed to create facility: %w", err)
	}
	return nil
}

func (r *repository) GetFacilityByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	var facility Facility
	err := r.db.WithContext(ctx).First(&facility, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to get facility: %w", err)
	}
	return &facility, nil
}

func (r *repository) ListFacilities(ctx context.Context, filters CatalogFilters) ([]Facility, error) {
	query := r.db.WithContext(ctx).Model(&Facility{})

	if filters.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filters.Search+"%")
	}
	if filters.Type != "" && filters.Type != "all" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Size != "" && filters.Size != "all" {
		query = query.Where("size = ?", filters.Size)
	}
	if filters.Status != "" && filters.Status != "all" {
		query = query.Where("status = ?", filters.Status)
	}

	var list []Facility
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	return list, nil
}

func (r *repository) UpdateFacility(ctx context.Context, facility *Facility) error {
	if err := r.db.WithContext(ctx).Save(facility).Error; err != nil {
		return fmt.Errorf("failed to update facility: %w", err)
	}
	return nil
}

func (r *repository) DeleteFacility(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Facility{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete facility: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFacilityNotFound
	}
	return nil
}

func (r *repository) FacilityNameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&Facility{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check facility name: %w", err)
	}
	return count > 0, nil
}

func (r *repository) FacilityAssignedToEvents(ctx context.Context, facilityID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&EventFacility{}).
		Where("facility_id = ?", facilityID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check facility assignments: %w", err)
	}
	return count > 0, nil
}

func (r *repository) CreateAssignment(ctx context.Context, assignment *EventFacility) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create event facility assignment: %w", err)
	}
	return nil
}

func (r *repository) GetAssignmentByID(ctx context.Context, id uuid.UUID) (*EventFacility, error) {
	var assignment EventFacility
	err := r.db.WithContext(ctx).Preload("Facility").First(&assignment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get event facility assignment: %w", err)
	}
	return &assignment, nil
}

func (r *repository) ListAssignmentsByEvent(ctx context.Context, eventID uuid.UUID) ([]EventFacility, error) {
	var list []EventFacility
	err := r.db.WithContext(ctx).
		Preload("Facility").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list event facility assignments: %w", err)
	}
	return list, nil
}

func (r *repository) UpdateAssignment(ctx context.Context, assignment *EventFacility) error {
	if err := r.db.WithContext(ctx).Save(assignment).Error; err != nil {
		return fmt.Errorf("failed to update event facility assignment: %w", err)
	}
	return nil
}

func (r *repository) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&EventFacility{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete event facility assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (r *repository) AssignmentExists(ctx context.Context, eventID, facilityID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&EventFacility{}).
		Where("event_id = ? AND facility_id = ?", eventID, facilityID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check event facility assignment: %w", err)
	}
	return count > 0, nil
}

func (r *repository) AssignmentHasApplications(ctx context.Context, assignmentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("facility_applications").
		Where("event_facility_id = ?", assignmentID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check assignment applications: %w", err)
	}
	return count > 0, nil
}
