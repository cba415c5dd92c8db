package businesses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBusinessNotFound = errors.New("business not found")

// ListFilters narrows the MPP business listing. All fields are optional.
type ListFilters struct {
	Search         string
	Category       string
	Status         string
	OwnerCategory  string
	RegisteredFrom *time.Time
	RegisteredTo   *time.Time
}

type Repository interface {
	Create(ctx context.Context, business *Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*Business, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Business, error)
	List(ctx context.Context, filters ListFilters) ([]Business, error)
	Update(ctx context.Context, business *Business) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	SSMNumberExists(ctx context.Context, ssmNumber string, excludeID uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context) (total, active, blocked int64, err error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, business *Business) error {
	if err := r.db.WithContext(ctx).Create(business).Error; err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Business, error) {
	var business Business
	err := r.db.WithContext(ctx).Preload("Owner").First(&business, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return &business, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Business, error) {
	var list []Business
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return list, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Business, error) {
	query := r.db.WithContext(ctx).Model(&Business{}).
		Preload("Owner").
		Joins("JOIN users ON users.id = businesses.owner_id")

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where(
			"LOWER(businesses.name) LIKE LOWER(?) OR LOWER(businesses.ssm_number) LIKE LOWER(?) OR LOWER(users.name) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}
	if filters.Category != "" {
		query = query.Where("businesses.category = ?", filters.Category)
	}
	if filters.Status != "" {
		query = query.Where("businesses.status = ?", filters.Status)
	}
	if filters.OwnerCategory != "" {
		query = query.Where("users.category = ?", filters.OwnerCategory)
	}
	if filters.RegisteredFrom != nil {
		query = query.Where("businesses.created_at >= ?", *filters.RegisteredFrom)
	}
	if filters.RegisteredTo != nil {
		query = query.Where("businesses.created_at <= ?", *filters.RegisteredTo)
	}

	var list []Business
	if err := query.Order("businesses.created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, business *Business) error {
	if err := r.db.WithContext(ctx).Save(business).Error; err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).Model(&Business{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update business status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Business{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete business: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

func (r *repository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&Business{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check business name: %w", err)
	}
	return count > 0, nil
}

func (r *repository) SSMNumberExists(ctx context.Context, ssmNumber string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&Business{}).Where("ssm_number = ?", ssmNumber)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ssm number: %w", err)
	}
	return count > 0, nil
}

func (r *repository) CountByStatus(ctx context.Context) (total, active, blocked int64, err error) {
	db := r.db.WithContext(ctx).Model(&Business{})
	if err = db.Count(&total).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count businesses: %w", err)
	}
	if err = r.db.WithContext(ctx).Model(&Business{}).Where("status = ?", StatusActive).Count(&active).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count active businesses: %w", err)
	}
	if err = r.db.WithContext(ctx).Model(&Business{}).Where("status = ?", StatusBlocked).Count(&blocked).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count blocked businesses: %w", err)
	}
	return total, active, blocked, nil
}
