package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

// ListFilters narrows the event listing.
type ListFilters struct {
	Search string
	Status string
}

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context, filters ListFilters) ([]Event, error)
	Update(ctx context.Context, event *Event) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	FindNeedingStatusRefresh(ctx context.Context, now time.Time) ([]Event, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Event, error) {
	query := r.db.WithContext(ctx).Model(&Event{})

	if filters.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filters.Search+"%")
	}
	if filters.Status != "" && filters.Status != "all" {
		query = query.Where("status = ?", filters.Status)
	}

	// Completed and cancelled events drop off the listing a month
	// after they end.
	cutoff := time.Now().AddDate(0, -1, 0)
	query = query.Where(
		"(status NOT IN ? OR end_date >= ?)",
		[]Status{StatusCompleted, StatusCancelled}, cutoff,
	)

	var list []Event
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, event *Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).Model(&Event{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update event status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *repository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&Event{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check event name: %w", err)
	}
	return count > 0, nil
}

// FindNeedingStatusRefresh returns non-terminal events whose derived
// status no longer matches the stored one.
func (r *repository) FindNeedingStatusRefresh(ctx context.Context, now time.Time) ([]Event, error) {
	var list []Event
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []Status{StatusCompleted, StatusCancelled}).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events for status refresh: %w", err)
	}

	stale := list[:0]
	for i := range list {
		if DeriveStatus(list[i].StartDate, list[i].EndDate, now) != list[i].Status {
			stale = append(stale, list[i])
		}
	}
	return stale, nil
}
