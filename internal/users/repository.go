package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, query ListQuery) ([]User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Update(ctx context.Context, user *User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error

	// BankAccountNumberExists reports whether another account already
	// registered this bank account number.
	BankAccountNumberExists(ctx context.Context, number string, excludeID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]User, error) {
	var result []User

	q := r.db.WithContext(ctx).Model(&User{})

	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	err := q.Order("created_at DESC").Find(&result).Error
	return result, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *repository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("last_login_at", &now).Error
}

func (r *repository) BankAccountNumberExists(ctx context.Context, number string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("bank_account_number = ? AND id <> ?", number, excludeID).
		Count(&count).Error
	return count > 0, err
}
