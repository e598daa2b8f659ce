// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"stock_portfolio/internal/feature/auth/domain/entity"
	"stock_portfolio/internal/feature/auth/usecase"
)

// accountGorm is the GORM implementation of usecase.AccountRepository.
type accountGorm struct {
	db *gorm.DB
}

// Verify at compile time that accountGorm implements the consumer interfaces.
var (
	_ usecase.AccountRepository = (*accountGorm)(nil)
	_ usecase.LoginRecorder     = (*accountGorm)(nil)
)

// NewAccountGorm creates an account repository backed by db.
func NewAccountGorm(db *gorm.DB) *accountGorm {
	return &accountGorm{db: db}
}

// Create inserts the account after checking username and email inside the
// same transaction. A unique violation raced in between is reported as the
// matching duplicate error.
func (r *accountGorm) Create(ctx context.Context, a *entity.Account) error {
	if a == nil {
		return errors.New("nil account")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkUnique(tx, a); err != nil {
			return err
		}
		if err := tx.Create(a).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if dupErr := checkUnique(tx, a); dupErr != nil {
					return dupErr
				}
				return usecase.ErrDuplicateUsername
			}
			return err
		}
		return nil
	})
}

func checkUnique(tx *gorm.DB, a *entity.Account) error {
	var n int64
	if err := tx.Model(&entity.Account{}).Where("username = ?", a.Username).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return usecase.ErrDuplicateUsername
	}
	if err := tx.Model(&entity.Account{}).Where("email = ?", a.Email).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return usecase.ErrDuplicateEmail
	}
	return nil
}

// FindByUsername returns usecase.ErrAccountNotFound when no row matches.
func (r *accountGorm) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByID returns usecase.ErrAccountNotFound when no row matches.
func (r *accountGorm) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// UpdateLastLogin stamps last_login_at.
func (r *accountGorm) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.Account{}).Where("id = ?", id).Update("last_login_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrAccountNotFound
	}
	return nil
}
