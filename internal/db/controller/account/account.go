// Package account provides the persistence operations for signed-in accounts.
package account

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/internal/db/models"
)

const (
	uidQueryPattern = "uid = ?"
)

var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUIDEmpty is returned when an account has no uid.
	ErrUIDEmpty = errors.New("account uid cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByUID retrieves an account by its firebase uid.
func GetByUID(db *gorm.DB, uid string) (*models.Account, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if uid == "" {
		return nil, ErrUIDEmpty
	}

	var acc models.Account
	result := db.Where(uidQueryPattern, uid).First(&acc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, result.Error
	}

	return &acc, nil
}

// RecordSignIn creates the account on its first sign-in, or refreshes the profile
// fields of an existing one, and counts the sign-in.
func RecordSignIn(db *gorm.DB, in models.Account, at time.Time) (*models.Account, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if in.UID == "" {
		return nil, ErrUIDEmpty
	}

	var acc models.Account

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where(uidQueryPattern, in.UID).First(&acc)

		switch {
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			acc = in
			acc.ID = 0
			acc.SignInCount = 1
			acc.LastSignInAt = at

			return tx.Create(&acc).Error
		case result.Error != nil:
			return result.Error
		}

		acc.Email = in.Email
		acc.Name = in.Name
		acc.Provider = in.Provider
		acc.EmailVerified = in.EmailVerified
		acc.SignInCount++
		acc.LastSignInAt = at

		return tx.Save(&acc).Error
	})
	if err != nil {
		return nil, err
	}

	return &acc, nil
}

// GetAll retrieves all accounts ordered by their last sign-in, newest first.
func GetAll(db *gorm.DB) ([]models.Account, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var accounts []models.Account
	result := db.Order("last_sign_in_at desc").Find(&accounts)
	if result.Error != nil {
		return nil, result.Error
	}

	return accounts, nil
}
