package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrAdminNotFound is returned when no admin matches the given email.
var ErrAdminNotFound = errors.New("admin not found")

type AdminsRepository struct {
	db *gorm.DB
}

func NewAdminsRepository(db *gorm.DB) *AdminsRepository {
	return &AdminsRepository{db: db}
}

// GetByEmail looks the admin up case-insensitively.
func (r *AdminsRepository) GetByEmail(email string) (*Admin, error) {
	var admin Admin
	err := r.db.Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// EnsureSeed creates the admin row if the email is not present yet.
// Mirrors the one-time seed the shop ships with.
func (r *AdminsRepository) EnsureSeed(email, passwordHash string) error {
	var count int64
	if err := r.db.Model(&Admin{}).Where("lower(email) = lower(?)", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.Create(&Admin{Email: strings.ToLower(email), PasswordHash: passwordHash}).Error
}
