package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrEmailAlreadySubscribed is returned on a duplicate signup.
var ErrEmailAlreadySubscribed = errors.New("email already subscribed")

type SubscribersRepository struct {
	db *gorm.DB
}

func NewSubscribersRepository(db *gorm.DB) *SubscribersRepository {
	return &SubscribersRepository{db: db}
}

// GetAll lists subscribers most recent first.
func (r *SubscribersRepository) GetAll() ([]Subscriber, error) {
	var subscribers []Subscriber
	if err := r.db.Order("subscribed_at DESC").Find(&subscribers).Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}

func (r *SubscribersRepository) Create(s *Subscriber) error {
	var count int64
	if err := r.db.Model(&Subscriber{}).Where("lower(email) = lower(?)", s.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailAlreadySubscribed
	}
	if err := r.db.Create(s).Error; err != nil {
		// Concurrent signup may still hit the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailAlreadySubscribed
		}
		return err
	}
	return nil
}
