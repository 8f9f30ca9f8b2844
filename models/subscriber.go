package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscriber is a newsletter signup. Rows are append-only: created by
// the public form, read for export, never updated.
type Subscriber struct {
	ID           string    `gorm:"primaryKey;type:text"`
	Email        string    `gorm:"uniqueIndex;size:320;not null"`
	SubscribedAt time.Time `gorm:"autoCreateTime"`
}

func (s *Subscriber) TableName() string {
	return "newsletter_subscribers"
}

func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
