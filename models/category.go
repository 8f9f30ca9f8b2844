package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products. Name and Slug are both unique; the slug is
// derived from the name and used in storefront URLs.
type Category struct {
	ID        string `gorm:"primaryKey;type:text"`
	Name      string `gorm:"uniqueIndex;size:120;not null"`
	Slug      string `gorm:"uniqueIndex;size:140;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CategoryWithCount is the read-side shape for category listings: the
// category plus how many products currently reference it.
type CategoryWithCount struct {
	Category
	ProductCount int64 `gorm:"column:product_count"`
}
