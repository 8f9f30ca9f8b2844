package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog item. PricePromo is only persisted while IsPromo
// is set; ImageURL always points at the hosted image (Cloudinary or an
// explicit external URL).
type Product struct {
	ID            string           `gorm:"primaryKey;type:text"`
	Name          string           `gorm:"size:200;not null"`
	Description   string           `gorm:"type:text"`
	ImageURL      string           `gorm:"not null"`
	PriceOriginal decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	PricePromo    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	IsPromo       bool             `gorm:"not null;default:false"`
	IsNew         bool             `gorm:"not null;default:false"`
	IsBestSeller  bool             `gorm:"not null;default:false"`
	InStock       bool             `gorm:"not null;default:true"`
	CategoryID    string           `gorm:"type:text;index;not null"`
	Category      Category         `gorm:"foreignKey:CategoryID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
