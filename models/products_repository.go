package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilters is a conjunction: every set field must match.
type ProductFilters struct {
	CategoryID   string
	IsPromo      *bool
	IsNew        *bool
	IsBestSeller *bool
}

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// GetFilteredProducts returns one page of the filtered catalog, newest
// first, together with the total size of the filtered set.
func (r *ProductsRepository) GetFilteredProducts(offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.Model(&Product{}).Preload("Category")

	if filters.CategoryID != "" {
		query = query.Where("category_id = ?", filters.CategoryID)
	}
	if filters.IsPromo != nil {
		query = query.Where("is_promo = ?", *filters.IsPromo)
	}
	if filters.IsNew != nil {
		query = query.Where("is_new = ?", *filters.IsNew)
	}
	if filters.IsBestSeller != nil {
		query = query.Where("is_best_seller = ?", *filters.IsBestSeller)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(id string) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

func (r *ProductsRepository) Create(p *Product) error {
	if err := r.db.Create(p).Error; err != nil {
		return err
	}
	// Reload so the response carries the category
	return r.db.Preload("Category").First(p, "id = ?", p.ID).Error
}

func (r *ProductsRepository) Update(p *Product) error {
	// Save all fields, including booleans set back to false and a
	// promo price cleared to NULL.
	if err := r.db.Model(p).Select("*").Omit("id", "created_at").Updates(p).Error; err != nil {
		return err
	}
	return r.db.Preload("Category").First(p, "id = ?", p.ID).Error
}

func (r *ProductsRepository) Delete(id string) error {
	res := r.db.Delete(&Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
