package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

// GetAllWithCounts lists every category alphabetically, each annotated
// with its live product count.
func (r *CategoriesRepository) GetAllWithCounts() ([]CategoryWithCount, error) {
	var categories []CategoryWithCount
	err := r.db.Model(&Category{}).
		Select("categories.*, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id").
		Order("categories.name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) GetByID(id string) (*Category, error) {
	var category Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// NameOrSlugTaken reports whether another category already uses the
// given name or slug. excludeID skips the category being renamed.
func (r *CategoriesRepository) NameOrSlugTaken(name, slug, excludeID string) (bool, error) {
	var count int64
	query := r.db.Model(&Category{}).
		Where("lower(name) = lower(?) OR slug = ?", name, slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoriesRepository) Create(c *Category) error {
	return r.db.Create(c).Error
}

func (r *CategoriesRepository) Update(c *Category) error {
	return r.db.Model(c).Select("name", "slug").Updates(c).Error
}

func (r *CategoriesRepository) Delete(id string) error {
	res := r.db.Delete(&Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ProductCount counts the products referencing a category; deletion is
// refused while it is non-zero.
func (r *CategoriesRepository) ProductCount(categoryID string) (int64, error) {
	var count int64
	err := r.db.Model(&Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
