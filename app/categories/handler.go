package categories

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/frechnel/shop-api/app/api"
	"github.com/frechnel/shop-api/models"
)

type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ProductCount int64     `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CategoryProvider interface {
	GetAllWithCounts() ([]models.CategoryWithCount, error)
	GetByID(id string) (*models.Category, error)
	NameOrSlugTaken(name, slug, excludeID string) (bool, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) error
	ProductCount(categoryID string) (int64, error)
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllWithCounts()
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = toResponse(c.Category, c.ProductCount)
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}

	slug := Slugify(name)
	taken, err := h.repo.NameOrSlugTaken(name, slug, "")
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	if taken {
		api.Error(w, http.StatusConflict, "category already exists")
		return
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := h.repo.Create(category); err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	api.WriteJSON(w, http.StatusCreated, toResponse(*category, 0))
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	name, ok := decodeName(w, r)
	if !ok {
		return
	}

	category, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			api.Error(w, http.StatusNotFound, "category not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	slug := Slugify(name)
	taken, err := h.repo.NameOrSlugTaken(name, slug, id)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to update category")
		return
	}
	if taken {
		api.Error(w, http.StatusConflict, "a category with this name already exists")
		return
	}

	category.Name = name
	category.Slug = slug
	if err := h.repo.Update(category); err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	count, err := h.repo.ProductCount(id)
	if err != nil {
		count = 0
	}
	api.WriteJSON(w, http.StatusOK, toResponse(*category, count))
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	count, err := h.repo.ProductCount(id)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	if count > 0 {
		api.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"error":        fmt.Sprintf("cannot delete: %d product(s) still reference this category", count),
			"productCount": count,
		})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			api.Error(w, http.StatusNotFound, "category not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid JSON body")
		return "", false
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return "", false
	}
	return name, true
}

func toResponse(c models.Category, count int64) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		ProductCount: count,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
