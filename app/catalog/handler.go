package catalog

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/frechnel/shop-api/app/api"
	"github.com/frechnel/shop-api/app/media"
	"github.com/frechnel/shop-api/models"
)

// DefaultPageSize applies when the caller sends no limit. The shop UI
// asks for smaller pages; that is a caller choice.
const DefaultPageSize = 100

const maxUploadBytes = 20 << 20

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl"`
	PriceOriginal float64   `json:"priceOriginal"`
	PricePromo    *float64  `json:"pricePromo"`
	IsPromo       bool      `json:"isPromo"`
	IsNew         bool      `json:"isNew"`
	IsBestSeller  bool      `json:"isBestSeller"`
	InStock       bool      `json:"inStock"`
	CategoryID    string    `json:"categoryId"`
	Category      Category  `json:"category"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type ListResponse struct {
	Data []Product `json:"data"`
	Meta Meta      `json:"meta"`
}

type ProductProvider interface {
	GetFilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}

type CategoryGetter interface {
	GetByID(id string) (*models.Category, error)
}

type CatalogHandler struct {
	repo       ProductProvider
	categories CategoryGetter
	images     media.Store
}

func NewCatalogHandler(r ProductProvider, c CategoryGetter, images media.Store) *CatalogHandler {
	return &CatalogHandler{
		repo:       r,
		categories: c,
		images:     images,
	}
}

func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := DefaultPageSize

	if pStr := r.URL.Query().Get("page"); pStr != "" {
		if p, err := strconv.Atoi(pStr); err == nil && p >= 1 {
			page = p
		}
	}
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil && l >= 1 {
			limit = l
		}
	}

	filters := models.ProductFilters{
		CategoryID:   r.URL.Query().Get("categoryId"),
		IsPromo:      boolFilter(r.URL.Query().Get("isPromo")),
		IsNew:        boolFilter(r.URL.Query().Get("isNew")),
		IsBestSeller: boolFilter(r.URL.Query().Get("isBestSeller")),
	}

	offset := (page - 1) * limit
	res, total, err := h.repo.GetFilteredProducts(offset, limit, filters)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = toProduct(p)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	api.WriteJSON(w, http.StatusOK, ListResponse{
		Data: products,
		Meta: Meta{Total: total, Page: page, Limit: limit, TotalPages: totalPages},
	})
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "product not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}
	api.WriteJSON(w, http.StatusOK, toProduct(*product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	imageURL := form.imageURL
	if form.file != nil {
		defer form.file.Close()
		up, err := h.images.Upload(r.Context(), form.file)
		if err != nil {
			log.Println("image upload error:", err)
			api.Error(w, http.StatusInternalServerError, "image upload failed")
			return
		}
		imageURL = up.URL
	}
	if imageURL == "" {
		api.Error(w, http.StatusBadRequest, "image required (file or URL)")
		return
	}

	product := &models.Product{
		Name:          form.name,
		Description:   form.description,
		ImageURL:      imageURL,
		PriceOriginal: form.priceOriginal,
		PricePromo:    form.pricePromo,
		IsPromo:       form.isPromo,
		IsNew:         form.isNew,
		IsBestSeller:  form.isBestSeller,
		InStock:       form.inStock,
		CategoryID:    form.categoryID,
	}
	if err := h.repo.Create(product); err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	api.WriteJSON(w, http.StatusCreated, toProduct(*product))
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "product not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	imageURL := existing.ImageURL
	if form.file != nil {
		defer form.file.Close()
		up, err := h.images.Upload(r.Context(), form.file)
		if err != nil {
			log.Println("image upload error:", err)
			api.Error(w, http.StatusInternalServerError, "image upload failed")
			return
		}
		// Best effort: the update proceeds even if the old image
		// cannot be removed from the host.
		h.deleteImage(r.Context(), existing.ImageURL)
		imageURL = up.URL
	} else if form.imageURL != "" {
		imageURL = form.imageURL
	}

	existing.Name = form.name
	existing.Description = form.description
	existing.ImageURL = imageURL
	existing.PriceOriginal = form.priceOriginal
	existing.PricePromo = form.pricePromo
	existing.IsPromo = form.isPromo
	existing.IsNew = form.isNew
	existing.IsBestSeller = form.isBestSeller
	existing.InStock = form.inStock
	existing.CategoryID = form.categoryID

	if err := h.repo.Update(existing); err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	api.WriteJSON(w, http.StatusOK, toProduct(*existing))
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "product not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.deleteImage(r.Context(), existing.ImageURL)

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "product not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// deleteImage removes a hosted image, logging rather than failing:
// an orphaned remote image is an accepted outcome.
func (h *CatalogHandler) deleteImage(ctx context.Context, imageURL string) {
	publicID := media.PublicIDFromURL(imageURL)
	if publicID == "" {
		return
	}
	if err := h.images.Delete(ctx, publicID); err != nil {
		log.Printf("delete image %s: %v", publicID, err)
	}
}

func boolFilter(v string) *bool {
	if v == "true" {
		t := true
		return &t
	}
	return nil
}

func toProduct(p models.Product) Product {
	var promo *float64
	if p.PricePromo != nil {
		v := p.PricePromo.InexactFloat64()
		promo = &v
	}
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		PriceOriginal: p.PriceOriginal.InexactFloat64(),
		PricePromo:    promo,
		IsPromo:       p.IsPromo,
		IsNew:         p.IsNew,
		IsBestSeller:  p.IsBestSeller,
		InStock:       p.InStock,
		CategoryID:    p.CategoryID,
		Category: Category{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
