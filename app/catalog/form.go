package catalog

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/frechnel/shop-api/app/api"
	"github.com/frechnel/shop-api/models"
)

// productForm is the validated multipart payload for product create and
// update. file is nil when no new image file was sent.
type productForm struct {
	name          string
	description   string
	priceOriginal decimal.Decimal
	pricePromo    *decimal.Decimal
	isPromo       bool
	isNew         bool
	isBestSeller  bool
	inStock       bool
	categoryID    string
	imageURL      string
	file          multipart.File
}

// parseForm validates the multipart body and writes the 400 itself on
// failure. The category must exist; a promo price sent while isPromo is
// false is discarded, never persisted.
func (h *CatalogHandler) parseForm(w http.ResponseWriter, r *http.Request) (*productForm, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid multipart form")
		return nil, false
	}

	form := &productForm{
		name:         strings.TrimSpace(r.FormValue("name")),
		description:  strings.TrimSpace(r.FormValue("description")),
		isPromo:      r.FormValue("isPromo") == "true",
		isNew:        r.FormValue("isNew") == "true",
		isBestSeller: r.FormValue("isBestSeller") == "true",
		inStock:      r.FormValue("inStock") != "false",
		categoryID:   strings.TrimSpace(r.FormValue("categoryId")),
		imageURL:     strings.TrimSpace(r.FormValue("imageUrl")),
	}

	if form.name == "" {
		api.Error(w, http.StatusBadRequest, "name is required")
		return nil, false
	}

	price, err := decimal.NewFromString(r.FormValue("priceOriginal"))
	if err != nil || !price.IsPositive() {
		api.Error(w, http.StatusBadRequest, "priceOriginal must be a positive number")
		return nil, false
	}
	form.priceOriginal = price

	if form.isPromo {
		if promoStr := r.FormValue("pricePromo"); promoStr != "" {
			promo, err := decimal.NewFromString(promoStr)
			if err != nil || !promo.IsPositive() {
				api.Error(w, http.StatusBadRequest, "pricePromo must be a positive number")
				return nil, false
			}
			form.pricePromo = &promo
		}
	}

	if form.categoryID == "" {
		api.Error(w, http.StatusBadRequest, "categoryId is required")
		return nil, false
	}
	if _, err := h.categories.GetByID(form.categoryID); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			api.Error(w, http.StatusBadRequest, "category not found")
			return nil, false
		}
		api.Error(w, http.StatusInternalServerError, "failed to validate category")
		return nil, false
	}

	if file, _, err := r.FormFile("image"); err == nil {
		form.file = file
	}
	return form, true
}
