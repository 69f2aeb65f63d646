package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/auth"
	"github.com/Enodevs/speedvoice-backend/internal/httpx"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"github.com/Enodevs/speedvoice-backend/internal/services"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductHandler manages the catalog of the caller's active business.
type ProductHandler struct {
	DB         *gorm.DB
	Businesses *services.BusinessService
	Notifier   *services.NotificationService
}

func NewProductHandler(db *gorm.DB, businesses *services.BusinessService, notifier *services.NotificationService) *ProductHandler {
	return &ProductHandler{DB: db, Businesses: businesses, Notifier: notifier}
}

// List: GET /api/dashboard/products/{business_id}
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "business_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var products []models.Product
	if err := h.DB.Where("business_id = ?", businessID).Preload("Category").Order("name").Find(&products).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

type productWriteRequest struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CategoryName string          `json:"category"`
	Image        string          `json:"image"`
}

func (h *ProductHandler) resolveCategory(businessID uint, name string) (*uint, error) {
	if name == "" {
		return nil, nil
	}
	var cat models.Category
	err := h.DB.Where("business_id = ? AND name = ?", businessID, name).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %q: %w", name, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("load category: %w", apperr.ErrInternal)
	}
	return &cat.ID, nil
}

// Create: POST /api/dashboard/product-create (bearer)
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req productWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Name == "" {
		httpx.Error(w, fmt.Errorf("name is required: %w", apperr.ErrValidation))
		return
	}
	if req.Price.IsNegative() {
		httpx.Error(w, fmt.Errorf("price must not be negative: %w", apperr.ErrValidation))
		return
	}
	business, err := h.Businesses.ActiveForOwner(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	categoryID, err := h.resolveCategory(business.ID, req.CategoryName)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	product := models.Product{
		BusinessID: business.ID,
		CategoryID: categoryID,
		Name:       req.Name,
		Price:      req.Price,
		Image:      req.Image,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	h.Notifier.Emit(business.ID, models.NotifyProductCreated, product.Name, "product added")
	httpx.JSON(w, http.StatusCreated, product)
}

// Get: GET /api/dashboard/product/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var product models.Product
	if err := h.DB.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("product %d: %w", id, apperr.ErrNotFound))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Update: PUT /api/dashboard/product/{id} (bearer)
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req productWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Price.IsNegative() {
		httpx.Error(w, fmt.Errorf("price must not be negative: %w", apperr.ErrValidation))
		return
	}
	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("product %d: %w", id, apperr.ErrNotFound))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	categoryID, err := h.resolveCategory(product.BusinessID, req.CategoryName)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	product.Name = req.Name
	product.Price = req.Price
	product.Image = req.Image
	if categoryID != nil {
		product.CategoryID = categoryID
	}
	if err := h.DB.Save(&product).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	h.Notifier.Emit(product.BusinessID, models.NotifyProductUpdated, product.Name, "product updated")
	httpx.JSON(w, http.StatusOK, product)
}

// Delete: DELETE /api/dashboard/product/{id} (bearer)
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("product %d: %w", id, apperr.ErrNotFound))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	h.Notifier.Emit(product.BusinessID, models.NotifyProductDeleted, product.Name, "product removed")
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "deleted successfully"})
}
