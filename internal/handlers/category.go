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
	"gorm.io/gorm"
)

// CategoryHandler manages product categories within the caller's active
// business. Lookups go by name, scoped to the business.
type CategoryHandler struct {
	DB         *gorm.DB
	Businesses *services.BusinessService
	Notifier   *services.NotificationService
}

func NewCategoryHandler(db *gorm.DB, businesses *services.BusinessService, notifier *services.NotificationService) *CategoryHandler {
	return &CategoryHandler{DB: db, Businesses: businesses, Notifier: notifier}
}

func (h *CategoryHandler) activeBusiness(r *http.Request) (models.Business, error) {
	userID, _ := auth.UserIDFromContext(r.Context())
	return h.Businesses.ActiveForOwner(r.Context(), userID)
}

func (h *CategoryHandler) byName(businessID uint, name string) (*models.Category, error) {
	var cat models.Category
	err := h.DB.Where("business_id = ? AND name = ?", businessID, name).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %q: %w", name, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("load category: %w", apperr.ErrInternal)
	}
	return &cat, nil
}

// List: GET /api/dashboard/categories (bearer)
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	business, err := h.activeBusiness(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var cats []models.Category
	if err := h.DB.Where("business_id = ?", business.ID).Order("name").Find(&cats).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, cats)
}

// Create: POST /api/dashboard/category-create (bearer)
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Name == "" {
		httpx.Error(w, fmt.Errorf("name is required: %w", apperr.ErrValidation))
		return
	}
	business, err := h.activeBusiness(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	cat := models.Category{BusinessID: business.ID, Name: req.Name}
	if err := h.DB.Create(&cat).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	h.Notifier.Emit(business.ID, models.NotifyCategoryCreated, cat.Name, "category added")
	httpx.JSON(w, http.StatusCreated, cat)
}

// Get: GET /api/dashboard/category/{name} (bearer)
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	business, err := h.activeBusiness(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	cat, err := h.byName(business.ID, r.PathValue("name"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cat)
}

// Update: PUT /api/dashboard/category/{name} (bearer)
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Name == "" {
		httpx.Error(w, fmt.Errorf("name is required: %w", apperr.ErrValidation))
		return
	}
	business, err := h.activeBusiness(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	cat, err := h.byName(business.ID, r.PathValue("name"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	cat.Name = req.Name
	if err := h.DB.Save(cat).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	h.Notifier.Emit(business.ID, models.NotifyCategoryUpdated, cat.Name, "category renamed")
	httpx.JSON(w, http.StatusOK, cat)
}

// Delete: DELETE /api/dashboard/category/{name} (bearer). Products keep
// their rows; the foreign key is severed by the schema.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	business, err := h.activeBusiness(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	cat, err := h.byName(business.ID, r.PathValue("name"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.DB.Delete(&models.Category{}, cat.ID).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	h.Notifier.Emit(business.ID, models.NotifyCategoryDeleted, cat.Name, "category removed")
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "deleted successfully"})
}
