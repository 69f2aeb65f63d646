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

// CustomerHandler manages the billable parties of the caller's active
// business.
type CustomerHandler struct {
	DB         *gorm.DB
	Businesses *services.BusinessService
	Notifier   *services.NotificationService
}

func NewCustomerHandler(db *gorm.DB, businesses *services.BusinessService, notifier *services.NotificationService) *CustomerHandler {
	return &CustomerHandler{DB: db, Businesses: businesses, Notifier: notifier}
}

// List: GET /api/dashboard/customers/{business_id}
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "business_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var customers []models.Customer
	if err := h.DB.Where("business_id = ?", businessID).Order("full_name").Find(&customers).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, customers)
}

type customerWriteRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Create: POST /api/dashboard/customer-create (bearer)
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req customerWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.FullName == "" {
		httpx.Error(w, fmt.Errorf("full_name is required: %w", apperr.ErrValidation))
		return
	}
	business, err := h.Businesses.ActiveForOwner(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	customer := models.Customer{
		BusinessID:  business.ID,
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := h.DB.Create(&customer).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	h.Notifier.Emit(business.ID, models.NotifyCustomerCreated, customer.FullName, "customer added")
	httpx.JSON(w, http.StatusCreated, customer)
}

// Get: GET /api/dashboard/customer/{id}
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var customer models.Customer
	if err := h.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("customer %d: %w", id, apperr.ErrNotFound))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

// Update: PUT /api/dashboard/customer/{id} (bearer)
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req customerWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	var customer models.Customer
	if err := h.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("customer %d: %w", id, apperr.ErrNotFound))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	customer.FullName = req.FullName
	customer.Email = req.Email
	customer.PhoneNumber = req.PhoneNumber
	if err := h.DB.Save(&customer).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	h.Notifier.Emit(customer.BusinessID, models.NotifyCustomerUpdated, customer.FullName, "customer updated")
	httpx.JSON(w, http.StatusOK, customer)
}

// Delete: DELETE /api/dashboard/customer/{id} (bearer)
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var customer models.Customer
	if err := h.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("customer %d: %w", id, apperr.ErrNotFound))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	if err := h.DB.Delete(&models.Customer{}, id).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	h.Notifier.Emit(customer.BusinessID, models.NotifyCustomerDeleted, customer.FullName, "customer removed")
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "deleted successfully"})
}
