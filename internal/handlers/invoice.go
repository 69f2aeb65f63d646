package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/auth"
	"github.com/Enodevs/speedvoice-backend/internal/httpx"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"github.com/Enodevs/speedvoice-backend/internal/services"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceHandler exposes invoice CRUD. Every read path refreshes the
// derived fields before serializing, so clients always see totals and
// statuses consistent with the current line items.
type InvoiceHandler struct {
	DB         *gorm.DB
	Svc        *services.InvoiceService
	Businesses *services.BusinessService
	Policy     *services.PlanPolicy
	Notifier   *services.NotificationService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService, businesses *services.BusinessService, policy *services.PlanPolicy, notifier *services.NotificationService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc, Businesses: businesses, Policy: policy, Notifier: notifier}
}

// List: GET /api/dashboard/invoices/{business_id}
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "business_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var business models.Business
	if err := h.DB.First(&business, businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("business %d: %w", businessID, apperr.ErrNotFound))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	var invs []models.Invoice
	if err := h.DB.Where("business_id = ?", businessID).Preload("Customer").Order("created_at DESC").Find(&invs).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	if err := h.Svc.RefreshAll(invs); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invs)
}

type invoiceWriteRequest struct {
	Uid          string          `json:"uid"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	CustomerName string          `json:"customer_name"`
	DateDue      string          `json:"date_due"`
	Discount     decimal.Decimal `json:"discount"`
	IsRecurring  bool            `json:"is_recurring"`
	Status       string          `json:"status"`
}

func (req *invoiceWriteRequest) dueDate() (*time.Time, error) {
	if req.DateDue == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, req.DateDue)
	if err != nil {
		return nil, fmt.Errorf("date_due must be RFC3339: %w", apperr.ErrValidation)
	}
	return &t, nil
}

// Create: POST /api/dashboard/invoices-create (bearer)
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	user, err := loadUser(h.DB, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req invoiceWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Title == "" {
		httpx.Error(w, fmt.Errorf("title is required: %w", apperr.ErrValidation))
		return
	}
	business, err := h.Businesses.ActiveForOwner(r.Context(), user.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	customer, err := resolveCustomerByName(h.DB, business.ID, req.CustomerName)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.Policy.AllowInvoiceCreate(user, &business); err != nil {
		httpx.Error(w, err)
		return
	}
	due, err := req.dueDate()
	if err != nil {
		httpx.Error(w, err)
		return
	}
	inv := models.Invoice{
		OwnerID:     user.ID,
		BusinessID:  business.ID,
		CustomerID:  &customer.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.InvoiceStatusPending,
		Discount:    req.Discount,
		IsRecurring: req.IsRecurring,
		DateDue:     due,
	}
	if err := h.DB.Create(&inv).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	h.Notifier.Emit(business.ID, models.NotifyInvoiceCreated, inv.Title, "invoice "+inv.Uid+" created")
	httpx.JSON(w, http.StatusCreated, map[string]string{"message": inv.Uid})
}

// Get: GET /api/dashboard/invoice/{uid}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Svc.GetByUID(r.PathValue("uid"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Update: PUT /api/dashboard/invoice-update (bearer)
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	user, err := loadUser(h.DB, userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req invoiceWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Uid == "" {
		httpx.Error(w, fmt.Errorf("uid is required: %w", apperr.ErrValidation))
		return
	}
	var inv models.Invoice
	if err := h.DB.Where("uid = ?", req.Uid).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("invoice %s: %w", req.Uid, apperr.ErrNotFound))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	business, err := h.Businesses.ActiveForOwner(r.Context(), user.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	customer, err := resolveCustomerByName(h.DB, business.ID, req.CustomerName)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	due, err := req.dueDate()
	if err != nil {
		httpx.Error(w, err)
		return
	}

	wasPaid := inv.Status == models.InvoiceStatusPaid
	inv.Title = req.Title
	inv.Description = req.Description
	inv.CustomerID = &customer.ID
	inv.DateDue = due
	inv.Discount = req.Discount
	inv.IsRecurring = req.IsRecurring
	if req.Status != "" {
		inv.Status = models.InvoiceStatus(req.Status)
	}
	if err := h.DB.Save(&inv).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	// Settling an invoice creates its receipt; any other change just
	// refreshes the derived fields.
	if !wasPaid && inv.Status == models.InvoiceStatusPaid {
		if _, err := h.Svc.MarkPaid(&inv); err != nil {
			httpx.Error(w, err)
			return
		}
	} else if err := h.Svc.Refresh(&inv); err != nil {
		httpx.Error(w, err)
		return
	}
	h.Notifier.Emit(inv.BusinessID, models.NotifyInvoiceUpdated, inv.Title, "invoice "+inv.Uid+" updated")
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "invoice updated"})
}

// Delete: DELETE /api/dashboard/invoice/delete/{user_id}/{uid} (bearer)
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	business, err := h.Businesses.ActiveForOwner(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	invoiceUID := r.PathValue("uid")
	var inv models.Invoice
	if err := h.DB.Where("uid = ? AND business_id = ?", invoiceUID, business.ID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("invoice %s: %w", invoiceUID, apperr.ErrNotFound))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	if err := h.DB.Select("Items").Delete(&inv).Error; err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	h.Notifier.Emit(business.ID, models.NotifyInvoiceDeleted, inv.Title, "invoice "+inv.Uid+" deleted")
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "deleted successfully"})
}
