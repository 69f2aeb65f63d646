package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/httpx"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"github.com/Enodevs/speedvoice-backend/internal/services"
	"gorm.io/gorm"
)

// ReceiptHandler exposes the read-only settlement records. Receipts are
// created by the invoice service when an invoice is marked paid.
type ReceiptHandler struct {
	DB         *gorm.DB
	Businesses *services.BusinessService
}

func NewReceiptHandler(db *gorm.DB, businesses *services.BusinessService) *ReceiptHandler {
	return &ReceiptHandler{DB: db, Businesses: businesses}
}

// List: GET /api/dashboard/receipts/{business_id}
func (h *ReceiptHandler) List(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "business_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var receipts []models.Receipt
	err = h.DB.Where("business_id = ?", businessID).
		Preload("Customer").Preload("Invoice").
		Order("created_at DESC").
		Find(&receipts).Error
	if err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, receipts)
}

// Get: GET /api/dashboard/receipt/{user_id}/{uid} — scoped to the
// user's active business so one owner cannot read another's receipts.
func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	receiptUID := r.PathValue("uid")
	var receipt models.Receipt
	err = h.DB.Where("uid = ? AND business_id = ?", receiptUID, business.ID).
		Preload("Customer").Preload("Invoice").
		First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("receipt %s: %w", receiptUID, apperr.ErrNotFound))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, receipt)
}
