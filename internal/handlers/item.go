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

// ItemHandler manages invoice line items. Every mutation goes through
// the invoice service so the parent totals never drift.
type ItemHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewItemHandler(db *gorm.DB, svc *services.InvoiceService) *ItemHandler {
	return &ItemHandler{DB: db, Svc: svc}
}

func (h *ItemHandler) loadItem(id uint) (*models.InvoiceItem, error) {
	var item models.InvoiceItem
	if err := h.DB.Preload("Product").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice item %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("load invoice item: %w", apperr.ErrInternal)
	}
	return &item, nil
}

func (h *ItemHandler) loadProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("load product: %w", apperr.ErrInternal)
	}
	return &product, nil
}

// List: GET /api/dashboard/invoice-items/{uid}
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Svc.GetByUID(r.PathValue("uid"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv.Items)
}

type itemWriteRequest struct {
	InvoiceUID string `json:"invoice_uid"`
	ProductID  uint   `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

// Create: POST /api/dashboard/invoice-item-create (bearer)
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	var inv models.Invoice
	if err := h.DB.Where("uid = ?", req.InvoiceUID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, fmt.Errorf("invoice %s: %w", req.InvoiceUID, apperr.ErrNotFound))
			return
		}
		httpx.Error(w, apperr.ErrInternal)
		return
	}
	product, err := h.loadProduct(req.ProductID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	item, err := h.Svc.AddItem(&inv, product, req.Quantity)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

// Get: GET /api/dashboard/invoice-item/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	item, err := h.loadItem(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Update: PUT /api/dashboard/invoice-item/{id} (bearer)
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	var req itemWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	item, err := h.loadItem(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	product := &item.Product
	if req.ProductID != 0 && req.ProductID != item.ProductID {
		product, err = h.loadProduct(req.ProductID)
		if err != nil {
			httpx.Error(w, err)
			return
		}
	}
	if err := h.Svc.UpdateItem(item, product, req.Quantity); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Delete: DELETE /api/dashboard/invoice-item/{id} (bearer)
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	item, err := h.loadItem(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.Svc.RemoveItem(item); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "deleted successfully"})
}
