package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceService maintains the derived fields of an invoice: total,
// grand total and payment status. Recomputation happens lazily on every
// read path and explicitly on every line-item mutation, always inside a
// single transaction so the two derived writes cannot interleave.
type InvoiceService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewInvoiceService(db *gorm.DB, notifier *NotificationService) *InvoiceService {
	return &InvoiceService{db: db, notifier: notifier}
}

// ComputeTotal sums quantity x product price over the line items in
// fixed-point decimal. Products must be preloaded.
func (s *InvoiceService) ComputeTotal(items []models.InvoiceItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].LineTotal())
	}
	return total
}

// applyDueStatus is the lazy status rule. Paid is terminal. Otherwise a
// future due date marks the invoice unpaid, and anything else (no due
// date, or already past) falls back to pending. Idempotent.
func applyDueStatus(inv *models.Invoice, now time.Time) {
	if inv.Status == models.InvoiceStatusPaid {
		return
	}
	if inv.DateDue != nil && now.Before(*inv.DateDue) {
		inv.Status = models.InvoiceStatusUnpaid
		return
	}
	inv.Status = models.InvoiceStatusPending
}

// Refresh recomputes total and status from the current line items and
// persists the invoice once. The grand total follows from the model's
// save hook. inv is updated in place, with Items and their products
// populated.
func (s *InvoiceService) Refresh(inv *models.Invoice) error {
	return s.refresh(s.db, inv, time.Now())
}

func (s *InvoiceService) refresh(db *gorm.DB, inv *models.Invoice, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var items []models.InvoiceItem
		if err := tx.Where("invoice_id = ?", inv.ID).Preload("Product").Find(&items).Error; err != nil {
			return fmt.Errorf("load invoice items: %w", apperr.ErrInternal)
		}
		inv.Items = items
		inv.Total = s.ComputeTotal(items)
		applyDueStatus(inv, now)
		if err := tx.Save(inv).Error; err != nil {
			return fmt.Errorf("save invoice: %w", apperr.ErrInternal)
		}
		return nil
	})
}

// RefreshAll refreshes a slice of invoices in place, as the list read
// paths do before serializing.
func (s *InvoiceService) RefreshAll(invs []models.Invoice) error {
	now := time.Now()
	for i := range invs {
		if err := s.refresh(s.db, &invs[i], now); err != nil {
			return err
		}
	}
	return nil
}

// GetByUID loads an invoice by its public uid with derived fields
// brought up to date.
func (s *InvoiceService) GetByUID(invoiceUID string) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.Preload("Customer").Where("uid = ?", invoiceUID).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice %s: %w", invoiceUID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("load invoice: %w", apperr.ErrInternal)
	}
	if err := s.Refresh(&inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// AddItem validates and creates a line item, then refreshes the parent
// invoice inside the same transaction.
func (s *InvoiceService) AddItem(inv *models.Invoice, product *models.Product, quantity int) (*models.InvoiceItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", apperr.ErrValidation)
	}
	item := models.InvoiceItem{InvoiceID: inv.ID, ProductID: product.ID, Quantity: quantity}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("create invoice item: %w", apperr.ErrInternal)
		}
		return s.refresh(tx, inv, time.Now())
	})
	if err != nil {
		return nil, err
	}
	item.Product = *product
	return &item, nil
}

// UpdateItem changes quantity and product of a line item and refreshes
// the parent invoice.
func (s *InvoiceService) UpdateItem(item *models.InvoiceItem, product *models.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive: %w", apperr.ErrValidation)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		item.ProductID = product.ID
		item.Product = *product
		item.Quantity = quantity
		if err := tx.Save(item).Error; err != nil {
			return fmt.Errorf("save invoice item: %w", apperr.ErrInternal)
		}
		var inv models.Invoice
		if err := tx.First(&inv, item.InvoiceID).Error; err != nil {
			return fmt.Errorf("load invoice: %w", apperr.ErrInternal)
		}
		return s.refresh(tx, &inv, time.Now())
	})
}

// RemoveItem deletes a line item and refreshes the parent invoice in
// the same transaction, so the stored total never includes a deleted
// line.
func (s *InvoiceService) RemoveItem(item *models.InvoiceItem) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.InvoiceItem{}, item.ID).Error; err != nil {
			return fmt.Errorf("delete invoice item: %w", apperr.ErrInternal)
		}
		var inv models.Invoice
		if err := tx.First(&inv, item.InvoiceID).Error; err != nil {
			return fmt.Errorf("load invoice: %w", apperr.ErrInternal)
		}
		return s.refresh(tx, &inv, time.Now())
	})
}

// MarkPaid settles the invoice: status becomes paid and the one-to-one
// receipt is created if it does not exist yet.
func (s *InvoiceService) MarkPaid(inv *models.Invoice) (*models.Receipt, error) {
	var receipt models.Receipt
	err := s.db.Transaction(func(tx *gorm.DB) error {
		inv.Status = models.InvoiceStatusPaid
		if err := tx.Save(inv).Error; err != nil {
			return fmt.Errorf("save invoice: %w", apperr.ErrInternal)
		}
		err := tx.Where("invoice_id = ?", inv.ID).First(&receipt).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load receipt: %w", apperr.ErrInternal)
		}
		receipt = models.Receipt{
			OwnerID:    inv.OwnerID,
			BusinessID: inv.BusinessID,
			CustomerID: inv.CustomerID,
			InvoiceID:  inv.ID,
		}
		if err := tx.Create(&receipt).Error; err != nil {
			return fmt.Errorf("create receipt: %w", apperr.ErrInternal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.Emit(inv.BusinessID, models.NotifyInvoicePaid, inv.Title, "invoice "+inv.Uid+" settled")
	}
	return &receipt, nil
}

// StatusCounts runs the lazy status sweep over a business's invoices
// and returns the per-status breakdown the admin dashboard shows.
func (s *InvoiceService) StatusCounts(businessID uint) (map[models.InvoiceStatus]int64, error) {
	var invs []models.Invoice
	if err := s.db.Where("business_id = ?", businessID).Find(&invs).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", apperr.ErrInternal)
	}
	if err := s.RefreshAll(invs); err != nil {
		return nil, err
	}
	counts := map[models.InvoiceStatus]int64{}
	for i := range invs {
		counts[invs[i].Status]++
	}
	return counts, nil
}
