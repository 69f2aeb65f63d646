package models

import (
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/uid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus represents the payment status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusUnpaid  InvoiceStatus = "unpaid"
	InvoiceStatusDraft   InvoiceStatus = "draft"
)

// Invoice is owned by a user and scoped to one of their businesses.
// Total, GrandTotal and Status are derived fields maintained by
// services.InvoiceService; Uid is the only public handle.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"date_created"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`
	Owner   User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	BusinessID uint     `gorm:"index;not null" json:"business_id"`
	Business   Business `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`

	// Customer is severed (not deleted) when the customer is removed.
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`

	Uid         string        `gorm:"size:17;uniqueIndex;not null" json:"uid"`
	Title       string        `gorm:"size:50;not null" json:"title"`
	Description string        `gorm:"size:200" json:"description,omitempty"`
	Status      InvoiceStatus `gorm:"size:100;default:'pending'" json:"status"`

	Total      decimal.Decimal `gorm:"type:decimal(15,2)" json:"total"`
	Discount   decimal.Decimal `gorm:"type:decimal(15,2)" json:"discount"`
	GrandTotal decimal.Decimal `gorm:"type:decimal(15,2)" json:"grand_total"`

	IsRecurring bool       `gorm:"default:false" json:"is_recurring"`
	DateDue     *time.Time `json:"date_due,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate assigns the external uid.
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.Uid == "" {
		i.Uid = uid.Invoice()
	}
	return nil
}

// BeforeSave keeps the invariant grand_total = total - discount on
// every persist, including saves triggered by read-path recomputation.
// A discount larger than the total yields a negative grand total; the
// engine does not clamp.
func (i *Invoice) BeforeSave(tx *gorm.DB) error {
	i.GrandTotal = i.Total.Sub(i.Discount)
	return nil
}

// InvoiceItem is one line of an invoice, referencing a product of the
// same business. Quantity must be positive; validation happens at the
// service boundary.
type InvoiceItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"date"`

	InvoiceID uint     `gorm:"index;not null" json:"invoice_id"`
	Invoice   *Invoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"-"`

	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`

	Quantity int `gorm:"not null" json:"quantity"`
}

// LineTotal is product price times quantity in fixed-point decimal.
// Product must be preloaded.
func (it *InvoiceItem) LineTotal() decimal.Decimal {
	return it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
