package models

import "time"

// Notification types recorded by the emitter. These are display labels
// for the in-app activity feed, not delivery channels.
const (
	NotifyBusinessCreated       = "business_created"
	NotifyBusinessUpdated       = "business_updated"
	NotifyBusinessDeleted       = "business_deleted"
	NotifyBusinessCreateFailed  = "business_creation_failed"
	NotifyCustomerCreated       = "customer_created"
	NotifyCustomerUpdated       = "customer_updated"
	NotifyCustomerDeleted       = "customer_deleted"
	NotifyProductCreated        = "product_created"
	NotifyProductUpdated        = "product_updated"
	NotifyProductDeleted        = "product_deleted"
	NotifyCategoryCreated       = "category_created"
	NotifyCategoryUpdated       = "category_updated"
	NotifyCategoryDeleted       = "category_deleted"
	NotifyInvoiceCreated        = "invoice_created"
	NotifyInvoiceUpdated        = "invoice_updated"
	NotifyInvoiceDeleted        = "invoice_deleted"
	NotifyInvoiceCreateFailed   = "invoice_creation_failed"
	NotifyInvoicePaid           = "invoice_paid"
	NotifyInvoiceViewed         = "invoice_viewed"
)

// Notification is an append-only, business-scoped activity record.
// Persistence is the only delivery guarantee.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BusinessID uint     `gorm:"index;not null" json:"business_id"`
	Business   Business `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`

	Type        string `gorm:"size:100;not null" json:"type"`
	Title       string `gorm:"size:100" json:"title"`
	Description string `gorm:"size:200" json:"description"`
	Seen        bool   `gorm:"default:false" json:"seen"`
}
