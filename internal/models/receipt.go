package models

import (
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/uid"
	"gorm.io/gorm"
)

// Receipt is the one-to-one settlement record of a paid invoice.
type Receipt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"date_created"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`
	Owner   User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	BusinessID uint     `gorm:"index;not null" json:"business_id"`
	Business   Business `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`

	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`

	InvoiceID uint     `gorm:"uniqueIndex;not null" json:"invoice_id"`
	Invoice   *Invoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"invoice,omitempty"`

	Uid string `gorm:"size:15;uniqueIndex;not null" json:"uid"`
}

// BeforeCreate assigns the external uid.
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.Uid == "" {
		r.Uid = uid.Receipt()
	}
	return nil
}
