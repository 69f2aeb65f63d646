package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product belongs to one business. Price is a fixed-point decimal;
// invoice line amounts are derived from it, never stored as floats.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"date_added"`
	UpdatedAt time.Time `json:"updated_at"`

	BusinessID uint     `gorm:"index;not null" json:"business_id"`
	Business   Business `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`

	// Category is optional; deleting a category leaves its products in
	// place with a nil reference.
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`

	Name  string          `gorm:"size:100;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	Image string          `gorm:"size:500" json:"image,omitempty"`
}
