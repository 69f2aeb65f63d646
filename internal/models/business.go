package models

import (
	"time"
)

// Supported invoice currencies.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyNGN = "NGN"
	CurrencyYEN = "YEN"
)

// Business is the tenant boundary: customers, products, categories,
// invoices and notifications all hang off one business. Deleting a
// business cascades to everything it owns.
type Business struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`
	Owner   User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Country     string `gorm:"size:100" json:"country"`
	State       string `gorm:"size:100" json:"state"`
	City        string `gorm:"size:100" json:"city"`
	Currency    string `gorm:"size:100;default:'USD'" json:"currency"`
	Description string `gorm:"size:100" json:"description,omitempty"`
	Image       string `gorm:"size:500" json:"image,omitempty"`
	Active      bool   `gorm:"default:false" json:"active"`
}

// Category groups products within a business. Names are not unique;
// lookups by name take the business scope into account.
type Category struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `gorm:"index;not null" json:"business_id"`
	Business   Business `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`

	Name string `gorm:"size:100;not null" json:"name"`
}

// Customer is a billable party of one business. The email is what an
// invoice access token request is checked against.
type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `gorm:"index;not null" json:"business_id"`
	Business   Business `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`

	FullName    string `gorm:"size:100;not null" json:"full_name"`
	Email       string `gorm:"size:100" json:"email"`
	PhoneNumber string `gorm:"size:100" json:"phone_number"`
}
