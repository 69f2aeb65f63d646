package models

import (
	"time"
)

// Plan tiers gating feature limits.
const (
	PlanBasic   = "basic"
	PlanPremium = "premium"
)

// User represents an account holder. Authentication is passwordless in
// the normal flow (login tokens exchanged for an AuthToken); the bcrypt
// password only backs the registration fallback.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username string `gorm:"size:100" json:"username"`
	FullName string `gorm:"size:100" json:"fullname"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash, never exposed
	Image    string `gorm:"size:500" json:"image,omitempty"`

	// HasAccess and CustomerID come from the external subscription
	// provider; Plan is the tier its webhook assigned.
	HasAccess  bool   `gorm:"default:false" json:"has_access"`
	CustomerID string `gorm:"size:100" json:"customer_id,omitempty"`
	Plan       string `gorm:"size:100;default:'basic'" json:"product_type"`

	// ActiveBusinessID points at the user's current active business.
	// It is switched transactionally on business creation instead of
	// scanning for active=true rows.
	ActiveBusinessID *uint `gorm:"index" json:"active_business_id,omitempty"`
}
