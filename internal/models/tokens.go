package models

import "time"

// LoginTokenTTL is the validity window of a passwordless login token.
const LoginTokenTTL = 15 * time.Minute

// AccessTokenTTL is the validity window of an invoice access token.
const AccessTokenTTL = 48 * time.Hour

// LoginToken is a single-use passwordless login credential. It is
// deleted after a successful exchange.
type LoginToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	Token string `gorm:"size:255;uniqueIndex;not null" json:"token"`
}

// Valid reports whether the token is still inside its window.
func (t *LoginToken) Valid(now time.Time) bool {
	return now.Before(t.CreatedAt.Add(LoginTokenTTL))
}

// AuthToken is the opaque bearer session token, one per user,
// get-or-create semantics.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	Key string `gorm:"size:255;uniqueIndex;not null" json:"key"`
}

// InvoiceAccessToken grants a customer read access to one invoice for
// 48 hours. At most one live token is retained per invoice.
type InvoiceAccessToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	InvoiceID uint     `gorm:"index;not null" json:"invoice_id"`
	Invoice   *Invoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"-"`

	Token     string    `gorm:"size:255;uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// Expired reports whether the validity window is over.
func (t *InvoiceAccessToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
