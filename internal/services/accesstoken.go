package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/auth"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"gorm.io/gorm"
)

// AccessTokenService issues and verifies the time-limited tokens that
// let a customer view one invoice without an account.
type AccessTokenService struct {
	db       *gorm.DB
	invoices *InvoiceService
	notifier *NotificationService
}

func NewAccessTokenService(db *gorm.DB, invoices *InvoiceService, notifier *NotificationService) *AccessTokenService {
	return &AccessTokenService{db: db, invoices: invoices, notifier: notifier}
}

// Issue returns a live token for the invoice after checking the
// requester's email against the invoice's customer. An unexpired token
// is returned unchanged; an expired one is replaced.
func (s *AccessTokenService) Issue(invoiceUID, requesterEmail string) (*models.InvoiceAccessToken, error) {
	var inv models.Invoice
	err := s.db.Preload("Customer").Where("uid = ?", invoiceUID).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice %s: %w", invoiceUID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("load invoice: %w", apperr.ErrInternal)
	}
	if inv.Customer == nil || !strings.EqualFold(inv.Customer.Email, requesterEmail) {
		return nil, fmt.Errorf("email does not match invoice customer: %w", apperr.ErrAuthorization)
	}

	now := time.Now()
	var existing models.InvoiceAccessToken
	err = s.db.Where("invoice_id = ?", inv.ID).Order("created_at DESC").First(&existing).Error
	switch {
	case err == nil && !existing.Expired(now):
		return &existing, nil
	case err == nil:
		// Expired tokens are purged before a new one is minted so at
		// most one token row survives per invoice.
		if err := s.db.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceAccessToken{}).Error; err != nil {
			return nil, fmt.Errorf("purge expired tokens: %w", apperr.ErrInternal)
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("load access token: %w", apperr.ErrInternal)
	}

	token := models.InvoiceAccessToken{
		InvoiceID: inv.ID,
		Token:     auth.MintKey(),
		ExpiresAt: now.Add(models.AccessTokenTTL),
	}
	if err := s.db.Create(&token).Error; err != nil {
		return nil, fmt.Errorf("create access token: %w", apperr.ErrInternal)
	}
	return &token, nil
}

// Verify resolves a token to its invoice with fresh derived fields.
// A missing token and an expired one fail with distinct error kinds.
// Verification does not consume the token.
func (s *AccessTokenService) Verify(token string) (*models.Invoice, error) {
	var rec models.InvoiceAccessToken
	err := s.db.Where("token = ?", token).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("access token: %w", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("load access token: %w", apperr.ErrInternal)
	}
	if rec.Expired(time.Now()) {
		return nil, fmt.Errorf("access token: %w", apperr.ErrTokenExpired)
	}
	var inv models.Invoice
	if err := s.db.Preload("Customer").First(&inv, rec.InvoiceID).Error; err != nil {
		return nil, fmt.Errorf("load invoice: %w", apperr.ErrInternal)
	}
	if err := s.invoices.Refresh(&inv); err != nil {
		return nil, err
	}
	s.notifier.Emit(inv.BusinessID, models.NotifyInvoiceViewed, inv.Title, "invoice "+inv.Uid+" viewed via share link")
	return &inv, nil
}
