package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/cache"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"gorm.io/gorm"
)

// BusinessInput carries the writable business fields.
type BusinessInput struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	State    string `json:"state"`
	City     string `json:"city"`
	Currency string `json:"currency"`
}

// BusinessService owns business lifecycle and the cached active-business
// lookup. Active-business switching happens in one transaction: the
// previous active row is deactivated, the new row activated, and the
// owner's pointer updated together.
type BusinessService struct {
	db       *gorm.DB
	policy   *PlanPolicy
	notifier *NotificationService
	active   *cache.TTL[uint, models.Business]
}

func NewBusinessService(db *gorm.DB, policy *PlanPolicy, notifier *NotificationService, cacheTTL time.Duration) *BusinessService {
	s := &BusinessService{db: db, policy: policy, notifier: notifier}
	s.active = cache.New(s.loadActive, cacheTTL)
	return s
}

func (s *BusinessService) loadActive(ctx context.Context, ownerID uint) (models.Business, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Business{}, fmt.Errorf("user %d: %w", ownerID, apperr.ErrNotFound)
		}
		return models.Business{}, fmt.Errorf("load user: %w", apperr.ErrInternal)
	}
	if user.ActiveBusinessID == nil {
		return models.Business{}, fmt.Errorf("no active business for user %d: %w", ownerID, apperr.ErrNotFound)
	}
	var biz models.Business
	if err := s.db.WithContext(ctx).First(&biz, *user.ActiveBusinessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Business{}, fmt.Errorf("business %d: %w", *user.ActiveBusinessID, apperr.ErrNotFound)
		}
		return models.Business{}, fmt.Errorf("load business: %w", apperr.ErrInternal)
	}
	return biz, nil
}

// ActiveForOwner resolves the owner's current active business through
// the TTL cache. Every mutation path invalidates the owner's entry, so
// the TTL only bounds staleness across processes.
func (s *BusinessService) ActiveForOwner(ctx context.Context, ownerID uint) (models.Business, error) {
	return s.active.Get(ctx, ownerID)
}

// Create makes a new active business for the user, subject to the plan
// policy.
func (s *BusinessService) Create(user *models.User, in BusinessInput) (*models.Business, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name is required: %w", apperr.ErrValidation)
	}
	if err := s.policy.AllowBusinessCreate(user); err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = models.CurrencyUSD
	}
	biz := models.Business{
		OwnerID:  user.ID,
		Name:     in.Name,
		Country:  in.Country,
		State:    in.State,
		City:     in.City,
		Currency: currency,
		Active:   true,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if user.ActiveBusinessID != nil {
			if err := tx.Model(&models.Business{}).
				Where("id = ?", *user.ActiveBusinessID).
				Update("active", false).Error; err != nil {
				return fmt.Errorf("deactivate business: %w", apperr.ErrInternal)
			}
		}
		if err := tx.Create(&biz).Error; err != nil {
			return fmt.Errorf("create business: %w", apperr.ErrInternal)
		}
		user.ActiveBusinessID = &biz.ID
		if err := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("active_business_id", biz.ID).Error; err != nil {
			return fmt.Errorf("update active business pointer: %w", apperr.ErrInternal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.active.Invalidate(user.ID)
	s.notifier.Emit(biz.ID, models.NotifyBusinessCreated, biz.Name, "business created")
	return &biz, nil
}

// Update applies the writable fields to the owner's active business.
func (s *BusinessService) Update(ctx context.Context, ownerID uint, in BusinessInput) (*models.Business, error) {
	biz, err := s.ActiveForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	biz.Name = in.Name
	biz.Country = in.Country
	biz.State = in.State
	biz.City = in.City
	if in.Currency != "" {
		biz.Currency = in.Currency
	}
	if err := s.db.Save(&biz).Error; err != nil {
		return nil, fmt.Errorf("save business: %w", apperr.ErrInternal)
	}
	s.active.Invalidate(ownerID)
	s.notifier.Emit(biz.ID, models.NotifyBusinessUpdated, biz.Name, "business updated")
	return &biz, nil
}

// Delete removes the owner's active business and everything it owns,
// clearing the active pointer.
func (s *BusinessService) Delete(ctx context.Context, ownerID uint) error {
	biz, err := s.ActiveForOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ? AND active_business_id = ?", ownerID, biz.ID).
			Update("active_business_id", nil).Error; err != nil {
			return fmt.Errorf("clear active business pointer: %w", apperr.ErrInternal)
		}
		if err := tx.Delete(&models.Business{}, biz.ID).Error; err != nil {
			return fmt.Errorf("delete business: %w", apperr.ErrInternal)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.active.Invalidate(ownerID)
	return nil
}
