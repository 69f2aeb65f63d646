package services

import (
	"fmt"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"gorm.io/gorm"
)

// BasicPlanInvoiceLimit is the invoice quota of the basic tier.
// Premium has no limit.
const BasicPlanInvoiceLimit = 15

// BasicPlanBusinessLimit is the business quota of the basic tier.
const BasicPlanBusinessLimit = 1

// PlanPolicy gates creation operations by the owner's plan tier. Quota
// rejections leave an activity-log trace so the dashboard can explain
// what happened.
type PlanPolicy struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewPlanPolicy(db *gorm.DB, notifier *NotificationService) *PlanPolicy {
	return &PlanPolicy{db: db, notifier: notifier}
}

// AllowBusinessCreate checks the business quota before a create.
// Basic users get one business; premium users are never limited.
func (p *PlanPolicy) AllowBusinessCreate(user *models.User) error {
	switch user.Plan {
	case models.PlanPremium:
		return nil
	case models.PlanBasic:
		var count int64
		if err := p.db.Model(&models.Business{}).Where("owner_id = ?", user.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("count businesses: %w", apperr.ErrInternal)
		}
		if count >= BasicPlanBusinessLimit {
			p.notifyLatestBusiness(user.ID, models.NotifyBusinessCreateFailed,
				"business limit reached",
				fmt.Sprintf("the %s plan allows %d business", user.Plan, BasicPlanBusinessLimit))
			return fmt.Errorf("basic plan allows %d business: %w", BasicPlanBusinessLimit, apperr.ErrPolicyViolation)
		}
		return nil
	default:
		return fmt.Errorf("unknown plan %q: %w", user.Plan, apperr.ErrValidation)
	}
}

// AllowInvoiceCreate checks the invoice quota before a create. The
// count is per owning user, matching how invoices are owned.
func (p *PlanPolicy) AllowInvoiceCreate(user *models.User, business *models.Business) error {
	if user.Plan != models.PlanBasic {
		return nil
	}
	var count int64
	if err := p.db.Model(&models.Invoice{}).Where("owner_id = ?", user.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("count invoices: %w", apperr.ErrInternal)
	}
	if count >= BasicPlanInvoiceLimit {
		if p.notifier != nil {
			p.notifier.Emit(business.ID, models.NotifyInvoiceCreateFailed,
				"invoice limit reached",
				fmt.Sprintf("the %s plan allows %d invoices", user.Plan, BasicPlanInvoiceLimit))
		}
		return fmt.Errorf("basic plan allows %d invoices: %w", BasicPlanInvoiceLimit, apperr.ErrPolicyViolation)
	}
	return nil
}

// notifyLatestBusiness records a failure event against the user's most
// recent business, if any exists to attach it to.
func (p *PlanPolicy) notifyLatestBusiness(ownerID uint, typ, title, description string) {
	if p.notifier == nil {
		return
	}
	var latest models.Business
	err := p.db.Where("owner_id = ?", ownerID).Order("created_at DESC").First(&latest).Error
	if err != nil {
		return
	}
	p.notifier.Emit(latest.ID, typ, title, description)
}
