package services

import (
	"fmt"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationService records business-scoped activity events. This is
// an in-app log: persistence is the only delivery guarantee.
type NotificationService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewNotificationService(db *gorm.DB, log *logrus.Logger) *NotificationService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NotificationService{db: db, log: log}
}

// Emit appends an event record. A failed insert is logged and swallowed
// so the side-channel never aborts the operation that triggered it.
func (s *NotificationService) Emit(businessID uint, typ, title, description string) {
	n := models.Notification{
		BusinessID:  businessID,
		Type:        typ,
		Title:       title,
		Description: description,
	}
	if err := s.db.Create(&n).Error; err != nil {
		s.log.WithFields(logrus.Fields{
			"business_id": businessID,
			"type":        typ,
		}).WithError(err).Warn("failed to record notification")
	}
}

// ListUnseen returns the unseen notifications of a business, newest first.
func (s *NotificationService) ListUnseen(businessID uint) ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.Where("business_id = ? AND seen = ?", businessID, false).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", apperr.ErrInternal)
	}
	return out, nil
}

// MarkAllSeen flips seen on every record of the business in one bulk
// update. There is no per-record granularity.
func (s *NotificationService) MarkAllSeen(businessID uint) error {
	err := s.db.Model(&models.Notification{}).
		Where("business_id = ?", businessID).
		Update("seen", true).Error
	if err != nil {
		return fmt.Errorf("mark notifications seen: %w", apperr.ErrInternal)
	}
	return nil
}
