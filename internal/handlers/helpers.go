package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"gorm.io/gorm"
)

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid json body: %w", apperr.ErrValidation)
	}
	return nil
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %w", name, apperr.ErrValidation)
	}
	return uint(id), nil
}

func loadUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("load user: %w", apperr.ErrInternal)
	}
	return &user, nil
}

// resolveCustomerByName looks a customer up by full name within a
// business. Names are not unique, so an ambiguous match is a conflict
// rather than an arbitrary pick.
func resolveCustomerByName(db *gorm.DB, businessID uint, name string) (*models.Customer, error) {
	var customers []models.Customer
	err := db.Where("business_id = ? AND full_name = ?", businessID, name).
		Limit(2).Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", apperr.ErrInternal)
	}
	switch len(customers) {
	case 0:
		return nil, fmt.Errorf("customer %q: %w", name, apperr.ErrNotFound)
	case 1:
		return &customers[0], nil
	default:
		return nil, fmt.Errorf("customer name %q is ambiguous: %w", name, apperr.ErrConflict)
	}
}
