package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/models"
)

func TestCreateBusinessSwitchesActive(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	notifier := NewNotificationService(conn, nil)
	svc := NewBusinessService(conn, NewPlanPolicy(conn, notifier), notifier, time.Minute)
	user := seedUser(t, conn, "owner@example.com", models.PlanPremium)

	first, err := svc.Create(user, BusinessInput{Name: "First"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(user, BusinessInput{Name: "Second"})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	var reloadedFirst models.Business
	if err := conn.First(&reloadedFirst, first.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloadedFirst.Active {
		t.Fatalf("first business still active after switch")
	}
	var owner models.User
	if err := conn.First(&owner, user.ID).Error; err != nil {
		t.Fatalf("reload owner: %v", err)
	}
	if owner.ActiveBusinessID == nil || *owner.ActiveBusinessID != second.ID {
		t.Fatalf("active pointer = %v, want %d", owner.ActiveBusinessID, second.ID)
	}

	active, err := svc.ActiveForOwner(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("active for owner: %v", err)
	}
	if active.ID != second.ID {
		t.Fatalf("active business = %d, want %d", active.ID, second.ID)
	}
}

func TestActiveLookupCacheInvalidatedOnUpdate(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	notifier := NewNotificationService(conn, nil)
	// Long TTL: only explicit invalidation can refresh the entry.
	svc := NewBusinessService(conn, NewPlanPolicy(conn, notifier), notifier, time.Hour)
	user := seedUser(t, conn, "owner@example.com", models.PlanPremium)

	if _, err := svc.Create(user, BusinessInput{Name: "Before"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ActiveForOwner(context.Background(), user.ID); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if _, err := svc.Update(context.Background(), user.ID, BusinessInput{Name: "After"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	active, err := svc.ActiveForOwner(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("active for owner: %v", err)
	}
	if active.Name != "After" {
		t.Fatalf("cached name = %q, want After", active.Name)
	}
}

func TestDeleteBusinessClearsPointer(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	notifier := NewNotificationService(conn, nil)
	svc := NewBusinessService(conn, NewPlanPolicy(conn, notifier), notifier, time.Minute)
	user := seedUser(t, conn, "owner@example.com", models.PlanPremium)

	if _, err := svc.Create(user, BusinessInput{Name: "Doomed"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var owner models.User
	if err := conn.First(&owner, user.ID).Error; err != nil {
		t.Fatalf("reload owner: %v", err)
	}
	if owner.ActiveBusinessID != nil {
		t.Fatalf("active pointer not cleared: %v", *owner.ActiveBusinessID)
	}
	if _, err := svc.ActiveForOwner(context.Background(), user.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCreateBusinessEnforcesQuota(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	notifier := NewNotificationService(conn, nil)
	svc := NewBusinessService(conn, NewPlanPolicy(conn, notifier), notifier, time.Minute)
	user := seedUser(t, conn, "basic@example.com", models.PlanBasic)

	if _, err := svc.Create(user, BusinessInput{Name: "Allowed"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(user, BusinessInput{Name: "Denied"}); !errors.Is(err, apperr.ErrPolicyViolation) {
		t.Fatalf("err = %v, want policy violation", err)
	}
	var count int64
	if err := conn.Model(&models.Business{}).Where("owner_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("business count = %d, want 1", count)
	}
}

func TestCreateBusinessRequiresName(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	notifier := NewNotificationService(conn, nil)
	svc := NewBusinessService(conn, NewPlanPolicy(conn, notifier), notifier, time.Minute)
	user := seedUser(t, conn, "owner@example.com", models.PlanPremium)
	if _, err := svc.Create(user, BusinessInput{}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}
