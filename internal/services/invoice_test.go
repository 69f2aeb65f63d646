package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"github.com/shopspring/decimal"
)

func TestRefreshComputesTotalsExactly(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	svc := NewInvoiceService(conn, NewNotificationService(conn, nil))
	user := seedUser(t, conn, "owner@example.com", models.PlanPremium)
	biz := seedBusiness(t, conn, user, "Acme")
	cust := seedCustomer(t, conn, biz, "Jane Roe", "jane@example.com")
	inv := seedInvoice(t, conn, user, biz, cust, "Website work")
	inv.Discount = decimal.RequireFromString("15.00")
	if err := conn.Save(inv).Error; err != nil {
		t.Fatalf("set discount: %v", err)
	}

	// 3 x 30.00 + 1 x 10.00 = 100.00
	p1 := seedProduct(t, conn, biz, "Design", "30.00")
	p2 := seedProduct(t, conn, biz, "Hosting", "10.00")
	if _, err := svc.AddItem(inv, p1, 3); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := svc.AddItem(inv, p2, 1); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if got := inv.Total.StringFixed(2); got != "100.00" {
		t.Fatalf("total = %s, want 100.00", got)
	}
	if got := inv.GrandTotal.StringFixed(2); got != "85.00" {
		t.Fatalf("grand total = %s, want 85.00", got)
	}
}

func TestRefreshNegativeGrandTotalNotClamped(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	svc := NewInvoiceService(conn, NewNotificationService(conn, nil))
	user := seedUser(t, conn, "owner@example.com", models.PlanPremium)
	biz := seedBusiness(t, conn, user, "Acme")
	inv := seedInvoice(t, conn, user, biz, nil, "Overdiscounted")
	inv.Discount = decimal.RequireFromString("50.00")
	if err := conn.Save(inv).Error; err != nil {
		t.Fatalf("set discount: %v", err)
	}
	p := seedProduct(t, conn, biz, "Sticker", "5.00")
	if _, err := svc.AddItem(inv, p, 2); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if got := inv.GrandTotal.StringFixed(2); got != "-40.00" {
		t.Fatalf("grand total = %s, want -40.00", got)
	}
}

func TestRefreshAfterItemRemoval(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	svc := NewInvoiceService(conn, NewNotificationService(conn, nil))
	user := seedUser(t, conn, "owner@example.com", models.PlanPremium)
	biz := seedBusiness(t, conn, user, "Acme")
	inv := seedInvoice(t, conn, user, biz, nil, "Shrinking")
	p := seedProduct(t, conn, biz, "Widget", "25.00")
	item, err := svc.AddItem(inv, p, 4)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if got := inv.Total.StringFixed(2); got != "100.00" {
		t.Fatalf("total = %s, want 100.00", got)
	}

	if err := svc.RemoveItem(item); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	var reloaded models.Invoice
	if err := conn.First(&reloaded, inv.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Total.StringFixed(2); got != "0.00" {
		t.Fatalf("total after removal = %s, want 0.00", got)
	}
}

func TestDueStatusRule(t *testing.T) {
	now := time.Now()
	future := now.Add(72 * time.Hour)
	past := now.Add(-72 * time.Hour)

	cases := []struct {
		name   string
		status models.InvoiceStatus
		due    *time.Time
		want   models.InvoiceStatus
	}{
		{"paid is terminal", models.InvoiceStatusPaid, &future, models.InvoiceStatusPaid},
		{"future due marks unpaid", models.InvoiceStatusPending, &future, models.InvoiceStatusUnpaid},
		{"past due falls back to pending", models.InvoiceStatusUnpaid, &past, models.InvoiceStatusPending},
		{"no due date falls back to pending", models.InvoiceStatusDraft, nil, models.InvoiceStatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := models.Invoice{Status: tc.status, DateDue: tc.due}
			applyDueStatus(&inv, now)
			if inv.Status != tc.want {
				t.Fatalf("status = %s, want %s", inv.Status, tc.want)
			}
			// Idempotent: a second sweep is a no-op.
			applyDueStatus(&inv, now)
			if inv.Status != tc.want {
				t.Fatalf("second sweep changed status to %s", inv.Status)
			}
		})
	}
}

func TestMarkPaidCreatesOneReceipt(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	svc := NewInvoiceService(conn, NewNotificationService(conn, nil))
	user := seedUser(t, conn, "owner@example.com", models.PlanPremium)
	biz := seedBusiness(t, conn, user, "Acme")
	cust := seedCustomer(t, conn, biz, "Jane Roe", "jane@example.com")
	inv := seedInvoice(t, conn, user, biz, cust, "Settled")

	r1, err := svc.MarkPaid(inv)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if r1.Uid == "" {
		t.Fatalf("receipt uid not assigned")
	}
	r2, err := svc.MarkPaid(inv)
	if err != nil {
		t.Fatalf("second mark paid: %v", err)
	}
	if r1.ID != r2.ID {
		t.Fatalf("expected same receipt, got %d and %d", r1.ID, r2.ID)
	}
	var count int64
	if err := conn.Model(&models.Receipt{}).Where("invoice_id = ?", inv.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 receipt, got %d", count)
	}

	// Paid survives a refresh even with a future due date.
	due := time.Now().Add(48 * time.Hour)
	inv.DateDue = &due
	if err := svc.Refresh(inv); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if inv.Status != models.InvoiceStatusPaid {
		t.Fatalf("status = %s, want paid", inv.Status)
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	svc := NewInvoiceService(conn, NewNotificationService(conn, nil))
	user := seedUser(t, conn, "owner@example.com", models.PlanPremium)
	biz := seedBusiness(t, conn, user, "Acme")
	inv := seedInvoice(t, conn, user, biz, nil, "Bad input")
	p := seedProduct(t, conn, biz, "Widget", "25.00")

	for _, qty := range []int{0, -3} {
		if _, err := svc.AddItem(inv, p, qty); !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("quantity %d: err = %v, want validation error", qty, err)
		}
	}
}

func TestGetByUIDRefreshesStatus(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	svc := NewInvoiceService(conn, NewNotificationService(conn, nil))
	user := seedUser(t, conn, "owner@example.com", models.PlanPremium)
	biz := seedBusiness(t, conn, user, "Acme")
	inv := seedInvoice(t, conn, user, biz, nil, "Lazy sweep")
	due := time.Now().Add(24 * time.Hour)
	inv.DateDue = &due
	if err := conn.Save(inv).Error; err != nil {
		t.Fatalf("set due date: %v", err)
	}

	got, err := svc.GetByUID(inv.Uid)
	if err != nil {
		t.Fatalf("get by uid: %v", err)
	}
	if got.Status != models.InvoiceStatusUnpaid {
		t.Fatalf("status = %s, want unpaid", got.Status)
	}

	if _, err := svc.GetByUID("Inv-doesnotexist"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing uid: err = %v, want not found", err)
	}
}

func TestStatusCountsSweepsBeforeCounting(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	svc := NewInvoiceService(conn, NewNotificationService(conn, nil))
	user := seedUser(t, conn, "owner@example.com", models.PlanPremium)
	biz := seedBusiness(t, conn, user, "Acme")

	due := time.Now().Add(24 * time.Hour)
	overdue := seedInvoice(t, conn, user, biz, nil, "Will flip to unpaid")
	overdue.DateDue = &due
	if err := conn.Save(overdue).Error; err != nil {
		t.Fatalf("save: %v", err)
	}
	paid := seedInvoice(t, conn, user, biz, nil, "Already settled")
	if _, err := svc.MarkPaid(paid); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	seedInvoice(t, conn, user, biz, nil, "Plain pending")

	counts, err := svc.StatusCounts(biz.ID)
	if err != nil {
		t.Fatalf("status counts: %v", err)
	}
	if counts[models.InvoiceStatusUnpaid] != 1 {
		t.Fatalf("unpaid = %d, want 1", counts[models.InvoiceStatusUnpaid])
	}
	if counts[models.InvoiceStatusPaid] != 1 {
		t.Fatalf("paid = %d, want 1", counts[models.InvoiceStatusPaid])
	}
	if counts[models.InvoiceStatusPending] != 1 {
		t.Fatalf("pending = %d, want 1", counts[models.InvoiceStatusPending])
	}
}
