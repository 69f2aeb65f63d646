package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/models"
)

func TestDashboardCountersSweepStatuses(t *testing.T) {
	f := newFixture(t)
	owner := f.seedOwner(t, "owner@example.com", models.PlanPremium)
	bh := NewBusinessHandler(f.conn, f.businesses)
	rec := httptest.NewRecorder()
	bh.Create(rec, asUser(jsonRequest(t, http.MethodPost, "/", map[string]string{"name": "Acme"}), owner.ID))
	biz := decodeBody[models.Business](t, rec)

	due := time.Now().Add(24 * time.Hour)
	flipping := models.Invoice{OwnerID: owner.ID, BusinessID: biz.ID, Title: "Flips", Status: models.InvoiceStatusPending, DateDue: &due}
	if err := f.conn.Create(&flipping).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	settled := models.Invoice{OwnerID: owner.ID, BusinessID: biz.ID, Title: "Settled", Status: models.InvoiceStatusPending}
	if err := f.conn.Create(&settled).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	if _, err := f.invoices.MarkPaid(&settled); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	dh := NewDashboardHandler(f.conn, f.invoices)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dashboard/counters/{business_id}", dh.StatusCounts)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/dashboard/counters/%d", biz.ID), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("counters status = %d body %s", rec.Code, rec.Body)
	}
	counts := decodeBody[map[string]int64](t, rec)
	if counts["unpaid"] != 1 || counts["paid"] != 1 || counts["pending"] != 0 {
		t.Fatalf("counts = %v, want unpaid=1 paid=1 pending=0", counts)
	}
}

func TestDashboardMonthlyStats(t *testing.T) {
	f := newFixture(t)
	owner := f.seedOwner(t, "owner@example.com", models.PlanPremium)
	bh := NewBusinessHandler(f.conn, f.businesses)
	rec := httptest.NewRecorder()
	bh.Create(rec, asUser(jsonRequest(t, http.MethodPost, "/", map[string]string{"name": "Acme"}), owner.ID))
	biz := decodeBody[models.Business](t, rec)

	open := models.Invoice{OwnerID: owner.ID, BusinessID: biz.ID, Title: "Open", Status: models.InvoiceStatusPending}
	if err := f.conn.Create(&open).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	settled := models.Invoice{OwnerID: owner.ID, BusinessID: biz.ID, Title: "Settled", Status: models.InvoiceStatusPending}
	if err := f.conn.Create(&settled).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	if _, err := f.invoices.MarkPaid(&settled); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	dh := NewDashboardHandler(f.conn, f.invoices)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dashboard/stats/{business_id}", dh.MonthlyStats)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/dashboard/stats/%d", biz.ID), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d body %s", rec.Code, rec.Body)
	}

	type stat struct {
		Month string `json:"month"`
		Count int64  `json:"count"`
		Paid  int64  `json:"paid"`
	}
	stats := decodeBody[[]stat](t, rec)
	if len(stats) != 12 {
		t.Fatalf("months = %d, want 12", len(stats))
	}
	thisMonth := stats[time.Now().Month()-1]
	if thisMonth.Count != 2 || thisMonth.Paid != 1 {
		t.Fatalf("current month = %+v, want count=2 paid=1", thisMonth)
	}
}
