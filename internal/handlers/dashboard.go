package handlers

import (
	"net/http"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/httpx"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"github.com/Enodevs/speedvoice-backend/internal/services"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardHandler aggregates the admin overview numbers: per-status
// invoice counters and a monthly revenue series.
type DashboardHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewDashboardHandler(db *gorm.DB, svc *services.InvoiceService) *DashboardHandler {
	return &DashboardHandler{DB: db, Svc: svc}
}

// StatusCounts: GET /api/dashboard/counters/{business_id}. The counts
// come from a fresh sweep, so invoices that just crossed their due date
// show under the right status.
func (h *DashboardHandler) StatusCounts(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "business_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	counts, err := h.Svc.StatusCounts(businessID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int64{
		"paid":    counts[models.InvoiceStatusPaid],
		"pending": counts[models.InvoiceStatusPending],
		"unpaid":  counts[models.InvoiceStatusUnpaid],
		"draft":   counts[models.InvoiceStatusDraft],
	})
}

type monthlyStat struct {
	Month   string          `json:"month"`
	Count   int64           `json:"count"`
	Paid    int64           `json:"paid"`
	Revenue decimal.Decimal `json:"revenue"`
}

// MonthlyStats: GET /api/dashboard/stats/{business_id}. Buckets the
// current year's invoices by month: how many were created, how many of
// those are paid, and the settled revenue. Bucketing happens in Go so
// the query stays portable across the sqlite and postgres dialects.
func (h *DashboardHandler) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "business_id")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	yearStart := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	var invs []models.Invoice
	err = h.DB.Where("business_id = ? AND created_at >= ?", businessID, yearStart).
		Find(&invs).Error
	if err != nil {
		httpx.Error(w, apperr.ErrInternal)
		return
	}

	stats := make([]monthlyStat, 12)
	for m := time.January; m <= time.December; m++ {
		stats[m-1] = monthlyStat{Month: m.String(), Revenue: decimal.Zero}
	}
	for i := range invs {
		m := invs[i].CreatedAt.Month()
		stats[m-1].Count++
		if invs[i].Status == models.InvoiceStatusPaid {
			stats[m-1].Paid++
			stats[m-1].Revenue = stats[m-1].Revenue.Add(invs[i].GrandTotal)
		}
	}
	httpx.JSON(w, http.StatusOK, stats)
}
