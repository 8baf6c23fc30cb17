package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/assetdesk/assetdesk/internal/store"
)

// DashboardHandler serves the aggregated dashboard and daily report.
type DashboardHandler struct {
	DB       *sql.DB
	Notifier *Notifier
}

// Stats handles GET /api/dashboard.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetDashboardStats(r.Context(), h.DB, time.Now())
	if err != nil {
		storeError(w, err, "failed to compute dashboard stats")
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

// DailyReport handles GET /api/reports/daily.
func (h *DashboardHandler) DailyReport(w http.ResponseWriter, r *http.Request) {
	report, err := store.GetDailyReport(r.Context(), h.DB, time.Now())
	if err != nil {
		storeError(w, err, "failed to build daily report")
		return
	}
	jsonResponse(w, http.StatusOK, report)
}

// SendDailyReport handles POST /api/reports/daily/send, mailing the report
// to admins on demand.
func (h *DashboardHandler) SendDailyReport(w http.ResponseWriter, r *http.Request) {
	if h.Notifier == nil || h.Notifier.Sender == nil {
		jsonError(w, http.StatusConflict, "mail delivery is not configured")
		return
	}

	if err := h.Notifier.DailyReport(r.Context()); err != nil {
		storeError(w, err, "failed to send daily report")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "daily report sent"})
}

// LowStockAlert handles POST /api/reports/lowstock/send, mailing the current
// low and out of stock list to admins and managers.
func (h *DashboardHandler) LowStockAlert(w http.ResponseWriter, r *http.Request) {
	if h.Notifier == nil || h.Notifier.Sender == nil {
		jsonError(w, http.StatusConflict, "mail delivery is not configured")
		return
	}

	report, err := store.GetDailyReport(r.Context(), h.DB, time.Now())
	if err != nil {
		storeError(w, err, "failed to collect stock levels")
		return
	}

	assets := append(report.OutOfStock, report.LowStock...)
	if len(assets) == 0 {
		jsonResponse(w, http.StatusOK, map[string]string{"message": "no assets below threshold"})
		return
	}

	h.Notifier.LowStock(assets)
	jsonResponse(w, http.StatusAccepted, map[string]string{"message": "low stock alert queued"})
}
