package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/assetdesk/assetdesk/internal/model"
)

// DailyReport is the payload behind the daily report endpoint and the
// daily-report email notification.
type DailyReport struct {
	Date            string                `json:"date"`
	Movements       []model.Movement      `json:"movements"`
	LowStock        []model.Asset         `json:"low_stock"`
	OutOfStock      []model.Asset         `json:"out_of_stock"`
	PendingGatePass []model.GatePass      `json:"pending_gate_passes"`
	PendingIndents  []model.IndentRequest `json:"pending_indents"`
}

// GetDailyReport collects yesterday's movements plus the current stock and
// paperwork backlog. Read-only.
func GetDailyReport(ctx context.Context, db *sql.DB, now time.Time) (*DailyReport, error) {
	report := &DailyReport{Date: now.Format("2006-01-02")}

	movements, err := ListMovements(ctx, db, MovementFilter{Since: now.AddDate(0, 0, -1)})
	if err != nil {
		return nil, err
	}
	report.Movements = movements

	assets, err := ListAssets(ctx, db, AssetFilter{})
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		switch {
		case a.OutOfStock():
			report.OutOfStock = append(report.OutOfStock, a)
		case a.LowStock():
			report.LowStock = append(report.LowStock, a)
		}
	}

	created, err := ListGatePasses(ctx, db, model.GatePassCreated)
	if err != nil {
		return nil, err
	}
	delivered, err := ListGatePasses(ctx, db, model.GatePassDelivered)
	if err != nil {
		return nil, err
	}
	report.PendingGatePass = append(created, delivered...)

	report.PendingIndents, err = ListIndentRequests(ctx, db, model.IndentPending)
	if err != nil {
		return nil, err
	}

	return report, nil
}
