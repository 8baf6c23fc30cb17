package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/assetdesk/assetdesk/internal/model"
)

// DashboardStats is the read-only overview served to the dashboard.
type DashboardStats struct {
	TotalAssets       int                     `json:"total_assets"`
	TotalUsers        int                     `json:"total_users"`
	TotalDepartments  int                     `json:"total_departments"`
	TotalBranches     int                     `json:"total_branches"`
	TotalLicenses     int                     `json:"total_licenses"`
	AssetsByStatus    map[string]int          `json:"assets_by_status"`
	AssetsByCategory  map[string]int          `json:"assets_by_category"`
	LowStock          []model.Asset           `json:"low_stock"`
	OutOfStock        []model.Asset           `json:"out_of_stock"`
	RecentMovements   []model.Movement        `json:"recent_movements"`
	ExpiringWarranty  []model.Asset           `json:"expiring_warranty"`
	ExpiringLicenses  []model.SoftwareLicense `json:"expiring_licenses"`
	TotalPurchaseCost string                  `json:"total_purchase_cost"`
}

func countRows(ctx context.Context, db *sql.DB, query string, args ...any) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func groupCount(ctx context.Context, db *sql.DB, query string) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

// GetDashboardStats runs the dashboard aggregation queries. Read-only.
func GetDashboardStats(ctx context.Context, db *sql.DB, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	counts := []struct {
		dst   *int
		query string
	}{
		{&stats.TotalAssets, `SELECT COUNT(*) FROM assets WHERE deleted_at IS NULL`},
		{&stats.TotalUsers, `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`},
		{&stats.TotalDepartments, `SELECT COUNT(*) FROM departments WHERE deleted_at IS NULL`},
		{&stats.TotalBranches, `SELECT COUNT(*) FROM branches WHERE deleted_at IS NULL`},
		{&stats.TotalLicenses, `SELECT COUNT(*) FROM software_licenses WHERE deleted_at IS NULL`},
	}
	for _, c := range counts {
		if *c.dst, err = countRows(ctx, db, c.query); err != nil {
			return nil, fmt.Errorf("counting entities: %w", err)
		}
	}

	stats.AssetsByStatus, err = groupCount(ctx, db,
		`SELECT status, COUNT(*) FROM assets WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("grouping assets by status: %w", err)
	}

	stats.AssetsByCategory, err = groupCount(ctx, db,
		`SELECT category, COUNT(*) FROM assets WHERE deleted_at IS NULL GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("grouping assets by category: %w", err)
	}

	assets, err := ListAssets(ctx, db, AssetFilter{})
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		switch {
		case a.OutOfStock():
			stats.OutOfStock = append(stats.OutOfStock, a)
		case a.LowStock():
			stats.LowStock = append(stats.LowStock, a)
		}
	}

	stats.RecentMovements, err = ListMovements(ctx, db, MovementFilter{Since: now.AddDate(0, 0, -7)})
	if err != nil {
		return nil, err
	}

	stats.ExpiringWarranty, err = listAssetsWithWarrantyBefore(ctx, db, now, now.AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}

	stats.ExpiringLicenses, err = listLicensesExpiringBefore(ctx, db, now, now.AddDate(0, 0, 90))
	if err != nil {
		return nil, err
	}

	stats.TotalPurchaseCost, err = sumPurchaseCosts(assets)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// sumPurchaseCosts adds up per-asset cost * quantity using exact decimal
// arithmetic. Assets without a recorded cost are skipped.
func sumPurchaseCosts(assets []model.Asset) (string, error) {
	total := decimal.Zero
	for _, a := range assets {
		if a.PurchaseCost == "" {
			continue
		}
		cost, err := decimal.NewFromString(a.PurchaseCost)
		if err != nil {
			return "", fmt.Errorf("asset %d has malformed purchase cost %q: %w", a.ID, a.PurchaseCost, err)
		}
		total = total.Add(cost.Mul(decimal.NewFromInt(int64(a.Quantity))))
	}
	return total.StringFixed(2), nil
}

func listAssetsWithWarrantyBefore(ctx context.Context, db *sql.DB, from, to time.Time) ([]model.Asset, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets
		 WHERE deleted_at IS NULL AND warranty_expiry IS NOT NULL
		   AND warranty_expiry >= ? AND warranty_expiry <= ?
		 ORDER BY warranty_expiry`, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("listing expiring warranties: %w", err)
	}
	defer rows.Close()

	var assets []model.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

func listLicensesExpiringBefore(ctx context.Context, db *sql.DB, from, to time.Time) ([]model.SoftwareLicense, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, vendor, license_key, total_count, used_count, expiry_date, created_at, deleted_at
		 FROM software_licenses
		 WHERE deleted_at IS NULL AND expiry_date IS NOT NULL
		   AND expiry_date >= ? AND expiry_date <= ?
		 ORDER BY expiry_date`, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("listing expiring licenses: %w", err)
	}
	defer rows.Close()

	var licenses []model.SoftwareLicense
	for rows.Next() {
		var l model.SoftwareLicense
		var vendor, key sql.NullString
		if err := rows.Scan(&l.ID, &l.Name, &vendor, &key, &l.TotalCount, &l.UsedCount, &l.ExpiryDate, &l.CreatedAt, &l.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning license: %w", err)
		}
		l.Vendor = vendor.String
		l.LicenseKey = key.String
		licenses = append(licenses, l)
	}
	return licenses, rows.Err()
}
