package store

import (
	"context"
	"testing"
	"time"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/model"
)

func TestGetDashboardStats(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now()

	a := newAsset("Laptop", 10)
	a.PurchaseCost = "499.99"
	CreateAsset(ctx, database, a, "", nil)

	low := newAsset("Mouse", 10)
	low.AvailableQty = 2
	CreateAsset(ctx, database, low, "", nil)

	out := newAsset("Cable", 5)
	out.AvailableQty = 0
	CreateAsset(ctx, database, out, "", nil)

	expiry := now.AddDate(0, 0, 10)
	warranty := newAsset("Monitor", 1)
	warranty.WarrantyExpiry = &expiry
	CreateAsset(ctx, database, warranty, "", nil)

	licenseExpiry := now.AddDate(0, 0, 45)
	CreateLicense(ctx, database, &model.SoftwareLicense{
		Name: "Office", TotalCount: 10, ExpiryDate: &licenseExpiry,
	})

	CreateUser(ctx, database, "Alice", "alice@example.com", "hash", model.RoleUser, nil, nil)
	CreateBranch(ctx, database, newBranch("Main", "BR001"))
	CreateDepartment(ctx, database, "IT", "", nil)

	stats, err := GetDashboardStats(ctx, database, now)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}

	if stats.TotalAssets != 4 {
		t.Errorf("expected 4 assets, got %d", stats.TotalAssets)
	}
	if stats.TotalUsers != 1 || stats.TotalBranches != 1 || stats.TotalDepartments != 1 || stats.TotalLicenses != 1 {
		t.Errorf("entity counts wrong: %+v", stats)
	}
	if len(stats.LowStock) != 1 || stats.LowStock[0].Name != "Mouse" {
		t.Errorf("expected Mouse in low stock, got %v", stats.LowStock)
	}
	if len(stats.OutOfStock) != 1 || stats.OutOfStock[0].Name != "Cable" {
		t.Errorf("expected Cable out of stock, got %v", stats.OutOfStock)
	}
	if len(stats.ExpiringWarranty) != 1 {
		t.Errorf("expected 1 expiring warranty, got %d", len(stats.ExpiringWarranty))
	}
	if len(stats.ExpiringLicenses) != 1 {
		t.Errorf("expected 1 expiring license, got %d", len(stats.ExpiringLicenses))
	}
	// 499.99 * 10, other assets have no recorded cost.
	if stats.TotalPurchaseCost != "4999.90" {
		t.Errorf("expected total cost 4999.90, got %s", stats.TotalPurchaseCost)
	}
	if len(stats.RecentMovements) == 0 {
		t.Error("expected registration movements in recent list")
	}
	if stats.AssetsByStatus[model.AssetStatusAvailable] == 0 {
		t.Error("expected AVAILABLE count in status grouping")
	}
}

func TestGetDailyReport(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now()

	asset, _ := CreateAsset(ctx, database, newAsset("Laptop", 10), "", nil)
	CreateGatePass(ctx, database, &model.GatePass{
		AssetID: asset.ID, Destination: "Branch", RecipientName: "IT",
	}, nil)
	CreateIndentRequest(ctx, database, &model.IndentRequest{
		ItemName: "Toner", Quantity: 4,
	}, nil)

	report, err := GetDailyReport(ctx, database, now)
	if err != nil {
		t.Fatalf("GetDailyReport: %v", err)
	}

	if report.Date != now.Format("2006-01-02") {
		t.Errorf("expected date stamp, got %s", report.Date)
	}
	if len(report.Movements) == 0 {
		t.Error("expected movements from last 24h")
	}
	if len(report.PendingGatePass) != 1 {
		t.Errorf("expected 1 pending gate pass, got %d", len(report.PendingGatePass))
	}
	if len(report.PendingIndents) != 1 {
		t.Errorf("expected 1 pending indent, got %d", len(report.PendingIndents))
	}
}
