package store

import (
	"context"
	"testing"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/model"
)

func TestLicenseCRUD(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	license, err := CreateLicense(ctx, database, &model.SoftwareLicense{
		Name:       "Office Suite",
		Vendor:     "MegaSoft",
		TotalCount: 50,
		UsedCount:  10,
	})
	if err != nil {
		t.Fatalf("CreateLicense: %v", err)
	}
	if license.AvailableCount() != 40 {
		t.Errorf("expected 40 available seats, got %d", license.AvailableCount())
	}

	license.UsedCount = 50
	if err := UpdateLicense(ctx, database, license.ID, license); err != nil {
		t.Fatalf("UpdateLicense: %v", err)
	}
	got, _ := GetLicense(ctx, database, license.ID)
	if got.AvailableCount() != 0 {
		t.Errorf("expected 0 available seats, got %d", got.AvailableCount())
	}

	if err := DeleteLicense(ctx, database, license.ID); err != nil {
		t.Fatalf("DeleteLicense: %v", err)
	}
	list, _ := ListLicenses(ctx, database)
	if len(list) != 0 {
		t.Errorf("expected no active licenses, got %d", len(list))
	}
}

func TestLicenseUsedExceedsTotal(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateLicense(ctx, database, &model.SoftwareLicense{
		Name:       "Antivirus",
		TotalCount: 5,
		UsedCount:  6,
	})
	if err == nil {
		t.Error("expected error for used > total on create")
	}

	license, _ := CreateLicense(ctx, database, &model.SoftwareLicense{
		Name:       "Antivirus",
		TotalCount: 5,
		UsedCount:  5,
	})
	license.UsedCount = 7
	if err := UpdateLicense(ctx, database, license.ID, license); err == nil {
		t.Error("expected error for used > total on update")
	}
}
