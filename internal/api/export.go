package api

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/assetdesk/assetdesk/internal/store"
)

// ExportHandler streams CSV exports and blank import templates.
type ExportHandler struct {
	DB *sql.DB
}

var assetCSVHeader = []string{
	"asset_tag", "name", "category", "sub_category", "asset_type", "manufacturer",
	"model", "serial_number", "status", "location", "quantity", "available_qty",
	"purchase_cost", "warranty_expiry", "grn_number",
}

var branchCSVHeader = []string{
	"branch_name", "branch_code", "branch_type", "address",
	"hardware_engineer", "engineer_email", "branch_manager", "manager_email", "opened_at",
}

func csvWriter(w http.ResponseWriter, name string) *csv.Writer {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return csv.NewWriter(w)
}

// Assets handles GET /api/export/assets.
func (h *ExportHandler) Assets(w http.ResponseWriter, r *http.Request) {
	assets, err := store.ListAssets(r.Context(), h.DB, store.AssetFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		storeError(w, err, "failed to list assets")
		return
	}

	cw := csvWriter(w, "assets")
	cw.Write(assetCSVHeader)
	for _, a := range assets {
		warranty := ""
		if a.WarrantyExpiry != nil {
			warranty = a.WarrantyExpiry.Format("2006-01-02")
		}
		cw.Write([]string{
			a.AssetTag, a.Name, a.Category, a.SubCategory, a.AssetType, a.Manufacturer,
			a.Model, a.SerialNumber, a.Status, a.Location,
			strconv.Itoa(a.Quantity), strconv.Itoa(a.AvailableQty),
			a.PurchaseCost, warranty, a.GRNNumber,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("writing asset export", "error", err)
	}
}

// Branches handles GET /api/export/branches.
func (h *ExportHandler) Branches(w http.ResponseWriter, r *http.Request) {
	branches, err := store.ListBranches(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list branches")
		return
	}

	cw := csvWriter(w, "branches")
	cw.Write(branchCSVHeader)
	for _, b := range branches {
		opened := ""
		if b.OpenedAt != nil {
			opened = b.OpenedAt.Format("2006-01-02")
		}
		cw.Write([]string{
			b.BranchName, b.BranchCode, b.BranchType, b.Address,
			b.HardwareEngineer, b.EngineerEmail, b.BranchManager, b.ManagerEmail, opened,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("writing branch export", "error", err)
	}
}

// AssetTemplate handles GET /api/templates/assets, serving a blank CSV with
// the asset export column layout and one example row.
func (h *ExportHandler) AssetTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="asset-import-template.csv"`)
	cw := csv.NewWriter(w)
	cw.Write(assetCSVHeader)
	cw.Write([]string{"AT-EXAMPLE1", "ThinkPad T14", "Hardware", "Laptop", "Portable", "Lenovo",
		"T14 Gen 4", "SN-EXAMPLE-001", "AVAILABLE", "Head Office", "1", "1",
		"999.00", "2027-06-30", ""})
	cw.Flush()
}

// BranchTemplate handles GET /api/templates/branches, serving a blank CSV
// with the header row expected by the import endpoint.
func (h *ExportHandler) BranchTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="branch-import-template.csv"`)
	cw := csv.NewWriter(w)
	cw.Write(branchCSVHeader)
	cw.Write([]string{"Main Branch", "BR001", "BRANCH", "12 Example Road",
		"A. Engineer", "engineer@example.com", "B. Manager", "manager@example.com", "2020-01-15"})
	cw.Flush()
}
