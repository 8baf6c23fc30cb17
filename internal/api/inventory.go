package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/assetdesk/assetdesk/internal/store"
)

// InventoryHandler serves the stock overview and spreadsheet export.
type InventoryHandler struct {
	DB *sql.DB
}

type inventoryLine struct {
	Category     string `json:"category"`
	AssetCount   int    `json:"asset_count"`
	TotalQty     int    `json:"total_qty"`
	AvailableQty int    `json:"available_qty"`
	LowStock     int    `json:"low_stock"`
	OutOfStock   int    `json:"out_of_stock"`
}

// Overview handles GET /api/inventory, summarizing stock per category.
func (h *InventoryHandler) Overview(w http.ResponseWriter, r *http.Request) {
	assets, err := store.ListAssets(r.Context(), h.DB, store.AssetFilter{})
	if err != nil {
		storeError(w, err, "failed to list assets")
		return
	}

	byCategory := map[string]*inventoryLine{}
	var order []string
	for _, a := range assets {
		line, ok := byCategory[a.Category]
		if !ok {
			line = &inventoryLine{Category: a.Category}
			byCategory[a.Category] = line
			order = append(order, a.Category)
		}
		line.AssetCount++
		line.TotalQty += a.Quantity
		line.AvailableQty += a.AvailableQty
		if a.OutOfStock() {
			line.OutOfStock++
		} else if a.LowStock() {
			line.LowStock++
		}
	}

	lines := make([]inventoryLine, 0, len(order))
	for _, category := range order {
		lines = append(lines, *byCategory[category])
	}
	jsonResponse(w, http.StatusOK, lines)
}

var inventoryHeader = []any{
	"Asset Tag", "Name", "Category", "Sub Category", "Manufacturer", "Model",
	"Serial Number", "Status", "Location", "Quantity", "Available",
	"Purchase Cost", "Warranty Expiry", "GRN Number",
}

// ExportXLSX handles GET /api/inventory/export, streaming the full asset
// register as an .xlsx workbook.
func (h *InventoryHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	assets, err := store.ListAssets(r.Context(), h.DB, store.AssetFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		storeError(w, err, "failed to list assets")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventory"
	f.SetSheetName("Sheet1", sheet)

	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := f.SetSheetRow(sheet, cell, &inventoryHeader); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	for i, a := range assets {
		warranty := ""
		if a.WarrantyExpiry != nil {
			warranty = a.WarrantyExpiry.Format("2006-01-02")
		}
		row := []any{
			a.AssetTag, a.Name, a.Category, a.SubCategory, a.Manufacturer, a.Model,
			a.SerialNumber, a.Status, a.Location, a.Quantity, a.AvailableQty,
			a.PurchaseCost, warranty, a.GRNNumber,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to build workbook")
			return
		}
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		slog.Error("writing xlsx export", "error", err)
	}
}
