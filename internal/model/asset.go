package model

import "time"

// Asset represents a trackable item with total and available quantity.
type Asset struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	SubCategory    string     `json:"sub_category,omitempty"`
	AssetType      string     `json:"asset_type,omitempty"`
	Manufacturer   string     `json:"manufacturer,omitempty"`
	Model          string     `json:"model,omitempty"`
	SerialNumber   string     `json:"serial_number"`
	AssetTag       string     `json:"asset_tag,omitempty"`
	Quantity       int        `json:"quantity"`
	AvailableQty   int        `json:"available_qty"`
	Status         string     `json:"status"`
	Location       string     `json:"location,omitempty"`
	PurchaseCost   string     `json:"purchase_cost,omitempty"`
	WarrantyExpiry *time.Time `json:"warranty_expiry,omitempty"`
	GRNNumber      string     `json:"grn_number,omitempty"`
	Specification  string     `json:"specification,omitempty"`
	PhotoMime      string     `json:"photo_mime,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// Asset statuses.
const (
	AssetStatusAvailable   = "AVAILABLE"
	AssetStatusAssigned    = "ASSIGNED"
	AssetStatusMaintenance = "MAINTENANCE"
	AssetStatusRetired     = "RETIRED"
)

// ValidAssetStatus reports whether status is one of the known asset statuses.
func ValidAssetStatus(status string) bool {
	switch status {
	case AssetStatusAvailable, AssetStatusAssigned, AssetStatusMaintenance, AssetStatusRetired:
		return true
	}
	return false
}

// OutOfStock reports whether the asset has no available quantity left.
func (a *Asset) OutOfStock() bool {
	return a.AvailableQty == 0
}

// LowStock reports whether available quantity is at or below 20% of total.
func (a *Asset) LowStock() bool {
	if a.Quantity == 0 {
		return false
	}
	return a.AvailableQty*5 <= a.Quantity
}
