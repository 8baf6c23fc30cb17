package model

import "time"

// Movement is an append-only record of stock entering or leaving the store.
// Movements are never updated or deleted; they are the system of record for
// stock history.
type Movement struct {
	ID           int64     `json:"id"`
	AssetID      int64     `json:"asset_id"`
	Direction    string    `json:"direction"`
	Quantity     int       `json:"quantity"`
	Supplier     string    `json:"supplier,omitempty"`
	Recipient    string    `json:"recipient,omitempty"`
	FromLocation string    `json:"from_location,omitempty"`
	ToLocation   string    `json:"to_location,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	RecordedBy   *int64    `json:"recorded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Joined fields (not always populated).
	AssetName string `json:"asset_name,omitempty"`
}

// Movement directions.
const (
	MovementInward  = "INWARD"
	MovementOutward = "OUTWARD"
)
