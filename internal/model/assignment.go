package model

import "time"

// Assignment represents an active allocation of asset quantity to a user.
// While ACTIVE it accounts for the gap between an asset's total and
// available quantity.
type Assignment struct {
	ID           int64      `json:"id"`
	AssetID      int64      `json:"asset_id"`
	UserID       int64      `json:"user_id"`
	DepartmentID *int64     `json:"department_id,omitempty"`
	Quantity     int        `json:"quantity"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	AssignedBy   *int64     `json:"assigned_by,omitempty"`
	AssignedAt   time.Time  `json:"assigned_at"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`

	// Joined fields (not always populated).
	AssetName string `json:"asset_name,omitempty"`
	UserName  string `json:"user_name,omitempty"`
}

// Assignment statuses.
const (
	AssignmentStatusActive   = "ACTIVE"
	AssignmentStatusReturned = "RETURNED"
)
