package model

import "time"

// GatePass authorizes physical delivery of an asset out of the store.
// Status progresses CREATED -> DELIVERED -> RECEIVED; RECEIVED is terminal
// and is reached when a GRN number is recorded.
type GatePass struct {
	ID               int64      `json:"id"`
	Number           string     `json:"number"`
	AssetID          int64      `json:"asset_id"`
	Quantity         int        `json:"quantity"`
	Destination      string     `json:"destination"`
	RecipientName    string     `json:"recipient_name"`
	RecipientContact string     `json:"recipient_contact,omitempty"`
	Purpose          string     `json:"purpose,omitempty"`
	Status           string     `json:"status"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty"`
	GRNNumber        string     `json:"grn_number,omitempty"`
	GRNAt            *time.Time `json:"grn_at,omitempty"`
	CreatedBy        *int64     `json:"created_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`

	// Joined fields (not always populated).
	AssetName string `json:"asset_name,omitempty"`
}

// Gate pass statuses.
const (
	GatePassCreated   = "CREATED"
	GatePassDelivered = "DELIVERED"
	GatePassReceived  = "RECEIVED"
)
