package model

import "time"

// IndentRequest is an internal request to replenish or procure stock.
type IndentRequest struct {
	ID            int64     `json:"id"`
	Number        string    `json:"number"`
	ItemName      string    `json:"item_name"`
	Category      string    `json:"category,omitempty"`
	Quantity      int       `json:"quantity"`
	Justification string    `json:"justification,omitempty"`
	Status        string    `json:"status"`
	RequestedBy   *int64    `json:"requested_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Indent request statuses.
const (
	IndentPending   = "PENDING"
	IndentApproved  = "APPROVED"
	IndentRejected  = "REJECTED"
	IndentFulfilled = "FULFILLED"
)

// ValidIndentStatus reports whether status is a known indent request status.
func ValidIndentStatus(status string) bool {
	switch status {
	case IndentPending, IndentApproved, IndentRejected, IndentFulfilled:
		return true
	}
	return false
}
