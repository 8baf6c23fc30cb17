package model

import "time"

// SoftwareLicense tracks seat counts for a licensed product.
// used_count never exceeds total_count.
type SoftwareLicense struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Vendor     string     `json:"vendor,omitempty"`
	LicenseKey string     `json:"license_key,omitempty"`
	TotalCount int        `json:"total_count"`
	UsedCount  int        `json:"used_count"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// AvailableCount returns the number of unassigned seats.
func (l *SoftwareLicense) AvailableCount() int {
	return l.TotalCount - l.UsedCount
}
