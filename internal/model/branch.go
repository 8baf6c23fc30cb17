package model

import "time"

// Branch is an organizational location. Branch names and codes are unique
// among active branches.
type Branch struct {
	ID               int64      `json:"id"`
	BranchName       string     `json:"branch_name"`
	BranchCode       string     `json:"branch_code"`
	BranchType       string     `json:"branch_type"`
	Address          string     `json:"address,omitempty"`
	HardwareEngineer string     `json:"hardware_engineer,omitempty"`
	EngineerEmail    string     `json:"engineer_email,omitempty"`
	BranchManager    string     `json:"branch_manager,omitempty"`
	ManagerEmail     string     `json:"manager_email,omitempty"`
	OpenedAt         *time.Time `json:"opened_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// Branch types.
const (
	BranchTypeHeadOffice     = "HEAD_OFFICE"
	BranchTypeBranch         = "BRANCH"
	BranchTypeRegionalOffice = "REGIONAL_OFFICE"
	BranchTypeSubBranch      = "SUB_BRANCH"
)

// ValidBranchType reports whether t is a known branch type.
func ValidBranchType(t string) bool {
	switch t {
	case BranchTypeHeadOffice, BranchTypeBranch, BranchTypeRegionalOffice, BranchTypeSubBranch:
		return true
	}
	return false
}
