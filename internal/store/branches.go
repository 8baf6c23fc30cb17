package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/assetdesk/assetdesk/internal/model"
)

const branchColumns = `id, branch_name, branch_code, branch_type, address,
	hardware_engineer, engineer_email, branch_manager, manager_email,
	opened_at, created_at, deleted_at`

func scanBranch(row interface{ Scan(...any) error }) (*model.Branch, error) {
	b := &model.Branch{}
	var address, engineer, engineerEmail, manager, managerEmail sql.NullString
	var openedAt sql.NullTime
	err := row.Scan(&b.ID, &b.BranchName, &b.BranchCode, &b.BranchType, &address,
		&engineer, &engineerEmail, &manager, &managerEmail,
		&openedAt, &b.CreatedAt, &b.DeletedAt)
	if err != nil {
		return nil, err
	}
	b.Address = address.String
	b.HardwareEngineer = engineer.String
	b.EngineerEmail = engineerEmail.String
	b.BranchManager = manager.String
	b.ManagerEmail = managerEmail.String
	if openedAt.Valid {
		t := openedAt.Time
		b.OpenedAt = &t
	}
	return b, nil
}

// CreateBranch creates a new branch. Returns ErrConflict when the branch name
// or code is already taken by an active branch.
func CreateBranch(ctx context.Context, db *sql.DB, b *model.Branch) (*model.Branch, error) {
	var openedAt *time.Time
	if b.OpenedAt != nil {
		openedAt = b.OpenedAt
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO branches (branch_name, branch_code, branch_type, address,
		     hardware_engineer, engineer_email, branch_manager, manager_email, opened_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.BranchName, b.BranchCode, b.BranchType, b.Address,
		b.HardwareEngineer, b.EngineerEmail, b.BranchManager, b.ManagerEmail, openedAt,
	)
	if err != nil {
		return nil, mapConstraint(fmt.Errorf("creating branch: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting branch id: %w", err)
	}

	return GetBranch(ctx, db, id)
}

// GetBranch returns a branch by ID.
func GetBranch(ctx context.Context, db *sql.DB, id int64) (*model.Branch, error) {
	b, err := scanBranch(db.QueryRowContext(ctx,
		`SELECT `+branchColumns+` FROM branches WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting branch: %w", err)
	}
	return b, nil
}

// ListBranches returns all non-deleted branches.
func ListBranches(ctx context.Context, db *sql.DB) ([]model.Branch, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+branchColumns+` FROM branches WHERE deleted_at IS NULL ORDER BY branch_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	defer rows.Close()

	var branches []model.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning branch: %w", err)
		}
		branches = append(branches, *b)
	}
	return branches, rows.Err()
}

// UpdateBranch updates a branch's fields. Returns ErrConflict when the new
// name or code collides with another active branch.
func UpdateBranch(ctx context.Context, db *sql.DB, id int64, b *model.Branch) error {
	_, err := db.ExecContext(ctx,
		`UPDATE branches SET branch_name = ?, branch_code = ?, branch_type = ?, address = ?,
		     hardware_engineer = ?, engineer_email = ?, branch_manager = ?, manager_email = ?, opened_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		b.BranchName, b.BranchCode, b.BranchType, b.Address,
		b.HardwareEngineer, b.EngineerEmail, b.BranchManager, b.ManagerEmail, b.OpenedAt, id,
	)
	if err != nil {
		return mapConstraint(fmt.Errorf("updating branch: %w", err))
	}
	return nil
}

// DeleteBranch soft-deletes a branch.
func DeleteBranch(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE branches SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting branch: %w", err)
	}
	return nil
}
