package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/assetdesk/assetdesk/internal/model"
)

// CreateDepartment creates a new department.
func CreateDepartment(ctx context.Context, db *sql.DB, name, description string, branchID *int64) (*model.Department, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO departments (name, description, branch_id) VALUES (?, ?, ?)`,
		name, description, branchID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating department: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting department id: %w", err)
	}

	return GetDepartment(ctx, db, id)
}

// GetDepartment returns a department by ID.
func GetDepartment(ctx context.Context, db *sql.DB, id int64) (*model.Department, error) {
	d := &model.Department{}
	var description sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, branch_id, created_at, deleted_at
		 FROM departments WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &description, &d.BranchID, &d.CreatedAt, &d.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting department: %w", err)
	}
	d.Description = description.String
	return d, nil
}

// ListDepartments returns all non-deleted departments.
func ListDepartments(ctx context.Context, db *sql.DB) ([]model.Department, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, branch_id, created_at, deleted_at
		 FROM departments WHERE deleted_at IS NULL ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}
	defer rows.Close()

	var departments []model.Department
	for rows.Next() {
		var d model.Department
		var description sql.NullString
		if err := rows.Scan(&d.ID, &d.Name, &description, &d.BranchID, &d.CreatedAt, &d.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning department: %w", err)
		}
		d.Description = description.String
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// UpdateDepartment updates a department's fields.
func UpdateDepartment(ctx context.Context, db *sql.DB, id int64, name, description string, branchID *int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE departments SET name = ?, description = ?, branch_id = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		name, description, branchID, id,
	)
	if err != nil {
		return fmt.Errorf("updating department: %w", err)
	}
	return nil
}

// DeleteDepartment soft-deletes a department. The department must have no
// active users and no ACTIVE assignments; otherwise ErrConflict is returned
// and nothing is mutated.
func DeleteDepartment(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM departments WHERE id = ? AND deleted_at IS NULL`, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking department: %w", err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	var users, assignments int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE department_id = ? AND deleted_at IS NULL`, id,
	).Scan(&users)
	if err != nil {
		return fmt.Errorf("counting department users: %w", err)
	}
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM asset_assignments WHERE department_id = ? AND status = ?`,
		id, model.AssignmentStatusActive,
	).Scan(&assignments)
	if err != nil {
		return fmt.Errorf("counting department assignments: %w", err)
	}

	if users > 0 || assignments > 0 {
		return fmt.Errorf("department has %d users and %d active assignments: %w",
			users, assignments, ErrConflict)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE departments SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting department: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing department delete: %w", err)
	}
	return nil
}
