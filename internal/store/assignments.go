package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/assetdesk/assetdesk/internal/model"
)

const assignmentColumns = `s.id, s.asset_id, s.user_id, s.department_id, s.quantity, s.status,
	s.notes, s.assigned_by, s.assigned_at, s.returned_at,
	a.name AS asset_name, u.name AS user_name`

// GetAssignment returns an assignment by ID.
func GetAssignment(ctx context.Context, db *sql.DB, id int64) (*model.Assignment, error) {
	s := &model.Assignment{}
	var notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+`
		 FROM asset_assignments s
		 JOIN assets a ON a.id = s.asset_id
		 JOIN users u ON u.id = s.user_id
		 WHERE s.id = ?`, id,
	).Scan(&s.ID, &s.AssetID, &s.UserID, &s.DepartmentID, &s.Quantity, &s.Status,
		&notes, &s.AssignedBy, &s.AssignedAt, &s.ReturnedAt,
		&s.AssetName, &s.UserName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting assignment: %w", err)
	}
	s.Notes = notes.String
	return s, nil
}

// AssignmentFilter narrows ListAssignments results. Zero values mean no filtering.
type AssignmentFilter struct {
	AssetID int64
	UserID  int64
	Status  string
}

// ListAssignments returns assignments, newest first.
func ListAssignments(ctx context.Context, db *sql.DB, filter AssignmentFilter) ([]model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + `
	          FROM asset_assignments s
	          JOIN assets a ON a.id = s.asset_id
	          JOIN users u ON u.id = s.user_id
	          WHERE 1=1`
	var args []any

	if filter.AssetID > 0 {
		query += ` AND s.asset_id = ?`
		args = append(args, filter.AssetID)
	}
	if filter.UserID > 0 {
		query += ` AND s.user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.Status != "" {
		query += ` AND s.status = ?`
		args = append(args, filter.Status)
	}

	query += ` ORDER BY s.assigned_at DESC, s.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var s model.Assignment
		var notes sql.NullString
		if err := rows.Scan(&s.ID, &s.AssetID, &s.UserID, &s.DepartmentID, &s.Quantity, &s.Status,
			&notes, &s.AssignedBy, &s.AssignedAt, &s.ReturnedAt,
			&s.AssetName, &s.UserName); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		s.Notes = notes.String
		assignments = append(assignments, s)
	}
	return assignments, rows.Err()
}
