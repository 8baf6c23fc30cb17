package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/assetdesk/assetdesk/internal/model"
)

// CreateIndentRequest creates a stock-replenishment request with the next
// IND number for the current year.
func CreateIndentRequest(ctx context.Context, db *sql.DB, ind *model.IndentRequest, requestedBy *int64) (*model.IndentRequest, error) {
	if ind.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	number, err := NextIndentNumber(ctx, tx, time.Now())
	if err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO indent_requests (number, item_name, category, quantity, justification, status, requested_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		number, ind.ItemName, ind.Category, ind.Quantity, ind.Justification, model.IndentPending, requestedBy,
	)
	if err != nil {
		return nil, mapConstraint(fmt.Errorf("creating indent request: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing indent request: %w", err)
	}

	id, _ := result.LastInsertId()
	return GetIndentRequest(ctx, db, id)
}

// GetIndentRequest returns an indent request by ID.
func GetIndentRequest(ctx context.Context, db *sql.DB, id int64) (*model.IndentRequest, error) {
	ind := &model.IndentRequest{}
	var category, justification sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, number, item_name, category, quantity, justification, status, requested_by, created_at, updated_at
		 FROM indent_requests WHERE id = ?`, id,
	).Scan(&ind.ID, &ind.Number, &ind.ItemName, &category, &ind.Quantity, &justification,
		&ind.Status, &ind.RequestedBy, &ind.CreatedAt, &ind.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting indent request: %w", err)
	}
	ind.Category = category.String
	ind.Justification = justification.String
	return ind, nil
}

// ListIndentRequests returns indent requests, optionally filtered by status,
// newest first.
func ListIndentRequests(ctx context.Context, db *sql.DB, status string) ([]model.IndentRequest, error) {
	query := `SELECT id, number, item_name, category, quantity, justification, status, requested_by, created_at, updated_at
	          FROM indent_requests`
	var args []any

	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}

	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing indent requests: %w", err)
	}
	defer rows.Close()

	var indents []model.IndentRequest
	for rows.Next() {
		var ind model.IndentRequest
		var category, justification sql.NullString
		if err := rows.Scan(&ind.ID, &ind.Number, &ind.ItemName, &category, &ind.Quantity, &justification,
			&ind.Status, &ind.RequestedBy, &ind.CreatedAt, &ind.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning indent request: %w", err)
		}
		ind.Category = category.String
		ind.Justification = justification.String
		indents = append(indents, ind)
	}
	return indents, rows.Err()
}

// UpdateIndentStatus sets an indent request's status.
func UpdateIndentStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE indent_requests SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("updating indent status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking indent update: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
