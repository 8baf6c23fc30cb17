package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/assetdesk/assetdesk/internal/model"
)

const movementColumns = `m.id, m.asset_id, m.direction, m.quantity, m.supplier, m.recipient,
	m.from_location, m.to_location, m.notes, m.recorded_by, m.created_at, a.name AS asset_name`

func scanMovements(rows *sql.Rows) ([]model.Movement, error) {
	var movements []model.Movement
	for rows.Next() {
		var m model.Movement
		var supplier, recipient, fromLocation, toLocation, notes sql.NullString
		if err := rows.Scan(&m.ID, &m.AssetID, &m.Direction, &m.Quantity, &supplier, &recipient,
			&fromLocation, &toLocation, &notes, &m.RecordedBy, &m.CreatedAt, &m.AssetName); err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}
		m.Supplier = supplier.String
		m.Recipient = recipient.String
		m.FromLocation = fromLocation.String
		m.ToLocation = toLocation.String
		m.Notes = notes.String
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

// MovementFilter narrows ListMovements results. Zero values mean no filtering.
type MovementFilter struct {
	AssetID   int64
	Direction string
	Since     time.Time
}

// ListMovements returns movement records, newest first.
func ListMovements(ctx context.Context, db *sql.DB, filter MovementFilter) ([]model.Movement, error) {
	query := `SELECT ` + movementColumns + `
	          FROM asset_movements m
	          JOIN assets a ON a.id = m.asset_id
	          WHERE 1=1`
	var args []any

	if filter.AssetID > 0 {
		query += ` AND m.asset_id = ?`
		args = append(args, filter.AssetID)
	}
	if filter.Direction != "" {
		query += ` AND m.direction = ?`
		args = append(args, filter.Direction)
	}
	if !filter.Since.IsZero() {
		query += ` AND m.created_at >= ?`
		args = append(args, filter.Since)
	}

	query += ` ORDER BY m.created_at DESC, m.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	return scanMovements(rows)
}

// insertMovement appends a movement record inside an existing transaction.
// Movements are append-only; there is no update or delete path.
func insertMovement(ctx context.Context, tx *sql.Tx, m *model.Movement) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO asset_movements (asset_id, direction, quantity, supplier, recipient,
		     from_location, to_location, notes, recorded_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.AssetID, m.Direction, m.Quantity, m.Supplier, m.Recipient,
		m.FromLocation, m.ToLocation, m.Notes, m.RecordedBy,
	)
	if err != nil {
		return fmt.Errorf("recording movement: %w", err)
	}
	return nil
}
