package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/assetdesk/assetdesk/internal/model"
)

const gatePassColumns = `g.id, g.number, g.asset_id, g.quantity, g.destination, g.recipient_name,
	g.recipient_contact, g.purpose, g.status, g.delivered_at, g.grn_number, g.grn_at,
	g.created_by, g.created_at, a.name AS asset_name`

func scanGatePass(row interface{ Scan(...any) error }) (*model.GatePass, error) {
	g := &model.GatePass{}
	var contact, purpose, grnNumber sql.NullString
	err := row.Scan(&g.ID, &g.Number, &g.AssetID, &g.Quantity, &g.Destination, &g.RecipientName,
		&contact, &purpose, &g.Status, &g.DeliveredAt, &grnNumber, &g.GRNAt,
		&g.CreatedBy, &g.CreatedAt, &g.AssetName)
	if err != nil {
		return nil, err
	}
	g.RecipientContact = contact.String
	g.Purpose = purpose.String
	g.GRNNumber = grnNumber.String
	return g, nil
}

// CreateGatePass authorizes delivery of an asset out of the store. In one
// transaction it draws the next GP number, marks the asset ASSIGNED, and
// appends an OUTWARD movement from the store location. Returns ErrNotFound
// when the asset does not exist.
func CreateGatePass(ctx context.Context, db *sql.DB, g *model.GatePass, createdBy *int64) (*model.GatePass, error) {
	if g.Quantity <= 0 {
		g.Quantity = 1
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assets WHERE id = ? AND deleted_at IS NULL`, g.AssetID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking asset: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	number, err := NextGatePassNumber(ctx, tx, time.Now())
	if err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO gate_passes (number, asset_id, quantity, destination, recipient_name,
		     recipient_contact, purpose, status, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		number, g.AssetID, g.Quantity, g.Destination, g.RecipientName,
		g.RecipientContact, g.Purpose, model.GatePassCreated, createdBy,
	)
	if err != nil {
		return nil, mapConstraint(fmt.Errorf("creating gate pass: %w", err))
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE assets SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		model.AssetStatusAssigned, g.AssetID,
	)
	if err != nil {
		return nil, fmt.Errorf("marking asset assigned: %w", err)
	}

	err = insertMovement(ctx, tx, &model.Movement{
		AssetID:      g.AssetID,
		Direction:    model.MovementOutward,
		Quantity:     g.Quantity,
		Recipient:    g.RecipientName,
		FromLocation: "Store/Warehouse",
		ToLocation:   g.Destination,
		Notes:        "gate pass " + number,
		RecordedBy:   createdBy,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing gate pass: %w", err)
	}

	id, _ := result.LastInsertId()
	return GetGatePass(ctx, db, id)
}

// GetGatePass returns a gate pass by ID.
func GetGatePass(ctx context.Context, db *sql.DB, id int64) (*model.GatePass, error) {
	g, err := scanGatePass(db.QueryRowContext(ctx,
		`SELECT `+gatePassColumns+`
		 FROM gate_passes g
		 JOIN assets a ON a.id = g.asset_id
		 WHERE g.id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting gate pass: %w", err)
	}
	return g, nil
}

// ListGatePasses returns gate passes, optionally filtered by status, newest first.
func ListGatePasses(ctx context.Context, db *sql.DB, status string) ([]model.GatePass, error) {
	query := `SELECT ` + gatePassColumns + `
	          FROM gate_passes g
	          JOIN assets a ON a.id = g.asset_id`
	var args []any

	if status != "" {
		query += ` WHERE g.status = ?`
		args = append(args, status)
	}

	query += ` ORDER BY g.created_at DESC, g.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing gate passes: %w", err)
	}
	defer rows.Close()

	var passes []model.GatePass
	for rows.Next() {
		g, err := scanGatePass(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning gate pass: %w", err)
		}
		passes = append(passes, *g)
	}
	return passes, rows.Err()
}

// MarkGatePassDelivered moves a gate pass from CREATED to DELIVERED and
// stamps the delivery time. Any other starting state returns
// ErrInvalidTransition.
func MarkGatePassDelivered(ctx context.Context, db *sql.DB, id int64) error {
	return transitionGatePass(ctx, db, id, model.GatePassCreated, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE gate_passes SET status = ?, delivered_at = CURRENT_TIMESTAMP WHERE id = ?`,
			model.GatePassDelivered, id,
		)
		if err != nil {
			return fmt.Errorf("marking gate pass delivered: %w", err)
		}
		return nil
	})
}

// RecordGatePassGRN moves a gate pass from DELIVERED to RECEIVED, stamping
// the GRN number and date on the pass and writing the GRN number onto the
// asset. RECEIVED is terminal.
func RecordGatePassGRN(ctx context.Context, db *sql.DB, id int64, grnNumber string) error {
	if grnNumber == "" {
		return fmt.Errorf("grn number required")
	}

	return transitionGatePass(ctx, db, id, model.GatePassDelivered, func(ctx context.Context, tx *sql.Tx) error {
		var assetID int64
		err := tx.QueryRowContext(ctx,
			`SELECT asset_id FROM gate_passes WHERE id = ?`, id,
		).Scan(&assetID)
		if err != nil {
			return fmt.Errorf("getting gate pass asset: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE gate_passes SET status = ?, grn_number = ?, grn_at = CURRENT_TIMESTAMP WHERE id = ?`,
			model.GatePassReceived, grnNumber, id,
		)
		if err != nil {
			return fmt.Errorf("recording grn: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE assets SET grn_number = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			grnNumber, model.AssetStatusAssigned, assetID,
		)
		if err != nil {
			return fmt.Errorf("writing grn onto asset: %w", err)
		}
		return nil
	})
}

// transitionGatePass verifies the pass is in the expected state before
// applying a transition, all inside one transaction. Status can only move
// through dedicated transitions; the generic update path never touches it.
func transitionGatePass(ctx context.Context, db *sql.DB, id int64, expected string, apply func(context.Context, *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM gate_passes WHERE id = ?`, id,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("getting gate pass status: %w", err)
	}
	if current != expected {
		return fmt.Errorf("gate pass is %s, expected %s: %w", current, expected, ErrInvalidTransition)
	}

	if err := apply(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing gate pass transition: %w", err)
	}
	return nil
}
