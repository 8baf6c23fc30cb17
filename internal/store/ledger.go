package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/assetdesk/assetdesk/internal/model"
)

// The ledger keeps Asset.available_qty consistent with outstanding
// assignments and appends a movement record for every stock change.
// Every operation here runs its availability check and its writes inside a
// single transaction, so concurrent requests against the same asset cannot
// both pass the check before either write lands.

// CreateAsset registers a new asset and appends the initial INWARD movement
// for its full quantity. AvailableQty must already be resolved by the caller
// (defaulting to Quantity when the client omitted it); an explicit value
// lower than Quantity is stored as-is, covering imports of already partially
// assigned stock. Returns ErrConflict when the serial number is taken.
func CreateAsset(ctx context.Context, db *sql.DB, a *model.Asset, supplier string, recordedBy *int64) (*model.Asset, error) {
	if a.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}
	available := a.AvailableQty
	if available < 0 || available > a.Quantity {
		return nil, fmt.Errorf("available quantity %d outside [0, %d]", available, a.Quantity)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	status := a.Status
	if status == "" {
		status = model.AssetStatusAvailable
	}
	if a.Quantity > 0 && available == 0 {
		status = model.AssetStatusAssigned
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO assets (name, category, sub_category, asset_type, manufacturer, model,
		     serial_number, asset_tag, quantity, available_qty, status, location,
		     purchase_cost, warranty_expiry, grn_number, specification)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.Category, a.SubCategory, a.AssetType, a.Manufacturer, a.Model,
		a.SerialNumber, a.AssetTag, a.Quantity, available, status, a.Location,
		a.PurchaseCost, a.WarrantyExpiry, a.GRNNumber, a.Specification,
	)
	if err != nil {
		return nil, mapConstraint(fmt.Errorf("creating asset: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting asset id: %w", err)
	}

	// Initial registration movement covers the full quantity, not the
	// available portion.
	if a.Quantity > 0 {
		err = insertMovement(ctx, tx, &model.Movement{
			AssetID:    id,
			Direction:  model.MovementInward,
			Quantity:   a.Quantity,
			Supplier:   supplier,
			ToLocation: a.Location,
			Notes:      "initial registration",
			RecordedBy: recordedBy,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing asset creation: %w", err)
	}

	return GetAsset(ctx, db, id)
}

// AssignAsset allocates quantity of an asset to a user, creating an ACTIVE
// assignment and an OUTWARD movement. The asset's available quantity is
// decremented; when it reaches exactly zero the asset status becomes
// ASSIGNED. Returns ErrNotFound when the asset does not exist and
// ErrInsufficientStock when quantity exceeds availability.
func AssignAsset(ctx context.Context, db *sql.DB, assetID, userID int64, departmentID *int64, quantity int, notes string, assignedBy *int64) (*model.Assignment, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var available int
	var location sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT available_qty, location FROM assets WHERE id = ? AND deleted_at IS NULL`,
		assetID,
	).Scan(&available, &location)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking available quantity: %w", err)
	}

	if available < quantity {
		return nil, fmt.Errorf("have %d, need %d: %w", available, quantity, ErrInsufficientStock)
	}

	newAvailable := available - quantity
	if newAvailable == 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE assets SET available_qty = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			newAvailable, model.AssetStatusAssigned, assetID,
		)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE assets SET available_qty = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			newAvailable, assetID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("decrementing available quantity: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO asset_assignments (asset_id, user_id, department_id, quantity, status, notes, assigned_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		assetID, userID, departmentID, quantity, model.AssignmentStatusActive, notes, assignedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("creating assignment: %w", err)
	}

	err = insertMovement(ctx, tx, &model.Movement{
		AssetID:      assetID,
		Direction:    model.MovementOutward,
		Quantity:     quantity,
		Recipient:    fmt.Sprintf("user:%d", userID),
		FromLocation: location.String,
		Notes:        notes,
		RecordedBy:   assignedBy,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing assignment: %w", err)
	}

	assignmentID, _ := result.LastInsertId()
	return GetAssignment(ctx, db, assignmentID)
}

// ReturnAssignment closes an ACTIVE assignment, restoring the asset's
// available quantity and appending an INWARD movement. Returns ErrNotFound
// for a missing assignment and ErrConflict when it was already returned.
func ReturnAssignment(ctx context.Context, db *sql.DB, assignmentID int64, recordedBy *int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var assetID int64
	var quantity int
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT asset_id, quantity, status FROM asset_assignments WHERE id = ?`,
		assignmentID,
	).Scan(&assetID, &quantity, &status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("getting assignment: %w", err)
	}
	if status != model.AssignmentStatusActive {
		return fmt.Errorf("assignment already returned: %w", ErrConflict)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE asset_assignments SET status = ?, returned_at = CURRENT_TIMESTAMP WHERE id = ?`,
		model.AssignmentStatusReturned, assignmentID,
	)
	if err != nil {
		return fmt.Errorf("closing assignment: %w", err)
	}

	var location sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT location FROM assets WHERE id = ?`, assetID,
	).Scan(&location)
	if err != nil {
		return fmt.Errorf("getting asset location: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE assets SET available_qty = available_qty + ?,
		     status = CASE WHEN status = ? THEN ? ELSE status END,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		quantity, model.AssetStatusAssigned, model.AssetStatusAvailable, assetID,
	)
	if err != nil {
		return fmt.Errorf("restoring available quantity: %w", err)
	}

	err = insertMovement(ctx, tx, &model.Movement{
		AssetID:    assetID,
		Direction:  model.MovementInward,
		Quantity:   quantity,
		ToLocation: location.String,
		Notes:      "assignment return",
		RecordedBy: recordedBy,
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing return: %w", err)
	}
	return nil
}

// ReceiveStock records an inward receipt: total and available quantity both
// increase and an INWARD movement is appended.
func ReceiveStock(ctx context.Context, db *sql.DB, assetID int64, quantity int, supplier, location string, recordedBy *int64) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE assets SET quantity = quantity + ?, available_qty = available_qty + ?,
		     status = CASE WHEN status = ? THEN ? ELSE status END,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		quantity, quantity, model.AssetStatusAssigned, model.AssetStatusAvailable, assetID,
	)
	if err != nil {
		return fmt.Errorf("incrementing stock: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking stock update: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	err = insertMovement(ctx, tx, &model.Movement{
		AssetID:    assetID,
		Direction:  model.MovementInward,
		Quantity:   quantity,
		Supplier:   supplier,
		ToLocation: location,
		RecordedBy: recordedBy,
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing stock receipt: %w", err)
	}
	return nil
}
