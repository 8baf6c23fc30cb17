package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/assetdesk/assetdesk/internal/model"
)

const assetColumns = `id, name, category, sub_category, asset_type, manufacturer, model,
	serial_number, asset_tag, quantity, available_qty, status, location,
	purchase_cost, warranty_expiry, grn_number, specification, photo_mime,
	created_at, updated_at, deleted_at`

func scanAsset(row interface{ Scan(...any) error }) (*model.Asset, error) {
	a := &model.Asset{}
	var subCategory, assetType, manufacturer, mdl, assetTag sql.NullString
	var location, purchaseCost, grnNumber, specification, photoMime sql.NullString
	var warrantyExpiry sql.NullTime
	err := row.Scan(&a.ID, &a.Name, &a.Category, &subCategory, &assetType, &manufacturer, &mdl,
		&a.SerialNumber, &assetTag, &a.Quantity, &a.AvailableQty, &a.Status, &location,
		&purchaseCost, &warrantyExpiry, &grnNumber, &specification, &photoMime,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt)
	if err != nil {
		return nil, err
	}
	a.SubCategory = subCategory.String
	a.AssetType = assetType.String
	a.Manufacturer = manufacturer.String
	a.Model = mdl.String
	a.AssetTag = assetTag.String
	a.Location = location.String
	a.PurchaseCost = purchaseCost.String
	a.GRNNumber = grnNumber.String
	a.Specification = specification.String
	a.PhotoMime = photoMime.String
	if warrantyExpiry.Valid {
		t := warrantyExpiry.Time
		a.WarrantyExpiry = &t
	}
	return a, nil
}

// AssetFilter narrows ListAssets results. Zero values mean no filtering.
type AssetFilter struct {
	Status   string
	Category string
	Location string
	Search   string
}

// GetAsset returns an asset by ID.
func GetAsset(ctx context.Context, db *sql.DB, id int64) (*model.Asset, error) {
	a, err := scanAsset(db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting asset: %w", err)
	}
	return a, nil
}

// ListAssets returns non-deleted assets matching the filter.
func ListAssets(ctx context.Context, db *sql.DB, filter AssetFilter) ([]model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE deleted_at IS NULL`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.Location != "" {
		query += ` AND location = ?`
		args = append(args, filter.Location)
	}
	if filter.Search != "" {
		query += ` AND (name LIKE ? OR serial_number LIKE ? OR asset_tag LIKE ?)`
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query += ` ORDER BY name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var assets []model.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

// UpdateAsset updates an asset's descriptive fields. Quantity bookkeeping
// goes through the ledger, never through this function.
func UpdateAsset(ctx context.Context, db *sql.DB, id int64, a *model.Asset) error {
	result, err := db.ExecContext(ctx,
		`UPDATE assets SET name = ?, category = ?, sub_category = ?, asset_type = ?,
		     manufacturer = ?, model = ?, serial_number = ?, asset_tag = ?, status = ?,
		     location = ?, purchase_cost = ?, warranty_expiry = ?, specification = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		a.Name, a.Category, a.SubCategory, a.AssetType,
		a.Manufacturer, a.Model, a.SerialNumber, a.AssetTag, a.Status,
		a.Location, a.PurchaseCost, a.WarrantyExpiry, a.Specification, id,
	)
	if err != nil {
		return mapConstraint(fmt.Errorf("updating asset: %w", err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAsset soft-deletes an asset.
func DeleteAsset(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE assets SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	return nil
}

// SetAssetPhoto sets an asset's photo data.
func SetAssetPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE assets SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting asset photo: %w", err)
	}
	return nil
}

// GetAssetPhoto returns an asset's photo data and MIME type.
func GetAssetPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM assets WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting asset photo: %w", err)
	}
	return photo, mime.String, nil
}
