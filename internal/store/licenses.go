package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/assetdesk/assetdesk/internal/model"
)

// CreateLicense creates a software license record.
func CreateLicense(ctx context.Context, db *sql.DB, l *model.SoftwareLicense) (*model.SoftwareLicense, error) {
	if l.TotalCount < 0 || l.UsedCount < 0 || l.UsedCount > l.TotalCount {
		return nil, fmt.Errorf("used count %d outside [0, %d]", l.UsedCount, l.TotalCount)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO software_licenses (name, vendor, license_key, total_count, used_count, expiry_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		l.Name, l.Vendor, l.LicenseKey, l.TotalCount, l.UsedCount, l.ExpiryDate,
	)
	if err != nil {
		return nil, fmt.Errorf("creating license: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting license id: %w", err)
	}

	return GetLicense(ctx, db, id)
}

// GetLicense returns a license by ID.
func GetLicense(ctx context.Context, db *sql.DB, id int64) (*model.SoftwareLicense, error) {
	l := &model.SoftwareLicense{}
	var vendor, key sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, vendor, license_key, total_count, used_count, expiry_date, created_at, deleted_at
		 FROM software_licenses WHERE id = ?`, id,
	).Scan(&l.ID, &l.Name, &vendor, &key, &l.TotalCount, &l.UsedCount, &l.ExpiryDate, &l.CreatedAt, &l.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting license: %w", err)
	}
	l.Vendor = vendor.String
	l.LicenseKey = key.String
	return l, nil
}

// ListLicenses returns all non-deleted licenses.
func ListLicenses(ctx context.Context, db *sql.DB) ([]model.SoftwareLicense, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, vendor, license_key, total_count, used_count, expiry_date, created_at, deleted_at
		 FROM software_licenses WHERE deleted_at IS NULL ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing licenses: %w", err)
	}
	defer rows.Close()

	var licenses []model.SoftwareLicense
	for rows.Next() {
		var l model.SoftwareLicense
		var vendor, key sql.NullString
		if err := rows.Scan(&l.ID, &l.Name, &vendor, &key, &l.TotalCount, &l.UsedCount, &l.ExpiryDate, &l.CreatedAt, &l.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning license: %w", err)
		}
		l.Vendor = vendor.String
		l.LicenseKey = key.String
		licenses = append(licenses, l)
	}
	return licenses, rows.Err()
}

// UpdateLicense updates a license's fields, keeping used <= total.
func UpdateLicense(ctx context.Context, db *sql.DB, id int64, l *model.SoftwareLicense) error {
	if l.TotalCount < 0 || l.UsedCount < 0 || l.UsedCount > l.TotalCount {
		return fmt.Errorf("used count %d outside [0, %d]", l.UsedCount, l.TotalCount)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE software_licenses SET name = ?, vendor = ?, license_key = ?,
		     total_count = ?, used_count = ?, expiry_date = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		l.Name, l.Vendor, l.LicenseKey, l.TotalCount, l.UsedCount, l.ExpiryDate, id,
	)
	if err != nil {
		return fmt.Errorf("updating license: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking license update: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLicense soft-deletes a license.
func DeleteLicense(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE software_licenses SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting license: %w", err)
	}
	return nil
}
