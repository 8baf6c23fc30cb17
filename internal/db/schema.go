package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'USER' CHECK (role IN ('ADMIN', 'MANAGER', 'USER')),
    department_id INTEGER REFERENCES departments(id),
    branch_id     INTEGER REFERENCES branches(id),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_active
    ON users(email) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS branches (
    id                INTEGER PRIMARY KEY,
    branch_name       TEXT NOT NULL,
    branch_code       TEXT NOT NULL,
    branch_type       TEXT NOT NULL CHECK (branch_type IN ('HEAD_OFFICE', 'BRANCH', 'REGIONAL_OFFICE', 'SUB_BRANCH')),
    address           TEXT,
    hardware_engineer TEXT,
    engineer_email    TEXT,
    branch_manager    TEXT,
    manager_email     TEXT,
    opened_at         DATETIME,
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at        DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_branches_name_active
    ON branches(branch_name) WHERE deleted_at IS NULL;
CREATE UNIQUE INDEX IF NOT EXISTS idx_branches_code_active
    ON branches(branch_code) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS departments (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT,
    branch_id   INTEGER REFERENCES branches(id),
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at  DATETIME
);

CREATE TABLE IF NOT EXISTS assets (
    id              INTEGER PRIMARY KEY,
    name            TEXT NOT NULL,
    category        TEXT NOT NULL,
    sub_category    TEXT,
    asset_type      TEXT,
    manufacturer    TEXT,
    model           TEXT,
    serial_number   TEXT NOT NULL,
    asset_tag       TEXT,
    quantity        INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    available_qty   INTEGER NOT NULL DEFAULT 0 CHECK (available_qty >= 0 AND available_qty <= quantity),
    status          TEXT NOT NULL DEFAULT 'AVAILABLE' CHECK (status IN ('AVAILABLE', 'ASSIGNED', 'MAINTENANCE', 'RETIRED')),
    location        TEXT,
    purchase_cost   TEXT,
    warranty_expiry DATETIME,
    grn_number      TEXT,
    specification   TEXT,
    photo           BLOB,
    photo_mime      TEXT,
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at      DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_assets_serial_active
    ON assets(serial_number) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS asset_assignments (
    id            INTEGER PRIMARY KEY,
    asset_id      INTEGER NOT NULL REFERENCES assets(id),
    user_id       INTEGER NOT NULL REFERENCES users(id),
    department_id INTEGER REFERENCES departments(id),
    quantity      INTEGER NOT NULL CHECK (quantity > 0),
    status        TEXT NOT NULL DEFAULT 'ACTIVE' CHECK (status IN ('ACTIVE', 'RETURNED')),
    notes         TEXT,
    assigned_by   INTEGER REFERENCES users(id),
    assigned_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    returned_at   DATETIME
);

CREATE TABLE IF NOT EXISTS asset_movements (
    id            INTEGER PRIMARY KEY,
    asset_id      INTEGER NOT NULL REFERENCES assets(id),
    direction     TEXT NOT NULL CHECK (direction IN ('INWARD', 'OUTWARD')),
    quantity      INTEGER NOT NULL CHECK (quantity > 0),
    supplier      TEXT,
    recipient     TEXT,
    from_location TEXT,
    to_location   TEXT,
    notes         TEXT,
    recorded_by   INTEGER REFERENCES users(id),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_movements_asset ON asset_movements(asset_id);

CREATE TABLE IF NOT EXISTS gate_passes (
    id                INTEGER PRIMARY KEY,
    number            TEXT NOT NULL UNIQUE,
    asset_id          INTEGER NOT NULL REFERENCES assets(id),
    quantity          INTEGER NOT NULL DEFAULT 1 CHECK (quantity > 0),
    destination       TEXT NOT NULL,
    recipient_name    TEXT NOT NULL,
    recipient_contact TEXT,
    purpose           TEXT,
    status            TEXT NOT NULL DEFAULT 'CREATED' CHECK (status IN ('CREATED', 'DELIVERED', 'RECEIVED')),
    delivered_at      DATETIME,
    grn_number        TEXT,
    grn_at            DATETIME,
    created_by        INTEGER REFERENCES users(id),
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS indent_requests (
    id            INTEGER PRIMARY KEY,
    number        TEXT NOT NULL UNIQUE,
    item_name     TEXT NOT NULL,
    category      TEXT,
    quantity      INTEGER NOT NULL CHECK (quantity > 0),
    justification TEXT,
    status        TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'APPROVED', 'REJECTED', 'FULFILLED')),
    requested_by  INTEGER REFERENCES users(id),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS software_licenses (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    vendor      TEXT,
    license_key TEXT,
    total_count INTEGER NOT NULL DEFAULT 0 CHECK (total_count >= 0),
    used_count  INTEGER NOT NULL DEFAULT 0 CHECK (used_count >= 0 AND used_count <= total_count),
    expiry_date DATETIME,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at  DATETIME
);

CREATE TABLE IF NOT EXISTS sequences (
    name  TEXT NOT NULL,
    year  INTEGER NOT NULL,
    value INTEGER NOT NULL,
    PRIMARY KEY (name, year)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
