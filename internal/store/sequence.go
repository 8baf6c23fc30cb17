package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Sequence names.
const (
	SeqGatePass = "gate_pass"
	SeqIndent   = "indent_request"
)

// nextSequence atomically draws the next value of a per-year counter inside
// an existing transaction. The upsert makes count-then-format races
// impossible: two concurrent draws always see distinct values.
func nextSequence(ctx context.Context, tx *sql.Tx, name string, year int) (int, error) {
	var value int
	err := tx.QueryRowContext(ctx,
		`INSERT INTO sequences (name, year, value) VALUES (?, ?, 1)
		 ON CONFLICT (name, year) DO UPDATE SET value = value + 1
		 RETURNING value`,
		name, year,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("drawing sequence %s/%d: %w", name, year, err)
	}
	return value, nil
}

// formatSequence renders a document number like GP-2026-0001.
func formatSequence(prefix string, year, value int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, value)
}

// NextGatePassNumber draws the next gate pass number for the current year.
func NextGatePassNumber(ctx context.Context, tx *sql.Tx, now time.Time) (string, error) {
	value, err := nextSequence(ctx, tx, SeqGatePass, now.Year())
	if err != nil {
		return "", err
	}
	return formatSequence("GP", now.Year(), value), nil
}

// NextIndentNumber draws the next indent request number for the current year.
func NextIndentNumber(ctx context.Context, tx *sql.Tx, now time.Time) (string, error) {
	value, err := nextSequence(ctx, tx, SeqIndent, now.Year())
	if err != nil {
		return "", err
	}
	return formatSequence("IND", now.Year(), value), nil
}
