package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/assetdesk/assetdesk/internal/db"
)

func TestSequenceStrictlyIncreasing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var numbers []string
	for i := 0; i < 3; i++ {
		tx, err := database.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("BeginTx: %v", err)
		}
		number, err := NextGatePassNumber(ctx, tx, now)
		if err != nil {
			t.Fatalf("NextGatePassNumber: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
		numbers = append(numbers, number)
	}

	want := []string{"GP-2026-0001", "GP-2026-0002", "GP-2026-0003"}
	for i := range want {
		if numbers[i] != want[i] {
			t.Errorf("draw %d: expected %s, got %s", i, want[i], numbers[i])
		}
	}
}

func TestSequenceSeparatePerNameAndYear(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	tx, _ := database.BeginTx(ctx, nil)
	gp, err := NextGatePassNumber(ctx, tx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NextGatePassNumber: %v", err)
	}
	ind, err := NextIndentNumber(ctx, tx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NextIndentNumber: %v", err)
	}
	gpNextYear, err := NextGatePassNumber(ctx, tx, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NextGatePassNumber: %v", err)
	}
	tx.Commit()

	if gp != "GP-2026-0001" {
		t.Errorf("expected GP-2026-0001, got %s", gp)
	}
	if ind != "IND-2026-0001" {
		t.Errorf("expected IND-2026-0001, got %s", ind)
	}
	if gpNextYear != "GP-2027-0001" {
		t.Errorf("expected counter to reset per year, got %s", gpNextYear)
	}
}

func TestSequenceUniqueUnderConcurrency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.sqlite3")
	database, err := db.Open(path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer database.Close()
	if err := db.EnsureSchema(database); err != nil {
		t.Fatalf("schema: %v", err)
	}

	ctx := context.Background()
	now := time.Now()

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := database.BeginTx(ctx, nil)
			if err != nil {
				return
			}
			defer tx.Rollback()
			number, err := NextGatePassNumber(ctx, tx, now)
			if err != nil {
				return
			}
			if tx.Commit() == nil {
				results <- number
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for number := range results {
		if seen[number] {
			t.Fatalf("duplicate number drawn: %s", number)
		}
		seen[number] = true
	}
	if len(seen) == 0 {
		t.Fatal("no numbers drawn")
	}
}
