package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/model"
)

func newAsset(name string, qty int) *model.Asset {
	return &model.Asset{
		Name:         name,
		Category:     "Hardware",
		SerialNumber: "SN-" + name,
		Quantity:     qty,
		AvailableQty: qty,
	}
}

func TestCreateAssetRecordsInitialMovement(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, err := CreateAsset(ctx, database, newAsset("Laptop", 5), "Acme Supplies", nil)
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if asset.Quantity != 5 || asset.AvailableQty != 5 {
		t.Errorf("expected 5/5, got %d/%d", asset.AvailableQty, asset.Quantity)
	}
	if asset.Status != model.AssetStatusAvailable {
		t.Errorf("expected AVAILABLE, got %s", asset.Status)
	}

	movements, _ := ListMovements(ctx, database, MovementFilter{AssetID: asset.ID})
	if len(movements) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(movements))
	}
	if movements[0].Direction != model.MovementInward || movements[0].Quantity != 5 {
		t.Errorf("expected INWARD 5, got %s %d", movements[0].Direction, movements[0].Quantity)
	}
	if movements[0].Supplier != "Acme Supplies" {
		t.Errorf("expected supplier recorded, got %q", movements[0].Supplier)
	}
}

func TestCreateAssetRejectsBadAvailable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a := newAsset("Monitor", 3)
	a.AvailableQty = 7
	if _, err := CreateAsset(ctx, database, a, "", nil); err == nil {
		t.Error("expected error for available > quantity")
	}

	a = newAsset("Monitor2", 3)
	a.AvailableQty = -1
	if _, err := CreateAsset(ctx, database, a, "", nil); err == nil {
		t.Error("expected error for negative available")
	}
}

func TestCreateAssetPartiallyAssigned(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a := newAsset("Keyboard", 10)
	a.AvailableQty = 0
	asset, err := CreateAsset(ctx, database, a, "", nil)
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if asset.Status != model.AssetStatusAssigned {
		t.Errorf("expected ASSIGNED for zero availability, got %s", asset.Status)
	}
}

func TestCreateAssetDuplicateSerial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateAsset(ctx, database, newAsset("Printer", 1), "", nil); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	_, err := CreateAsset(ctx, database, newAsset("Printer", 1), "", nil)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestAssignAssetDecrementsAvailability(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, newAsset("Laptop", 10), "", nil)
	user, _ := CreateUser(ctx, database, "Alice", "alice@example.com", "hash", model.RoleUser, nil, nil)

	assignment, err := AssignAsset(ctx, database, asset.ID, user.ID, nil, 3, "project kit", nil)
	if err != nil {
		t.Fatalf("AssignAsset: %v", err)
	}
	if assignment.Status != model.AssignmentStatusActive {
		t.Errorf("expected ACTIVE, got %s", assignment.Status)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.AvailableQty != 7 {
		t.Errorf("expected 7 available, got %d", got.AvailableQty)
	}
	if got.Status != model.AssetStatusAvailable {
		t.Errorf("expected AVAILABLE at 7/10, got %s", got.Status)
	}

	movements, _ := ListMovements(ctx, database, MovementFilter{AssetID: asset.ID, Direction: model.MovementOutward})
	if len(movements) != 1 || movements[0].Quantity != 3 {
		t.Errorf("expected one OUTWARD movement of 3, got %v", movements)
	}
}

func TestAssignAssetExhaustsStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, newAsset("Laptop", 10), "", nil)
	user, _ := CreateUser(ctx, database, "Alice", "alice@example.com", "hash", model.RoleUser, nil, nil)

	AssignAsset(ctx, database, asset.ID, user.ID, nil, 3, "", nil)
	if _, err := AssignAsset(ctx, database, asset.ID, user.ID, nil, 7, "", nil); err != nil {
		t.Fatalf("AssignAsset: %v", err)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.AvailableQty != 0 {
		t.Errorf("expected 0 available, got %d", got.AvailableQty)
	}
	if got.Status != model.AssetStatusAssigned {
		t.Errorf("expected ASSIGNED at 0 available, got %s", got.Status)
	}
}

func TestAssignAssetInsufficientStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, newAsset("Laptop", 2), "", nil)
	user, _ := CreateUser(ctx, database, "Alice", "alice@example.com", "hash", model.RoleUser, nil, nil)

	_, err := AssignAsset(ctx, database, asset.ID, user.ID, nil, 5, "", nil)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// Nothing mutated.
	got, _ := GetAsset(ctx, database, asset.ID)
	if got.AvailableQty != 2 {
		t.Errorf("expected availability unchanged, got %d", got.AvailableQty)
	}
	assignments, _ := ListAssignments(ctx, database, AssignmentFilter{AssetID: asset.ID})
	if len(assignments) != 0 {
		t.Errorf("expected no assignments, got %d", len(assignments))
	}
	movements, _ := ListMovements(ctx, database, MovementFilter{AssetID: asset.ID, Direction: model.MovementOutward})
	if len(movements) != 0 {
		t.Errorf("expected no OUTWARD movements, got %d", len(movements))
	}
}

func TestAssignAssetMissingAsset(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "Alice", "alice@example.com", "hash", model.RoleUser, nil, nil)

	_, err := AssignAsset(ctx, database, 999, user.ID, nil, 1, "", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReturnAssignmentRestoresStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, newAsset("Laptop", 4), "", nil)
	user, _ := CreateUser(ctx, database, "Alice", "alice@example.com", "hash", model.RoleUser, nil, nil)

	assignment, _ := AssignAsset(ctx, database, asset.ID, user.ID, nil, 4, "", nil)

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.Status != model.AssetStatusAssigned {
		t.Fatalf("expected ASSIGNED before return, got %s", got.Status)
	}

	if err := ReturnAssignment(ctx, database, assignment.ID, nil); err != nil {
		t.Fatalf("ReturnAssignment: %v", err)
	}

	got, _ = GetAsset(ctx, database, asset.ID)
	if got.AvailableQty != 4 {
		t.Errorf("expected 4 available after return, got %d", got.AvailableQty)
	}
	if got.Status != model.AssetStatusAvailable {
		t.Errorf("expected AVAILABLE after return, got %s", got.Status)
	}

	closed, _ := GetAssignment(ctx, database, assignment.ID)
	if closed.Status != model.AssignmentStatusReturned {
		t.Errorf("expected RETURNED, got %s", closed.Status)
	}
	if closed.ReturnedAt == nil {
		t.Error("expected returned_at stamped")
	}
}

func TestReturnAssignmentTwiceConflicts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, newAsset("Laptop", 2), "", nil)
	user, _ := CreateUser(ctx, database, "Alice", "alice@example.com", "hash", model.RoleUser, nil, nil)
	assignment, _ := AssignAsset(ctx, database, asset.ID, user.ID, nil, 1, "", nil)

	ReturnAssignment(ctx, database, assignment.ID, nil)
	err := ReturnAssignment(ctx, database, assignment.ID, nil)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict on double return, got %v", err)
	}

	// Availability not double-credited.
	got, _ := GetAsset(ctx, database, asset.ID)
	if got.AvailableQty != 2 {
		t.Errorf("expected 2 available, got %d", got.AvailableQty)
	}
}

func TestReturnAssignmentMissing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	err := ReturnAssignment(ctx, database, 12345, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReceiveStockIncrementsBoth(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, newAsset("Mouse", 2), "", nil)
	user, _ := CreateUser(ctx, database, "Alice", "alice@example.com", "hash", model.RoleUser, nil, nil)
	AssignAsset(ctx, database, asset.ID, user.ID, nil, 2, "", nil)

	if err := ReceiveStock(ctx, database, asset.ID, 5, "Acme", "Store", nil); err != nil {
		t.Fatalf("ReceiveStock: %v", err)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.Quantity != 7 || got.AvailableQty != 5 {
		t.Errorf("expected 5/7, got %d/%d", got.AvailableQty, got.Quantity)
	}
	if got.Status != model.AssetStatusAvailable {
		t.Errorf("expected AVAILABLE after receipt, got %s", got.Status)
	}
}

func TestReceiveStockMissingAsset(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	err := ReceiveStock(ctx, database, 999, 5, "", "", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentAssignsNeverOversell(t *testing.T) {
	// File-backed DB so all pool connections share state.
	path := filepath.Join(t.TempDir(), "ledger.sqlite3")
	database, err := db.Open(path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer database.Close()
	if err := db.EnsureSchema(database); err != nil {
		t.Fatalf("schema: %v", err)
	}

	ctx := context.Background()
	asset, _ := CreateAsset(ctx, database, newAsset("Laptop", 10), "", nil)
	user, _ := CreateUser(ctx, database, "Alice", "alice@example.com", "hash", model.RoleUser, nil, nil)

	const workers = 20
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := AssignAsset(ctx, database, asset.ID, user.ID, nil, 1, "", nil); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	var n int
	for range successes {
		n++
	}
	if n > 10 {
		t.Fatalf("oversold: %d assignments for 10 units", n)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.AvailableQty != 10-n {
		t.Errorf("expected %d available, got %d", 10-n, got.AvailableQty)
	}
	if got.AvailableQty < 0 {
		t.Error("availability went negative")
	}
}
