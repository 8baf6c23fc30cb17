package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/model"
)

func TestCreateGatePassDrawsNumberAndMovesStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, newAsset("Server", 1), "", nil)

	pass, err := CreateGatePass(ctx, database, &model.GatePass{
		AssetID:       asset.ID,
		Destination:   "North Branch",
		RecipientName: "Branch IT",
		Purpose:       "replacement",
	}, nil)
	if err != nil {
		t.Fatalf("CreateGatePass: %v", err)
	}

	if !strings.HasPrefix(pass.Number, "GP-") {
		t.Errorf("expected GP- number, got %s", pass.Number)
	}
	if pass.Status != model.GatePassCreated {
		t.Errorf("expected CREATED, got %s", pass.Status)
	}

	got, _ := GetAsset(ctx, database, asset.ID)
	if got.Status != model.AssetStatusAssigned {
		t.Errorf("expected asset ASSIGNED, got %s", got.Status)
	}

	movements, _ := ListMovements(ctx, database, MovementFilter{AssetID: asset.ID, Direction: model.MovementOutward})
	if len(movements) != 1 {
		t.Fatalf("expected 1 OUTWARD movement, got %d", len(movements))
	}
	if movements[0].ToLocation != "North Branch" {
		t.Errorf("expected destination in movement, got %q", movements[0].ToLocation)
	}
}

func TestCreateGatePassMissingAsset(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateGatePass(ctx, database, &model.GatePass{
		AssetID:       999,
		Destination:   "Nowhere",
		RecipientName: "Nobody",
	}, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGatePassLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, newAsset("Switch", 1), "", nil)
	pass, _ := CreateGatePass(ctx, database, &model.GatePass{
		AssetID:       asset.ID,
		Destination:   "East Branch",
		RecipientName: "Branch IT",
	}, nil)

	if err := MarkGatePassDelivered(ctx, database, pass.ID); err != nil {
		t.Fatalf("MarkGatePassDelivered: %v", err)
	}
	delivered, _ := GetGatePass(ctx, database, pass.ID)
	if delivered.Status != model.GatePassDelivered {
		t.Errorf("expected DELIVERED, got %s", delivered.Status)
	}
	if delivered.DeliveredAt == nil {
		t.Error("expected delivered_at stamped")
	}

	if err := RecordGatePassGRN(ctx, database, pass.ID, "GRN-77"); err != nil {
		t.Fatalf("RecordGatePassGRN: %v", err)
	}
	received, _ := GetGatePass(ctx, database, pass.ID)
	if received.Status != model.GatePassReceived {
		t.Errorf("expected RECEIVED, got %s", received.Status)
	}
	if received.GRNNumber != "GRN-77" || received.GRNAt == nil {
		t.Errorf("expected GRN stamped, got %q %v", received.GRNNumber, received.GRNAt)
	}

	gotAsset, _ := GetAsset(ctx, database, asset.ID)
	if gotAsset.GRNNumber != "GRN-77" {
		t.Errorf("expected GRN written onto asset, got %q", gotAsset.GRNNumber)
	}
}

func TestGatePassInvalidTransitions(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, newAsset("Router", 1), "", nil)
	pass, _ := CreateGatePass(ctx, database, &model.GatePass{
		AssetID:       asset.ID,
		Destination:   "West Branch",
		RecipientName: "Branch IT",
	}, nil)

	// GRN before delivery.
	err := RecordGatePassGRN(ctx, database, pass.ID, "GRN-1")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for GRN on CREATED, got %v", err)
	}

	MarkGatePassDelivered(ctx, database, pass.ID)

	// Deliver twice.
	err = MarkGatePassDelivered(ctx, database, pass.ID)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for double delivery, got %v", err)
	}

	RecordGatePassGRN(ctx, database, pass.ID, "GRN-1")

	// RECEIVED is terminal.
	err = RecordGatePassGRN(ctx, database, pass.ID, "GRN-2")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition after RECEIVED, got %v", err)
	}
	err = MarkGatePassDelivered(ctx, database, pass.ID)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition after RECEIVED, got %v", err)
	}
}

func TestGatePassTransitionsMissingPass(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := MarkGatePassDelivered(ctx, database, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := RecordGatePassGRN(ctx, database, 42, "GRN-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListGatePassesByStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	asset, _ := CreateAsset(ctx, database, newAsset("UPS", 2), "", nil)
	a, _ := CreateGatePass(ctx, database, &model.GatePass{AssetID: asset.ID, Destination: "A", RecipientName: "X"}, nil)
	CreateGatePass(ctx, database, &model.GatePass{AssetID: asset.ID, Destination: "B", RecipientName: "Y"}, nil)
	MarkGatePassDelivered(ctx, database, a.ID)

	created, _ := ListGatePasses(ctx, database, model.GatePassCreated)
	if len(created) != 1 {
		t.Errorf("expected 1 CREATED pass, got %d", len(created))
	}
	delivered, _ := ListGatePasses(ctx, database, model.GatePassDelivered)
	if len(delivered) != 1 {
		t.Errorf("expected 1 DELIVERED pass, got %d", len(delivered))
	}
	all, _ := ListGatePasses(ctx, database, "")
	if len(all) != 2 {
		t.Errorf("expected 2 passes, got %d", len(all))
	}
}
