package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/model"
)

func TestCreateIndentRequest(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ind, err := CreateIndentRequest(ctx, database, &model.IndentRequest{
		ItemName:      "Toner",
		Category:      "Consumables",
		Quantity:      4,
		Justification: "printer running dry",
	}, nil)
	if err != nil {
		t.Fatalf("CreateIndentRequest: %v", err)
	}

	if !strings.HasPrefix(ind.Number, "IND-") {
		t.Errorf("expected IND- number, got %s", ind.Number)
	}
	if ind.Status != model.IndentPending {
		t.Errorf("expected PENDING, got %s", ind.Status)
	}

	second, _ := CreateIndentRequest(ctx, database, &model.IndentRequest{ItemName: "Paper", Quantity: 1}, nil)
	if second.Number == ind.Number {
		t.Errorf("expected distinct numbers, both %s", ind.Number)
	}
}

func TestCreateIndentRequestBadQuantity(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateIndentRequest(ctx, database, &model.IndentRequest{ItemName: "Toner", Quantity: 0}, nil)
	if err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestUpdateIndentStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ind, _ := CreateIndentRequest(ctx, database, &model.IndentRequest{ItemName: "Toner", Quantity: 2}, nil)

	if err := UpdateIndentStatus(ctx, database, ind.ID, model.IndentApproved); err != nil {
		t.Fatalf("UpdateIndentStatus: %v", err)
	}
	got, _ := GetIndentRequest(ctx, database, ind.ID)
	if got.Status != model.IndentApproved {
		t.Errorf("expected APPROVED, got %s", got.Status)
	}

	err := UpdateIndentStatus(ctx, database, 999, model.IndentRejected)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	pending, _ := ListIndentRequests(ctx, database, model.IndentPending)
	if len(pending) != 0 {
		t.Errorf("expected no PENDING requests, got %d", len(pending))
	}
}
