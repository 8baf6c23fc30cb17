package store

import (
	"context"
	"errors"
	"testing"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/model"
)

func TestDepartmentCRUD(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	dept, err := CreateDepartment(ctx, database, "IT", "information technology", nil)
	if err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}

	if err := UpdateDepartment(ctx, database, dept.ID, "IT Ops", "operations", nil); err != nil {
		t.Fatalf("UpdateDepartment: %v", err)
	}
	got, _ := GetDepartment(ctx, database, dept.ID)
	if got.Name != "IT Ops" {
		t.Errorf("expected renamed department, got %s", got.Name)
	}

	if err := DeleteDepartment(ctx, database, dept.ID); err != nil {
		t.Fatalf("DeleteDepartment: %v", err)
	}
	list, _ := ListDepartments(ctx, database)
	if len(list) != 0 {
		t.Errorf("expected no active departments, got %d", len(list))
	}
}

func TestDeleteDepartmentWithUsersConflicts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	dept, _ := CreateDepartment(ctx, database, "Finance", "", nil)
	CreateUser(ctx, database, "Bob", "bob@example.com", "hash", model.RoleUser, &dept.ID, nil)

	err := DeleteDepartment(ctx, database, dept.ID)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	// Still present.
	got, _ := GetDepartment(ctx, database, dept.ID)
	if got == nil || got.DeletedAt != nil {
		t.Error("expected department untouched")
	}
}

func TestDeleteDepartmentWithActiveAssignmentsConflicts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	dept, _ := CreateDepartment(ctx, database, "Ops", "", nil)
	asset, _ := CreateAsset(ctx, database, newAsset("Laptop", 2), "", nil)
	user, _ := CreateUser(ctx, database, "Alice", "alice@example.com", "hash", model.RoleUser, nil, nil)

	assignment, _ := AssignAsset(ctx, database, asset.ID, user.ID, &dept.ID, 1, "", nil)

	err := DeleteDepartment(ctx, database, dept.ID)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict while assignment active, got %v", err)
	}

	// After the assignment is returned the delete goes through.
	ReturnAssignment(ctx, database, assignment.ID, nil)
	if err := DeleteDepartment(ctx, database, dept.ID); err != nil {
		t.Errorf("expected delete after return, got %v", err)
	}
}

func TestDeleteDepartmentMissing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	err := DeleteDepartment(ctx, database, 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
