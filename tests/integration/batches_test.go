package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
	"github.com/ardlogistics/backoffice/internal/store"
)

func TestBatchUnlockWrongCode(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	employee := createTestEmployee(t, db, "Night Shift", models.RoleShipper)

	batch, err := store.CreateBatch(ctx, db, "BATCH-2026-001")
	if err != nil {
		t.Fatalf("Create batch: %v", err)
	}
	if !batch.Locked {
		t.Fatal("New batch must start locked")
	}

	_, err = store.UnlockBatch(ctx, db, batch.ID, "not-the-code", employee.ID)
	if !errors.Is(err, database.ErrInvalidUnlockCode) {
		t.Fatalf("Expected ErrInvalidUnlockCode, got %v", err)
	}

	// A wrong code leaves every field untouched.
	after, err := store.GetBatch(ctx, db, batch.ID)
	if err != nil {
		t.Fatalf("Get batch: %v", err)
	}
	if !after.Locked {
		t.Error("Batch unlocked despite wrong code")
	}
	if after.UnlockedBy != nil || after.UnlockedAt != nil {
		t.Error("Unlock audit fields written despite wrong code")
	}
}

func TestBatchUnlockAndRelock(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	employee := createTestEmployee(t, db, "Floor Supervisor", models.RoleOperationsSupervisor)

	batch, err := store.CreateBatch(ctx, db, "BATCH-2026-002")
	if err != nil {
		t.Fatalf("Create batch: %v", err)
	}

	unlocked, err := store.UnlockBatch(ctx, db, batch.ID, batch.UnlockCode, employee.ID)
	if err != nil {
		t.Fatalf("Unlock batch: %v", err)
	}
	if unlocked.Locked {
		t.Error("Batch still locked after correct code")
	}
	if unlocked.UnlockedBy == nil || *unlocked.UnlockedBy != employee.ID {
		t.Errorf("Expected unlocked_by %d, got %v", employee.ID, unlocked.UnlockedBy)
	}
	if unlocked.UnlockedAt == nil {
		t.Error("Expected unlock timestamp")
	}

	relocked, err := store.LockBatch(ctx, db, batch.ID)
	if err != nil {
		t.Fatalf("Relock batch: %v", err)
	}
	if !relocked.Locked {
		t.Error("Batch not locked after relock")
	}
	if relocked.UnlockedBy != nil || relocked.UnlockedAt != nil {
		t.Error("Relock must clear the previous unlock audit fields")
	}
	if relocked.UnlockCode == batch.UnlockCode {
		t.Error("Relock must rotate the unlock code")
	}

	// The old code no longer works.
	_, err = store.UnlockBatch(ctx, db, batch.ID, batch.UnlockCode, employee.ID)
	if !errors.Is(err, database.ErrInvalidUnlockCode) {
		t.Errorf("Expected ErrInvalidUnlockCode with rotated code, got %v", err)
	}
}

func TestBatchAssignmentRoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	employee := createTestEmployee(t, db, "Batch Builder", models.RoleShipper)

	batch, err := store.CreateBatch(ctx, db, "BATCH-2026-003")
	if err != nil {
		t.Fatalf("Create batch: %v", err)
	}

	pkg, err := store.CreatePackage(ctx, db, store.CreatePackageRequest{
		StatusID:   statusReceived,
		CustomerID: 15,
		CreatedBy:  employee.ID,
	})
	if err != nil {
		t.Fatalf("Create package: %v", err)
	}

	assigned, err := store.AssignPackageToBatch(ctx, db, pkg.TrackingCode, &batch.ID)
	if err != nil {
		t.Fatalf("Assign to batch: %v", err)
	}
	if assigned.BatchID == nil || *assigned.BatchID != batch.ID {
		t.Errorf("Expected batch id %d, got %v", batch.ID, assigned.BatchID)
	}

	cleared, err := store.AssignPackageToBatch(ctx, db, pkg.TrackingCode, nil)
	if err != nil {
		t.Fatalf("Clear batch assignment: %v", err)
	}
	if cleared.BatchID != nil {
		t.Errorf("Expected cleared batch assignment, got %v", cleared.BatchID)
	}
}

func TestUnlockMissingBatch(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := store.UnlockBatch(context.Background(), db, 12345, "whatever", 1)
	if !errors.Is(err, database.ErrBatchNotFound) {
		t.Errorf("Expected ErrBatchNotFound, got %v", err)
	}
}
