package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
	"github.com/ardlogistics/backoffice/internal/store"
)

// Seeded package status ids (migrations/0002_seed.up.sql).
const (
	statusRegistered = int64(1)
	statusReceived   = int64(2)
	statusInTransit  = int64(4)
)

func TestStatusChangeScenario(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// The intake clerk in this scenario carries a fixed id.
	_, err := db.Exec(
		`INSERT INTO employees (id, full_name, email, role) VALUES (42, 'Warehouse Clerk', 'clerk42@example.com', $1)`,
		models.RoleShipper)
	if err != nil {
		t.Fatalf("Insert employee 42: %v", err)
	}

	pkg, err := store.CreatePackage(ctx, db, store.CreatePackageRequest{
		TrackingCode:      "ARD00000130127",
		StatusID:          statusRegistered,
		CustomerID:        7,
		WeightKg:          decimal.NewFromFloat(1.2),
		ShippingPrice:     decimal.NewFromInt(25),
		AdditionalCharges: decimal.Zero,
		CreatedBy:         42,
	})
	if err != nil {
		t.Fatalf("Create package: %v", err)
	}
	if pkg.StatusID != statusRegistered {
		t.Fatalf("Expected initial status %d, got %d", statusRegistered, pkg.StatusID)
	}

	before := time.Now()
	updated, change, err := store.UpdatePackageStatus(ctx, db, "ARD00000130127", statusReceived, 42, "Received at warehouse")
	if err != nil {
		t.Fatalf("Update package status: %v", err)
	}

	if updated.StatusID != statusReceived {
		t.Errorf("Expected current status %d, got %d", statusReceived, updated.StatusID)
	}
	if change.OldStatusID != statusRegistered || change.NewStatusID != statusReceived {
		t.Errorf("Expected change 1 -> 2, got %d -> %d", change.OldStatusID, change.NewStatusID)
	}
	if change.ChangedBy != 42 {
		t.Errorf("Expected actor 42, got %d", change.ChangedBy)
	}
	if change.Comment != "Received at warehouse" {
		t.Errorf("Unexpected comment %q", change.Comment)
	}
	if change.CreatedAt.Before(before.Add(-time.Minute)) || change.CreatedAt.After(time.Now().Add(time.Minute)) {
		t.Errorf("History timestamp %v not near now", change.CreatedAt)
	}

	history, err := store.GetPackageHistory(ctx, db, "ARD00000130127")
	if err != nil {
		t.Fatalf("Get package history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected exactly one history row, got %d", len(history))
	}
	if history[0].NewStatusID != updated.StatusID {
		t.Errorf("Current status %d does not match newest history row %d", updated.StatusID, history[0].NewStatusID)
	}
}

func TestStatusMatchesNewestHistoryRow(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	employee := createTestEmployee(t, db, "Status Walker", models.RoleManager)

	pkg, err := store.CreatePackage(ctx, db, store.CreatePackageRequest{
		StatusID:      statusRegistered,
		CustomerID:    5,
		WeightKg:      decimal.NewFromInt(3),
		ShippingPrice: decimal.NewFromInt(60),
		CreatedBy:     employee.ID,
	})
	if err != nil {
		t.Fatalf("Create package: %v", err)
	}

	for _, statusID := range []int64{statusReceived, statusInTransit, statusReceived} {
		if _, _, err := store.UpdatePackageStatus(ctx, db, pkg.TrackingCode, statusID, employee.ID, ""); err != nil {
			t.Fatalf("Update to %d: %v", statusID, err)
		}
	}

	current, err := store.GetPackageByTracking(ctx, db, pkg.TrackingCode)
	if err != nil {
		t.Fatalf("Get package: %v", err)
	}

	history, err := store.GetPackageHistory(ctx, db, pkg.TrackingCode)
	if err != nil {
		t.Fatalf("Get history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Expected 3 history rows, got %d", len(history))
	}
	if newest := history[len(history)-1]; newest.NewStatusID != current.StatusID {
		t.Errorf("Current status %d does not match newest history row %d", current.StatusID, newest.NewStatusID)
	}
}

func TestSameStatusResubmitAppendsRow(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	employee := createTestEmployee(t, db, "Repeat Submitter", models.RoleSupervisor)

	pkg, err := store.CreatePackage(ctx, db, store.CreatePackageRequest{
		StatusID:      statusReceived,
		CustomerID:    9,
		ShippingPrice: decimal.NewFromInt(10),
		CreatedBy:     employee.ID,
	})
	if err != nil {
		t.Fatalf("Create package: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, _, err := store.UpdatePackageStatus(ctx, db, pkg.TrackingCode, statusReceived, employee.ID, "confirmed"); err != nil {
			t.Fatalf("Re-submit %d: %v", i, err)
		}
	}

	history, err := store.GetPackageHistory(ctx, db, pkg.TrackingCode)
	if err != nil {
		t.Fatalf("Get history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Re-submitting the current status must append rows, got %d", len(history))
	}
	for _, change := range history {
		if change.OldStatusID != statusReceived || change.NewStatusID != statusReceived {
			t.Errorf("Expected 2 -> 2 rows, got %d -> %d", change.OldStatusID, change.NewStatusID)
		}
	}
}

func TestInvalidStatusRejectedWithoutPartialWrite(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	employee := createTestEmployee(t, db, "Fat Fingers", models.RoleCashier)

	pkg, err := store.CreatePackage(ctx, db, store.CreatePackageRequest{
		StatusID:      statusRegistered,
		CustomerID:    3,
		ShippingPrice: decimal.NewFromInt(15),
		CreatedBy:     employee.ID,
	})
	if err != nil {
		t.Fatalf("Create package: %v", err)
	}

	_, _, err = store.UpdatePackageStatus(ctx, db, pkg.TrackingCode, 9999, employee.ID, "bogus")
	if !errors.Is(err, database.ErrStatusNotFound) {
		t.Fatalf("Expected ErrStatusNotFound, got %v", err)
	}

	current, err := store.GetPackageByTracking(ctx, db, pkg.TrackingCode)
	if err != nil {
		t.Fatalf("Get package: %v", err)
	}
	if current.StatusID != statusRegistered {
		t.Errorf("Status changed despite validation failure: %d", current.StatusID)
	}

	history, err := store.GetPackageHistory(ctx, db, pkg.TrackingCode)
	if err != nil {
		t.Fatalf("Get history: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected no history rows after rejected update, got %d", len(history))
	}
}

func TestMissingPackageStatusUpdate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, err := store.UpdatePackageStatus(context.Background(), db, "ARD99999999999", statusReceived, 1, "")
	if !errors.Is(err, database.ErrPackageNotFound) {
		t.Errorf("Expected ErrPackageNotFound, got %v", err)
	}
}

func TestConcurrentStatusUpdatesKeepLedgerComplete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	employee := createTestEmployee(t, db, "Race Runner", models.RoleManager)

	pkg, err := store.CreatePackage(ctx, db, store.CreatePackageRequest{
		StatusID:      statusRegistered,
		CustomerID:    11,
		ShippingPrice: decimal.NewFromInt(30),
		CreatedBy:     employee.ID,
	})
	if err != nil {
		t.Fatalf("Create package: %v", err)
	}

	concurrency := 5
	var wg sync.WaitGroup
	errCh := make(chan error, concurrency)

	for i := 0; i < concurrency; i++ {
		statusID := statusReceived
		if i%2 == 1 {
			statusID = statusInTransit
		}

		wg.Add(1)
		go func(statusID int64) {
			defer wg.Done()
			if _, _, err := store.UpdatePackageStatus(ctx, db, pkg.TrackingCode, statusID, employee.ID, ""); err != nil {
				errCh <- err
			}
		}(statusID)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("Concurrent update failed: %v", err)
	}

	// Last write wins on the denormalized field, but every update leaves
	// its row in the ledger.
	history, err := store.GetPackageHistory(ctx, db, pkg.TrackingCode)
	if err != nil {
		t.Fatalf("Get history: %v", err)
	}
	if len(history) != concurrency {
		t.Errorf("Expected %d history rows, got %d", concurrency, len(history))
	}

	current, err := store.GetPackageByTracking(ctx, db, pkg.TrackingCode)
	if err != nil {
		t.Fatalf("Get package: %v", err)
	}
	if newest := history[len(history)-1]; newest.NewStatusID != current.StatusID {
		t.Errorf("Current status %d does not match newest ledger row %d", current.StatusID, newest.NewStatusID)
	}
}

func TestDuplicateTrackingRejected(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	employee := createTestEmployee(t, db, "Intake One", models.RoleShipper)

	req := store.CreatePackageRequest{
		TrackingCode:  "ARD00000000001",
		StatusID:      statusRegistered,
		CustomerID:    2,
		ShippingPrice: decimal.NewFromInt(20),
		CreatedBy:     employee.ID,
	}

	if _, err := store.CreatePackage(ctx, db, req); err != nil {
		t.Fatalf("Create package: %v", err)
	}

	_, err := store.CreatePackage(ctx, db, req)
	if !errors.Is(err, database.ErrDuplicateTracking) {
		t.Errorf("Expected ErrDuplicateTracking, got %v", err)
	}
}
