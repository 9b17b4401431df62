package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
	"github.com/ardlogistics/backoffice/internal/store"
)

func TestPackageBalance(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cashier := createTestEmployee(t, db, "Front Desk", models.RoleCashier)

	pkg, err := store.CreatePackage(ctx, db, store.CreatePackageRequest{
		StatusID:          statusReceived,
		CustomerID:        8,
		ShippingPrice:     decimal.NewFromInt(80),
		AdditionalCharges: decimal.NewFromInt(20),
		CreatedBy:         cashier.ID,
	})
	if err != nil {
		t.Fatalf("Create package: %v", err)
	}

	if !pkg.TotalPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("Expected total price 100, got %s", pkg.TotalPrice)
	}

	balance, err := store.GetPackageBalance(ctx, db, pkg.TrackingCode)
	if err != nil {
		t.Fatalf("Get balance before payments: %v", err)
	}
	if !balance.Outstanding.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected outstanding 100, got %s", balance.Outstanding)
	}

	for _, amount := range []int64{60, 25} {
		if _, err := store.RecordPayment(ctx, db, pkg.TrackingCode, decimal.NewFromInt(amount), "cash", "", cashier.ID); err != nil {
			t.Fatalf("Record payment %d: %v", amount, err)
		}
	}

	balance, err = store.GetPackageBalance(ctx, db, pkg.TrackingCode)
	if err != nil {
		t.Fatalf("Get balance after payments: %v", err)
	}
	if !balance.AmountPaid.Equal(decimal.NewFromInt(85)) {
		t.Errorf("Expected amount paid 85, got %s", balance.AmountPaid)
	}
	if !balance.Outstanding.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected outstanding 15, got %s", balance.Outstanding)
	}

	payments, err := store.ListPayments(ctx, db, pkg.TrackingCode)
	if err != nil {
		t.Fatalf("List payments: %v", err)
	}
	if len(payments) != 2 {
		t.Errorf("Expected 2 payment rows, got %d", len(payments))
	}
}

func TestOverpaymentReadsAsZeroDue(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cashier := createTestEmployee(t, db, "Generous Clerk", models.RoleCashier)

	pkg, err := store.CreatePackage(ctx, db, store.CreatePackageRequest{
		StatusID:      statusReceived,
		CustomerID:    4,
		ShippingPrice: decimal.NewFromInt(30),
		CreatedBy:     cashier.ID,
	})
	if err != nil {
		t.Fatalf("Create package: %v", err)
	}

	if _, err := store.RecordPayment(ctx, db, pkg.TrackingCode, decimal.NewFromInt(50), "card", "txn-1", cashier.ID); err != nil {
		t.Fatalf("Record payment: %v", err)
	}

	balance, err := store.GetPackageBalance(ctx, db, pkg.TrackingCode)
	if err != nil {
		t.Fatalf("Get balance: %v", err)
	}
	if !balance.Outstanding.Equal(decimal.Zero) {
		t.Errorf("Expected zero outstanding on overpayment, got %s", balance.Outstanding)
	}
}

func TestPaymentRequiresExistingPackage(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := store.RecordPayment(context.Background(), db, "ARD00000000404", decimal.NewFromInt(10), "cash", "", 1)
	if !errors.Is(err, database.ErrPackageNotFound) {
		t.Errorf("Expected ErrPackageNotFound, got %v", err)
	}
}
