package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

func RecordPayment(ctx context.Context, db *sql.DB, trackingCode string, amount decimal.Decimal, method, processorRef string, receivedBy int64) (*models.Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("payment amount must be positive, got %s", amount)
	}

	var payment *models.Payment

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM packages WHERE tracking_code = $1)`,
			trackingCode).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check package exists: %w", err)
		}
		if !exists {
			return database.ErrPackageNotFound
		}

		payment = &models.Payment{}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO payments (tracking_code, amount_paid, method, processor_ref, received_by, created_at)
			 VALUES ($1, $2, $3, $4, $5, NOW())
			 RETURNING id, tracking_code, amount_paid, method, processor_ref, received_by, created_at`,
			trackingCode, amount, method, processorRef, receivedBy).Scan(
			&payment.ID,
			&payment.TrackingCode,
			&payment.AmountPaid,
			&payment.Method,
			&payment.ProcessorRef,
			&payment.ReceivedBy,
			&payment.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("record payment: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func ListPayments(ctx context.Context, db *sql.DB, trackingCode string) ([]models.Payment, error) {
	query := `
		SELECT id, tracking_code, amount_paid, method, processor_ref, received_by, created_at
		FROM payments
		WHERE tracking_code = $1
		ORDER BY created_at, id`

	rows, err := db.QueryContext(ctx, query, trackingCode)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.TrackingCode,
			&payment.AmountPaid,
			&payment.Method,
			&payment.ProcessorRef,
			&payment.ReceivedBy,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return payments, nil
}

// GetPackageBalance sums the payment ledger against the package's total
// price. Outstanding never goes negative; overpayments read as zero due.
func GetPackageBalance(ctx context.Context, db *sql.DB, trackingCode string) (*models.PackageBalance, error) {
	balance := &models.PackageBalance{TrackingCode: trackingCode}

	query := `
		SELECT p.total_price, COALESCE(SUM(pay.amount_paid), 0)
		FROM packages p
		LEFT JOIN payments pay ON pay.tracking_code = p.tracking_code
		WHERE p.tracking_code = $1
		GROUP BY p.total_price`

	err := db.QueryRowContext(ctx, query, trackingCode).Scan(&balance.TotalPrice, &balance.AmountPaid)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrPackageNotFound
		}
		return nil, fmt.Errorf("get package balance: %w", err)
	}

	balance.Outstanding = balance.TotalPrice.Sub(balance.AmountPaid)
	if balance.Outstanding.IsNegative() {
		balance.Outstanding = decimal.Zero
	}

	return balance, nil
}
