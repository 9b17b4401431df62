package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
	"github.com/google/uuid"
)

const batchColumns = `id, number, locked, lock_date, unlock_code, unlocked_by, unlocked_at, created_at`

func scanBatch(row interface{ Scan(...interface{}) error }) (*models.Batch, error) {
	batch := &models.Batch{}
	err := row.Scan(
		&batch.ID,
		&batch.Number,
		&batch.Locked,
		&batch.LockDate,
		&batch.UnlockCode,
		&batch.UnlockedBy,
		&batch.UnlockedAt,
		&batch.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// CreateBatch opens a new processing run in the locked state with a fresh
// unlock code. The code is returned once here; sharing it with the floor
// supervisor happens outside this system.
func CreateBatch(ctx context.Context, db *sql.DB, number string) (*models.Batch, error) {
	unlockCode := uuid.New().String()

	query := `
		INSERT INTO batches (number, locked, lock_date, unlock_code, created_at)
		VALUES ($1, TRUE, NOW(), $2, NOW())
		RETURNING ` + batchColumns

	batch, err := scanBatch(db.QueryRowContext(ctx, query, number, unlockCode))
	if err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	return batch, nil
}

func GetBatch(ctx context.Context, db *sql.DB, id int64) (*models.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`

	batch, err := scanBatch(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrBatchNotFound
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}

	return batch, nil
}

// UnlockBatch compares the submitted code for equality and, only on a
// match, records the unlock with the acting employee. A wrong code writes
// nothing. Unlocking an already-unlocked batch is permitted and refreshes
// the actor and timestamp.
func UnlockBatch(ctx context.Context, db *sql.DB, id int64, code string, employeeID int64) (*models.Batch, error) {
	var batch *models.Batch

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var storedCode string
		err := tx.QueryRowContext(ctx,
			`SELECT unlock_code FROM batches WHERE id = $1 FOR UPDATE`,
			id).Scan(&storedCode)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrBatchNotFound
			}
			return fmt.Errorf("lock batch row: %w", err)
		}

		if code != storedCode {
			return database.ErrInvalidUnlockCode
		}

		unlocked, err := scanBatch(tx.QueryRowContext(ctx,
			`UPDATE batches
			 SET locked = FALSE, unlocked_by = $1, unlocked_at = NOW()
			 WHERE id = $2
			 RETURNING `+batchColumns,
			employeeID, id))
		if err != nil {
			return fmt.Errorf("unlock batch: %w", err)
		}

		batch = unlocked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return batch, nil
}

// LockBatch re-locks a batch for another processing run with a fresh lock
// date and a new unlock code. The previous unlock audit fields are cleared.
func LockBatch(ctx context.Context, db *sql.DB, id int64) (*models.Batch, error) {
	unlockCode := uuid.New().String()

	batch, err := scanBatch(db.QueryRowContext(ctx,
		`UPDATE batches
		 SET locked = TRUE, lock_date = NOW(), unlock_code = $1, unlocked_by = NULL, unlocked_at = NULL
		 WHERE id = $2
		 RETURNING `+batchColumns,
		unlockCode, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrBatchNotFound
		}
		return nil, fmt.Errorf("lock batch: %w", err)
	}

	return batch, nil
}
