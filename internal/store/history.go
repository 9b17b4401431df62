package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ardlogistics/backoffice/internal/models"
)

// The history tables are append-only ledgers. Rows are only ever written
// from inside the status-update transactions and never updated or deleted.

func appendPackageHistory(ctx context.Context, tx *sql.Tx, trackingCode string, oldStatusID, newStatusID, changedBy int64, comment string) (*models.PackageStatusChange, error) {
	change := &models.PackageStatusChange{}

	query := `
		INSERT INTO package_change_history (tracking_code, old_status_id, new_status_id, changed_by, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, tracking_code, old_status_id, new_status_id, changed_by, comment, created_at`

	err := tx.QueryRowContext(ctx, query, trackingCode, oldStatusID, newStatusID, changedBy, comment).Scan(
		&change.ID,
		&change.TrackingCode,
		&change.OldStatusID,
		&change.NewStatusID,
		&change.ChangedBy,
		&change.Comment,
		&change.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("append package history: %w", err)
	}

	return change, nil
}

func appendContainerHistory(ctx context.Context, tx *sql.Tx, containerID, oldStatusID, newStatusID, changedBy int64, comment string) (*models.ContainerStatusChange, error) {
	change := &models.ContainerStatusChange{}

	query := `
		INSERT INTO container_change_history (container_id, old_status_id, new_status_id, changed_by, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, container_id, old_status_id, new_status_id, changed_by, comment, created_at`

	err := tx.QueryRowContext(ctx, query, containerID, oldStatusID, newStatusID, changedBy, comment).Scan(
		&change.ID,
		&change.ContainerID,
		&change.OldStatusID,
		&change.NewStatusID,
		&change.ChangedBy,
		&change.Comment,
		&change.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("append container history: %w", err)
	}

	return change, nil
}

func GetPackageHistory(ctx context.Context, db *sql.DB, trackingCode string) ([]models.PackageStatusChange, error) {
	query := `
		SELECT id, tracking_code, old_status_id, new_status_id, changed_by, comment, created_at
		FROM package_change_history
		WHERE tracking_code = $1
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query, trackingCode)
	if err != nil {
		return nil, fmt.Errorf("get package history: %w", err)
	}
	defer rows.Close()

	var changes []models.PackageStatusChange
	for rows.Next() {
		var change models.PackageStatusChange
		err := rows.Scan(
			&change.ID,
			&change.TrackingCode,
			&change.OldStatusID,
			&change.NewStatusID,
			&change.ChangedBy,
			&change.Comment,
			&change.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan package history: %w", err)
		}
		changes = append(changes, change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return changes, nil
}

func GetContainerHistory(ctx context.Context, db *sql.DB, containerID int64) ([]models.ContainerStatusChange, error) {
	query := `
		SELECT id, container_id, old_status_id, new_status_id, changed_by, comment, created_at
		FROM container_change_history
		WHERE container_id = $1
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query, containerID)
	if err != nil {
		return nil, fmt.Errorf("get container history: %w", err)
	}
	defer rows.Close()

	var changes []models.ContainerStatusChange
	for rows.Next() {
		var change models.ContainerStatusChange
		err := rows.Scan(
			&change.ID,
			&change.ContainerID,
			&change.OldStatusID,
			&change.NewStatusID,
			&change.ChangedBy,
			&change.Comment,
			&change.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan container history: %w", err)
		}
		changes = append(changes, change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return changes, nil
}
