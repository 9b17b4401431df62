package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
)

// Packages and containers each have their own status taxonomy table with
// an identical shape. The table name is fixed by the caller, never by
// request input.
const (
	packageStatusTable   = "package_statuses"
	containerStatusTable = "container_statuses"
)

func createStatus(ctx context.Context, db *sql.DB, table, name string, sortOrder int, color string) (*models.Status, error) {
	status := &models.Status{}

	query := fmt.Sprintf(`
		INSERT INTO %s (name, sort_order, color)
		VALUES ($1, $2, $3)
		RETURNING id, name, sort_order, color`, table)

	err := db.QueryRowContext(ctx, query, name, sortOrder, color).Scan(
		&status.ID,
		&status.Name,
		&status.SortOrder,
		&status.Color,
	)
	if err != nil {
		return nil, fmt.Errorf("create status: %w", err)
	}

	return status, nil
}

func CreatePackageStatus(ctx context.Context, db *sql.DB, name string, sortOrder int, color string) (*models.Status, error) {
	return createStatus(ctx, db, packageStatusTable, name, sortOrder, color)
}

func CreateContainerStatus(ctx context.Context, db *sql.DB, name string, sortOrder int, color string) (*models.Status, error) {
	return createStatus(ctx, db, containerStatusTable, name, sortOrder, color)
}

func listStatuses(ctx context.Context, db *sql.DB, table string) ([]models.Status, error) {
	query := fmt.Sprintf(`SELECT id, name, sort_order, color FROM %s ORDER BY sort_order`, table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []models.Status
	for rows.Next() {
		var status models.Status
		if err := rows.Scan(&status.ID, &status.Name, &status.SortOrder, &status.Color); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		statuses = append(statuses, status)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return statuses, nil
}

func ListPackageStatuses(ctx context.Context, db *sql.DB) ([]models.Status, error) {
	return listStatuses(ctx, db, packageStatusTable)
}

func ListContainerStatuses(ctx context.Context, db *sql.DB) ([]models.Status, error) {
	return listStatuses(ctx, db, containerStatusTable)
}

// statusExists validates a status code against its taxonomy inside the
// same transaction that performs the status write.
func statusExists(ctx context.Context, tx *sql.Tx, table string, id int64) error {
	var exists bool

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, table)

	if err := tx.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("check status exists: %w", err)
	}
	if !exists {
		return database.ErrStatusNotFound
	}

	return nil
}
