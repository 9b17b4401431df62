package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
)

type CreateContainerRequest struct {
	Number        string
	TransportMode string
	Origin        string
	Destination   string
	DepartureDate *time.Time
	ArrivalDate   *time.Time
	StatusID      int64
	CreatedBy     int64
}

const containerColumns = `id, number, transport_mode, origin, destination,
		departure_date, arrival_date, status_id,
		total_weight_kg, piece_count, total_volume_m3,
		manifest_path, customs_path, created_at, updated_at, updated_by`

func scanContainer(row interface{ Scan(...interface{}) error }) (*models.Container, error) {
	container := &models.Container{}
	err := row.Scan(
		&container.ID,
		&container.Number,
		&container.TransportMode,
		&container.Origin,
		&container.Destination,
		&container.DepartureDate,
		&container.ArrivalDate,
		&container.StatusID,
		&container.TotalWeightKg,
		&container.PieceCount,
		&container.TotalVolumeM3,
		&container.ManifestPath,
		&container.CustomsPath,
		&container.CreatedAt,
		&container.UpdatedAt,
		&container.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return container, nil
}

func validTransportMode(mode string) bool {
	switch mode {
	case models.TransportModeAir, models.TransportModeSea, models.TransportModeExpress:
		return true
	}
	return false
}

func CreateContainer(ctx context.Context, db *sql.DB, req CreateContainerRequest) (*models.Container, error) {
	if !validTransportMode(req.TransportMode) {
		return nil, fmt.Errorf("unknown transport mode %q", req.TransportMode)
	}

	var container *models.Container

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if err := statusExists(ctx, tx, containerStatusTable, req.StatusID); err != nil {
			return err
		}

		query := `
			INSERT INTO containers (number, transport_mode, origin, destination,
				departure_date, arrival_date, status_id,
				total_weight_kg, piece_count, total_volume_m3,
				created_at, updated_at, updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, 0, NOW(), NOW(), $8)
			RETURNING ` + containerColumns

		created, err := scanContainer(tx.QueryRowContext(ctx, query,
			req.Number, req.TransportMode, req.Origin, req.Destination,
			req.DepartureDate, req.ArrivalDate, req.StatusID, req.CreatedBy))
		if err != nil {
			return fmt.Errorf("create container: %w", err)
		}

		container = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return container, nil
}

func GetContainer(ctx context.Context, db *sql.DB, id int64) (*models.Container, error) {
	query := `SELECT ` + containerColumns + ` FROM containers WHERE id = $1`

	container, err := scanContainer(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrContainerNotFound
		}
		return nil, fmt.Errorf("get container: %w", err)
	}

	return container, nil
}

// UpdateContainerStatus mirrors the package status update: denormalized
// status write plus one ledger row, atomic as a unit.
func UpdateContainerStatus(ctx context.Context, db *sql.DB, containerID, newStatusID, changedBy int64, comment string) (*models.Container, *models.ContainerStatusChange, error) {
	var (
		container *models.Container
		change    *models.ContainerStatusChange
	)

	err := database.WithRetry(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var oldStatusID int64
		err := tx.QueryRowContext(ctx,
			`SELECT status_id FROM containers WHERE id = $1 FOR UPDATE`,
			containerID).Scan(&oldStatusID)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrContainerNotFound
			}
			return fmt.Errorf("lock container: %w", err)
		}

		if err := statusExists(ctx, tx, containerStatusTable, newStatusID); err != nil {
			return err
		}

		updated, err := scanContainer(tx.QueryRowContext(ctx,
			`UPDATE containers
			 SET status_id = $1, updated_by = $2, updated_at = NOW()
			 WHERE id = $3
			 RETURNING `+containerColumns,
			newStatusID, changedBy, containerID))
		if err != nil {
			return fmt.Errorf("update container status: %w", err)
		}

		appended, err := appendContainerHistory(ctx, tx, containerID, oldStatusID, newStatusID, changedBy, comment)
		if err != nil {
			return err
		}

		container = updated
		change = appended
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return container, change, nil
}

// RefreshContainerTotals recomputes the denormalized aggregates from the
// container's current package membership. The ledger does not do this
// automatically; callers invoke it after membership changes.
func RefreshContainerTotals(ctx context.Context, db *sql.DB, containerID int64) (*models.Container, error) {
	container, err := scanContainer(db.QueryRowContext(ctx,
		`UPDATE containers c
		 SET total_weight_kg = agg.weight,
		     piece_count = agg.pieces,
		     total_volume_m3 = agg.volume,
		     updated_at = NOW()
		 FROM (
			SELECT COALESCE(SUM(weight_kg), 0) AS weight,
			       COUNT(*) AS pieces,
			       COALESCE(SUM(length_cm * width_cm * height_cm / 1000000), 0) AS volume
			FROM packages
			WHERE container_id = $1
		 ) agg
		 WHERE c.id = $1
		 RETURNING `+prefixedContainerColumns("c"),
		containerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrContainerNotFound
		}
		return nil, fmt.Errorf("refresh container totals: %w", err)
	}

	return container, nil
}

func prefixedContainerColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.number, %[1]s.transport_mode, %[1]s.origin, %[1]s.destination,
		%[1]s.departure_date, %[1]s.arrival_date, %[1]s.status_id,
		%[1]s.total_weight_kg, %[1]s.piece_count, %[1]s.total_volume_m3,
		%[1]s.manifest_path, %[1]s.customs_path, %[1]s.created_at, %[1]s.updated_at, %[1]s.updated_by`, alias)
}

// SetContainerDocuments records the derived document paths (manifest,
// customs form) produced outside this core.
func SetContainerDocuments(ctx context.Context, db *sql.DB, containerID int64, manifestPath, customsPath string) (*models.Container, error) {
	container, err := scanContainer(db.QueryRowContext(ctx,
		`UPDATE containers SET manifest_path = $1, customs_path = $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING `+containerColumns,
		manifestPath, customsPath, containerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrContainerNotFound
		}
		return nil, fmt.Errorf("set container documents: %w", err)
	}

	return container, nil
}
