package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

type CreatePackageRequest struct {
	TrackingCode      string
	CourierNumber     string
	StatusID          int64
	CustomerID        int64
	WeightKg          decimal.Decimal
	LengthCm          decimal.Decimal
	WidthCm           decimal.Decimal
	HeightCm          decimal.Decimal
	DeclaredAmount    decimal.Decimal
	ShippingPrice     decimal.Decimal
	AdditionalCharges decimal.Decimal
	PickupLocation    string
	CreatedBy         int64
}

func generateTrackingCode() string {
	return fmt.Sprintf("ARD%011d", time.Now().UnixNano()%100000000000)
}

const packageColumns = `id, tracking_code, courier_number, status_id, customer_id,
		weight_kg, length_cm, width_cm, height_cm,
		declared_amount, shipping_price, additional_charges, total_price,
		container_id, batch_id, pickup_location, in_cart, enabled,
		created_at, updated_at, updated_by`

func scanPackage(row interface{ Scan(...interface{}) error }) (*models.Package, error) {
	pkg := &models.Package{}
	err := row.Scan(
		&pkg.ID,
		&pkg.TrackingCode,
		&pkg.CourierNumber,
		&pkg.StatusID,
		&pkg.CustomerID,
		&pkg.WeightKg,
		&pkg.LengthCm,
		&pkg.WidthCm,
		&pkg.HeightCm,
		&pkg.DeclaredAmount,
		&pkg.ShippingPrice,
		&pkg.AdditionalCharges,
		&pkg.TotalPrice,
		&pkg.ContainerID,
		&pkg.BatchID,
		&pkg.PickupLocation,
		&pkg.InCart,
		&pkg.Enabled,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
		&pkg.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

func CreatePackage(ctx context.Context, db *sql.DB, req CreatePackageRequest) (*models.Package, error) {
	var pkg *models.Package

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if err := statusExists(ctx, tx, packageStatusTable, req.StatusID); err != nil {
			return err
		}

		trackingCode := req.TrackingCode
		if trackingCode == "" {
			trackingCode = generateTrackingCode()
		}

		totalPrice := req.ShippingPrice.Add(req.AdditionalCharges)

		query := `
			INSERT INTO packages (tracking_code, courier_number, status_id, customer_id,
				weight_kg, length_cm, width_cm, height_cm,
				declared_amount, shipping_price, additional_charges, total_price,
				pickup_location, in_cart, enabled, created_at, updated_at, updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, FALSE, TRUE, NOW(), NOW(), $14)
			RETURNING ` + packageColumns

		created, err := scanPackage(tx.QueryRowContext(ctx, query,
			trackingCode, req.CourierNumber, req.StatusID, req.CustomerID,
			req.WeightKg, req.LengthCm, req.WidthCm, req.HeightCm,
			req.DeclaredAmount, req.ShippingPrice, req.AdditionalCharges, totalPrice,
			req.PickupLocation, req.CreatedBy))
		if err != nil {
			if database.IsUniqueViolation(err) {
				return database.ErrDuplicateTracking
			}
			return fmt.Errorf("create package: %w", err)
		}

		pkg = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pkg, nil
}

func GetPackageByTracking(ctx context.Context, db *sql.DB, trackingCode string) (*models.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE tracking_code = $1`

	pkg, err := scanPackage(db.QueryRowContext(ctx, query, trackingCode))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrPackageNotFound
		}
		return nil, fmt.Errorf("get package: %w", err)
	}

	return pkg, nil
}

// UpdatePackageStatus writes the package's denormalized status and appends
// one history row as a single atomic unit. A failure anywhere rolls the
// whole operation back. Re-submitting the current status still appends a
// row; the ledger records every confirmation, not just net changes.
func UpdatePackageStatus(ctx context.Context, db *sql.DB, trackingCode string, newStatusID, changedBy int64, comment string) (*models.Package, *models.PackageStatusChange, error) {
	var (
		pkg    *models.Package
		change *models.PackageStatusChange
	)

	err := database.WithRetry(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var oldStatusID int64
		err := tx.QueryRowContext(ctx,
			`SELECT status_id FROM packages WHERE tracking_code = $1 FOR UPDATE`,
			trackingCode).Scan(&oldStatusID)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrPackageNotFound
			}
			return fmt.Errorf("lock package: %w", err)
		}

		if err := statusExists(ctx, tx, packageStatusTable, newStatusID); err != nil {
			return err
		}

		updated, err := scanPackage(tx.QueryRowContext(ctx,
			`UPDATE packages
			 SET status_id = $1, updated_by = $2, updated_at = NOW()
			 WHERE tracking_code = $3
			 RETURNING `+packageColumns,
			newStatusID, changedBy, trackingCode))
		if err != nil {
			return fmt.Errorf("update package status: %w", err)
		}

		appended, err := appendPackageHistory(ctx, tx, trackingCode, oldStatusID, newStatusID, changedBy, comment)
		if err != nil {
			return err
		}

		pkg = updated
		change = appended
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return pkg, change, nil
}

// AssignPackageToContainer overwrites the package's single container link;
// a nil containerID clears it. Membership changes are not historized, only
// status changes are.
func AssignPackageToContainer(ctx context.Context, db *sql.DB, trackingCode string, containerID *int64) (*models.Package, error) {
	if containerID != nil {
		if _, err := GetContainer(ctx, db, *containerID); err != nil {
			return nil, err
		}
	}

	pkg, err := scanPackage(db.QueryRowContext(ctx,
		`UPDATE packages SET container_id = $1, updated_at = NOW()
		 WHERE tracking_code = $2
		 RETURNING `+packageColumns,
		containerID, trackingCode))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrPackageNotFound
		}
		return nil, fmt.Errorf("assign package to container: %w", err)
	}

	return pkg, nil
}

func AssignPackageToBatch(ctx context.Context, db *sql.DB, trackingCode string, batchID *int64) (*models.Package, error) {
	if batchID != nil {
		if _, err := GetBatch(ctx, db, *batchID); err != nil {
			return nil, err
		}
	}

	pkg, err := scanPackage(db.QueryRowContext(ctx,
		`UPDATE packages SET batch_id = $1, updated_at = NOW()
		 WHERE tracking_code = $2
		 RETURNING `+packageColumns,
		batchID, trackingCode))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrPackageNotFound
		}
		return nil, fmt.Errorf("assign package to batch: %w", err)
	}

	return pkg, nil
}

func ListPackagesCursor(ctx context.Context, db *sql.DB, cursor string, limit int) (*CursorPage, error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	query := `
		SELECT ` + packageColumns + `
		FROM packages
		WHERE (created_at, id) < ($1, $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`

	rows, err := db.QueryContext(ctx, query, cursorData.CreatedAt, cursorData.ID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		packages = append(packages, *pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	hasMore := len(packages) > limit
	if hasMore {
		packages = packages[:limit]
	}

	var nextCursor string
	if hasMore && len(packages) > 0 {
		last := packages[len(packages)-1]
		nextCursor = EncodeCursor(PackageCursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	return &CursorPage{
		Items:      packages,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func ListContainerPackages(ctx context.Context, db *sql.DB, containerID int64) ([]models.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE container_id = $1 ORDER BY created_at, id`

	rows, err := db.QueryContext(ctx, query, containerID)
	if err != nil {
		return nil, fmt.Errorf("list container packages: %w", err)
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		packages = append(packages, *pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return packages, nil
}
