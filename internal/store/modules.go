package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
)

func CreateModule(ctx context.Context, db *sql.DB, code, name string) (*models.Module, error) {
	module := &models.Module{}

	query := `
		INSERT INTO modules (code, name)
		VALUES ($1, $2)
		RETURNING id, code, name`

	err := db.QueryRowContext(ctx, query, code, name).Scan(
		&module.ID,
		&module.Code,
		&module.Name,
	)
	if err != nil {
		return nil, fmt.Errorf("create module: %w", err)
	}

	return module, nil
}

func GetModuleByCode(ctx context.Context, db *sql.DB, code string) (*models.Module, error) {
	module := &models.Module{}

	query := `SELECT id, code, name FROM modules WHERE code = $1`

	err := db.QueryRowContext(ctx, query, code).Scan(
		&module.ID,
		&module.Code,
		&module.Name,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrModuleNotFound
		}
		return nil, fmt.Errorf("get module: %w", err)
	}

	return module, nil
}

func ListModules(ctx context.Context, db *sql.DB) ([]models.Module, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, code, name FROM modules ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var module models.Module
		if err := rows.Scan(&module.ID, &module.Code, &module.Name); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		modules = append(modules, module)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return modules, nil
}

// GetPermissionLevel returns 0 when no cell exists for the pair, so a
// module never granted to a role reads as denied.
func GetPermissionLevel(ctx context.Context, db *sql.DB, moduleID int64, role models.Role) (int, error) {
	var level int

	query := `
		SELECT access_level
		FROM module_permissions
		WHERE module_id = $1 AND role = $2`

	err := db.QueryRowContext(ctx, query, moduleID, role).Scan(&level)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("get permission level: %w", err)
	}

	return level, nil
}

// SetPermissionLevel upserts exactly one (module, role) cell. Sibling
// cells are never touched.
func SetPermissionLevel(ctx context.Context, db *sql.DB, moduleID int64, role models.Role, level int) error {
	if !role.Valid() {
		return database.ErrInvalidRole
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO module_permissions (module_id, role, access_level)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (module_id, role) DO UPDATE SET access_level = EXCLUDED.access_level`,
		moduleID, role, level)
	if err != nil {
		return fmt.Errorf("set permission level: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	return nil
}

func ListPermissions(ctx context.Context, db *sql.DB, moduleID int64) ([]models.ModulePermission, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT module_id, role, access_level
		 FROM module_permissions
		 WHERE module_id = $1
		 ORDER BY role`,
		moduleID)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	var permissions []models.ModulePermission
	for rows.Next() {
		var permission models.ModulePermission
		if err := rows.Scan(&permission.ModuleID, &permission.Role, &permission.AccessLevel); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		permissions = append(permissions, permission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return permissions, nil
}
