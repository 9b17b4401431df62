// Package authz implements the per-module, per-role authorization matrix.
// The gate is advisory: it controls which back-office modules an employee
// can reach, and every decision fails closed.
package authz

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
	"github.com/ardlogistics/backoffice/internal/store"
)

type Gate struct {
	db *sql.DB
}

func NewGate(db *sql.DB) *Gate {
	return &Gate{db: db}
}

// Allowed decides whether a role may use a module. Unknown roles, unknown
// modules and missing matrix cells all deny; denials for unknown inputs
// are logged because they usually indicate drift between the role
// vocabulary and the matrix.
func (g *Gate) Allowed(ctx context.Context, role models.Role, moduleCode string) (bool, error) {
	if !role.Valid() {
		log.Printf("authz: deny unknown role %q for module %q", role, moduleCode)
		return false, nil
	}

	module, err := store.GetModuleByCode(ctx, g.db, moduleCode)
	if err != nil {
		if errors.Is(err, database.ErrModuleNotFound) {
			log.Printf("authz: deny role %q for unknown module %q", role, moduleCode)
			return false, nil
		}
		return false, err
	}

	level, err := store.GetPermissionLevel(ctx, g.db, module.ID, role)
	if err != nil {
		return false, err
	}

	return level > 0, nil
}

// SetPermission toggles exactly one (module, role) cell of the matrix.
func (g *Gate) SetPermission(ctx context.Context, moduleCode string, role models.Role, level int) error {
	module, err := store.GetModuleByCode(ctx, g.db, moduleCode)
	if err != nil {
		return err
	}

	return store.SetPermissionLevel(ctx, g.db, module.ID, role, level)
}

type MatrixRow struct {
	Module      models.Module       `json:"module"`
	Permissions map[models.Role]int `json:"permissions"`
}

// Matrix returns the full enablement table for the admin screen. Every
// known role appears in every row; cells without a stored level read as 0.
func (g *Gate) Matrix(ctx context.Context) ([]MatrixRow, error) {
	modules, err := store.ListModules(ctx, g.db)
	if err != nil {
		return nil, err
	}

	matrix := make([]MatrixRow, 0, len(modules))
	for _, module := range modules {
		permissions, err := store.ListPermissions(ctx, g.db, module.ID)
		if err != nil {
			return nil, err
		}

		row := MatrixRow{
			Module:      module,
			Permissions: make(map[models.Role]int, len(models.AllRoles())),
		}
		for _, role := range models.AllRoles() {
			row.Permissions[role] = 0
		}
		for _, permission := range permissions {
			row.Permissions[permission.Role] = permission.AccessLevel
		}

		matrix = append(matrix, row)
	}

	return matrix, nil
}
