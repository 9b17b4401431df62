package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
)

func CreateEmployee(ctx context.Context, db *sql.DB, fullName, email string, role models.Role) (*models.Employee, error) {
	if !role.Valid() {
		return nil, database.ErrInvalidRole
	}

	employee := &models.Employee{}

	query := `
		INSERT INTO employees (full_name, email, role, account_status, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW(), NOW())
		RETURNING id, full_name, email, role, account_status, is_deleted, created_at, updated_at`

	err := db.QueryRowContext(ctx, query, fullName, email, role, models.AccountStatusActive).Scan(
		&employee.ID,
		&employee.FullName,
		&employee.Email,
		&employee.Role,
		&employee.AccountStatus,
		&employee.IsDeleted,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	return employee, nil
}

func GetEmployee(ctx context.Context, db *sql.DB, id int64) (*models.Employee, error) {
	employee := &models.Employee{}

	query := `
		SELECT id, full_name, email, role, account_status, is_deleted, created_at, updated_at
		FROM employees
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&employee.ID,
		&employee.FullName,
		&employee.Email,
		&employee.Role,
		&employee.AccountStatus,
		&employee.IsDeleted,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}

	return employee, nil
}

func SetEmployeeAccountStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	if status != models.AccountStatusActive && status != models.AccountStatusDeactivated {
		return fmt.Errorf("unknown account status %q", status)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE employees SET account_status = $1, updated_at = NOW() WHERE id = $2 AND is_deleted = FALSE`,
		status, id)
	if err != nil {
		return fmt.Errorf("set account status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrEmployeeNotFound
	}

	return nil
}

// SoftDeleteEmployee flags the account; rows are never removed so the
// history ledgers keep valid actor references.
func SoftDeleteEmployee(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE employees SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("soft delete employee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrEmployeeNotFound
	}

	return nil
}

func ListEmployees(ctx context.Context, db *sql.DB, page, pageSize int) (*OffsetPage, error) {
	var total int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE is_deleted = FALSE`).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT id, full_name, email, role, account_status, is_deleted, created_at, updated_at
		FROM employees
		WHERE is_deleted = FALSE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var employee models.Employee
		err := rows.Scan(
			&employee.ID,
			&employee.FullName,
			&employee.Email,
			&employee.Role,
			&employee.AccountStatus,
			&employee.IsDeleted,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &OffsetPage{
		Items:      employees,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
