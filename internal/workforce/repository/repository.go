// Package repository implements employee and payroll persistence.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopwise_backend/platform/apperr"
)

const (
	employeeNotFoundMessage = "employee not found"
	uniqueViolation         = "23505"
)

// ErrDuplicateRun is returned when a payroll run already exists for a period.
var ErrDuplicateRun = errors.New("payroll run already exists for period")

// Employee is a staff member of one business.
type Employee struct {
	ID          uuid.UUID `db:"id"`
	BusinessID  uuid.UUID `db:"business_id"`
	FullName    string    `db:"full_name"`
	RoleTitle   string    `db:"role_title"`
	Phone       *string   `db:"phone"`
	NationalID  *string   `db:"national_id"`
	SalaryCents int64     `db:"salary_cents"`
	Active      bool      `db:"active"`
	HiredAt     time.Time `db:"hired_at"`
	CreatedAt   string    `db:"created_at"`
	UpdatedAt   string    `db:"updated_at"`
}

// PayrollRun is one executed payroll for a month.
type PayrollRun struct {
	ID                   uuid.UUID `db:"id"`
	BusinessID           uuid.UUID `db:"business_id"`
	Period               string    `db:"period"`
	TotalGrossCents      int64     `db:"total_gross_cents"`
	TotalDeductionsCents int64     `db:"total_deductions_cents"`
	TotalNetCents        int64     `db:"total_net_cents"`
	CreatedAt            string    `db:"created_at"`
}

// PayrollItem is one employee's line in a run.
type PayrollItem struct {
	ID              uuid.UUID `db:"id"`
	RunID           uuid.UUID `db:"run_id"`
	EmployeeID      uuid.UUID `db:"employee_id"`
	EmployeeName    string    `db:"employee_name"`
	GrossCents      int64     `db:"gross_cents"`
	DeductionsCents int64     `db:"deductions_cents"`
	NetCents        int64     `db:"net_cents"`
}

// CreateEmployeeParams contains data for creating an employee.
type CreateEmployeeParams struct {
	BusinessID  uuid.UUID
	FullName    string
	RoleTitle   string
	Phone       *string
	NationalID  *string
	SalaryCents int64
	HiredAt     time.Time
}

// UpdateEmployeeParams contains data for updating an employee.
type UpdateEmployeeParams struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	FullName    *string
	RoleTitle   *string
	Phone       *string
	NationalID  *string
	SalaryCents *int64
	Active      *bool
}

// ListEmployeesParams defines filters for listing employees.
type ListEmployeesParams struct {
	BusinessID uuid.UUID
	Search     string
	ActiveOnly bool
	Offset     int
	Limit      int
}

// Repo implements workforce persistence on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new workforce repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const employeeColumns = `id, business_id, full_name, role_title, phone, national_id,
		salary_cents, active, hired_at, created_at, updated_at`

// CreateEmployee inserts a staff member.
func (r *Repo) CreateEmployee(ctx context.Context, params CreateEmployeeParams) (Employee, error) {
	query := `
		INSERT INTO workforce_employees (
			business_id, full_name, role_title, phone, national_id, salary_cents, hired_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	employee, err := scanEmployee(r.pool.QueryRow(ctx, query,
		params.BusinessID, params.FullName, params.RoleTitle, params.Phone,
		params.NationalID, params.SalaryCents, params.HiredAt,
	))
	if err != nil {
		return Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return employee, nil
}

// UpdateEmployee patches a staff member.
func (r *Repo) UpdateEmployee(ctx context.Context, params UpdateEmployeeParams) (Employee, error) {
	query := `
		UPDATE workforce_employees
		SET
			full_name = COALESCE($3, full_name),
			role_title = COALESCE($4, role_title),
			phone = COALESCE($5, phone),
			national_id = COALESCE($6, national_id),
			salary_cents = COALESCE($7, salary_cents),
			active = COALESCE($8, active),
			updated_at = now()
		WHERE id = $1 AND business_id = $2
		RETURNING ` + employeeColumns

	employee, err := scanEmployee(r.pool.QueryRow(ctx, query,
		params.ID, params.BusinessID, params.FullName, params.RoleTitle,
		params.Phone, params.NationalID, params.SalaryCents, params.Active,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, apperr.NotFound(employeeNotFoundMessage)
		}
		return Employee{}, fmt.Errorf("update employee: %w", err)
	}
	return employee, nil
}

// DeleteEmployee removes a staff member.
func (r *Repo) DeleteEmployee(ctx context.Context, businessID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM workforce_employees WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(employeeNotFoundMessage)
	}
	return nil
}

// GetEmployeeByID fetches a staff member.
func (r *Repo) GetEmployeeByID(ctx context.Context, businessID, id uuid.UUID) (Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM workforce_employees WHERE id = $1 AND business_id = $2`
	employee, err := scanEmployee(r.pool.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, apperr.NotFound(employeeNotFoundMessage)
		}
		return Employee{}, fmt.Errorf("get employee by id: %w", err)
	}
	return employee, nil
}

// ListEmployees lists staff with search and pagination.
func (r *Repo) ListEmployees(ctx context.Context, params ListEmployeesParams) ([]Employee, int, error) {
	whereClauses := []string{"business_id = $1"}
	args := []interface{}{params.BusinessID}
	argIdx := 2

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(full_name ILIKE $%d OR role_title ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.ActiveOnly {
		whereClauses = append(whereClauses, "active")
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM workforce_employees WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM workforce_employees
		WHERE %s
		ORDER BY full_name ASC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	items := make([]Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		items = append(items, employee)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate employees: %w", rows.Err())
	}

	return items, total, nil
}

// ListActiveEmployees returns every active staff member for a payroll run.
func (r *Repo) ListActiveEmployees(ctx context.Context, businessID uuid.UUID) ([]Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM workforce_employees WHERE business_id = $1 AND active ORDER BY full_name ASC`
	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	defer rows.Close()

	items := make([]Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		items = append(items, employee)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate active employees: %w", rows.Err())
	}
	return items, nil
}

// CreatePayrollRun persists a run and its items in one transaction.
// A unique index on (business_id, period) rejects duplicate runs.
func (r *Repo) CreatePayrollRun(ctx context.Context, run PayrollRun, items []PayrollItem) (PayrollRun, []PayrollItem, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return PayrollRun{}, nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var createdAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO workforce_payroll_runs (
			business_id, period, total_gross_cents, total_deductions_cents, total_net_cents
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, run.BusinessID, run.Period, run.TotalGrossCents, run.TotalDeductionsCents, run.TotalNetCents).
		Scan(&run.ID, &createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return PayrollRun{}, nil, ErrDuplicateRun
		}
		return PayrollRun{}, nil, fmt.Errorf("create payroll run: %w", err)
	}
	run.CreatedAt = createdAt.Format(time.RFC3339)

	for i := range items {
		items[i].RunID = run.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO workforce_payroll_items (
				run_id, employee_id, gross_cents, deductions_cents, net_cents
			) VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, run.ID, items[i].EmployeeID, items[i].GrossCents, items[i].DeductionsCents, items[i].NetCents).
			Scan(&items[i].ID)
		if err != nil {
			return PayrollRun{}, nil, fmt.Errorf("create payroll item: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return PayrollRun{}, nil, err
	}
	return run, items, nil
}

// ListPayrollRuns lists run history, newest first.
func (r *Repo) ListPayrollRuns(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]PayrollRun, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM workforce_payroll_runs WHERE business_id = $1`, businessID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payroll runs: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, business_id, period, total_gross_cents, total_deductions_cents, total_net_cents, created_at
		FROM workforce_payroll_runs
		WHERE business_id = $1
		ORDER BY period DESC
		LIMIT $2 OFFSET $3
	`, businessID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list payroll runs: %w", err)
	}
	defer rows.Close()

	items := make([]PayrollRun, 0)
	for rows.Next() {
		var run PayrollRun
		var createdAt time.Time
		if err := rows.Scan(
			&run.ID, &run.BusinessID, &run.Period,
			&run.TotalGrossCents, &run.TotalDeductionsCents, &run.TotalNetCents, &createdAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan payroll run: %w", err)
		}
		run.CreatedAt = createdAt.Format(time.RFC3339)
		items = append(items, run)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate payroll runs: %w", rows.Err())
	}
	return items, total, nil
}

// GetPayrollRun fetches one run with its items.
func (r *Repo) GetPayrollRun(ctx context.Context, businessID, runID uuid.UUID) (PayrollRun, []PayrollItem, error) {
	var run PayrollRun
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT id, business_id, period, total_gross_cents, total_deductions_cents, total_net_cents, created_at
		FROM workforce_payroll_runs
		WHERE id = $1 AND business_id = $2
	`, runID, businessID).Scan(
		&run.ID, &run.BusinessID, &run.Period,
		&run.TotalGrossCents, &run.TotalDeductionsCents, &run.TotalNetCents, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PayrollRun{}, nil, apperr.NotFound("payroll run not found")
		}
		return PayrollRun{}, nil, fmt.Errorf("get payroll run: %w", err)
	}
	run.CreatedAt = createdAt.Format(time.RFC3339)

	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.run_id, i.employee_id, e.full_name, i.gross_cents, i.deductions_cents, i.net_cents
		FROM workforce_payroll_items i
		JOIN workforce_employees e ON e.id = i.employee_id
		WHERE i.run_id = $1
		ORDER BY e.full_name ASC
	`, run.ID)
	if err != nil {
		return PayrollRun{}, nil, fmt.Errorf("list payroll items: %w", err)
	}
	defer rows.Close()

	items := make([]PayrollItem, 0)
	for rows.Next() {
		var item PayrollItem
		if err := rows.Scan(
			&item.ID, &item.RunID, &item.EmployeeID, &item.EmployeeName,
			&item.GrossCents, &item.DeductionsCents, &item.NetCents,
		); err != nil {
			return PayrollRun{}, nil, fmt.Errorf("scan payroll item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return PayrollRun{}, nil, fmt.Errorf("iterate payroll items: %w", rows.Err())
	}
	return run, items, nil
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var employee Employee
	var createdAt, updatedAt time.Time
	if err := row.Scan(
		&employee.ID, &employee.BusinessID, &employee.FullName, &employee.RoleTitle,
		&employee.Phone, &employee.NationalID, &employee.SalaryCents, &employee.Active,
		&employee.HiredAt, &createdAt, &updatedAt,
	); err != nil {
		return Employee{}, err
	}
	employee.CreatedAt = createdAt.Format(time.RFC3339)
	employee.UpdatedAt = updatedAt.Format(time.RFC3339)
	return employee, nil
}
