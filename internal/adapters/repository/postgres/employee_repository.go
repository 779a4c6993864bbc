package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/service-award/internal/core/employee"
	"github.com/ogurasousui/service-award/internal/core/roster"
	pgdb "github.com/ogurasousui/service-award/internal/platform/db/postgres"
)

const (
	queryCanceledCode  = "57014"
	undefinedTableCode = "42P01"
	employeeColumns    = `id, employee_id, employee_name, employee_email, to_char(hire_date, 'YYYY-MM-DD') AS hire_date, manager_name, manager_email`
)

// ErrSchemaNotMigrated は employees テーブルが存在しない場合に返されます。
var ErrSchemaNotMigrated = errors.New("postgres: employees table is missing, run migrations")

// EmployeeRepository は PostgreSQL を利用した社員データ取得の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// ListAll は全社員を ID 順で取得します。
func (r *EmployeeRepository) ListAll(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         ORDER BY id
    `)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// ListReportingTo は manager_email を起点に再帰的に配下の社員を取得します。
// 循環した上長関係があっても同じ社員を二度辿りません。
func (r *EmployeeRepository) ListReportingTo(ctx context.Context, managerEmail string) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        WITH RECURSIVE team AS (
            SELECT e.id, e.employee_id, e.employee_name, e.employee_email, e.hire_date, e.manager_name, e.manager_email,
                   ARRAY[lower($1::text), lower(e.employee_email)] AS path
              FROM employees e
             WHERE lower(e.manager_email) = lower($1::text)
            UNION ALL
            SELECT c.id, c.employee_id, c.employee_name, c.employee_email, c.hire_date, c.manager_name, c.manager_email,
                   t.path || lower(c.employee_email)
              FROM employees c
              JOIN team t ON lower(c.manager_email) = lower(t.employee_email)
             WHERE NOT lower(c.employee_email) = ANY(t.path)
        )
        SELECT `+employeeColumns+`
          FROM team
         ORDER BY id
    `, managerEmail)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

func collectEmployees(rows pgx.Rows) ([]*employee.Employee, error) {
	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return employees, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id           int64
		employeeID   int64
		name         string
		email        string
		hireDate     sql.NullString
		managerName  sql.NullString
		managerEmail sql.NullString
	)

	if err := row.Scan(
		&id,
		&employeeID,
		&name,
		&email,
		&hireDate,
		&managerName,
		&managerEmail,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	// DATE の infinity などは暦日として扱えないため ErrInvalidHireDate を返す
	hire, err := roster.ParseHireDate(hireDate.String)
	if err != nil {
		return nil, fmt.Errorf("employee %d: %w", id, err)
	}

	return &employee.Employee{
		ID:           id,
		EmployeeID:   employeeID,
		Name:         name,
		Email:        email,
		HireDate:     hire,
		ManagerName:  managerName.String,
		ManagerEmail: managerEmail.String,
	}, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case undefinedTableCode:
			return errors.Join(ErrSchemaNotMigrated, err)
		case queryCanceledCode:
			return errors.Join(context.Canceled, err)
		}
	}

	return err
}
