package postgres

import (
	"context"
	"database/sql"
	"errors"

	"talent-match/internal/domain/employee"

	"github.com/google/uuid"
)

const employeeColumns = `id, email, password_hash, name, department, position, role, is_active, created_at, updated_at`

// EmployeeRepository keeps prepared statements for the auth and profile lookups,
// which run on every login and token refresh.
type EmployeeRepository struct {
	stmtCreate       *sql.Stmt
	stmtGetByID      *sql.Stmt
	stmtGetByEmail   *sql.Stmt
	stmtExistsByMail *sql.Stmt
	stmtUpdate       *sql.Stmt
}

func NewEmployeeRepository(ctx context.Context, db *sql.DB) (*EmployeeRepository, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	r := &EmployeeRepository{}

	prepare := func(dst **sql.Stmt, query string) error {
		s, err := db.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}

	steps := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.stmtCreate, `INSERT INTO employees (id, email, password_hash, name, department, position, role, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`},
		{&r.stmtGetByID, `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`},
		{&r.stmtGetByEmail, `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`},
		{&r.stmtExistsByMail, `SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`},
		{&r.stmtUpdate, `UPDATE employees
			SET email = $2, password_hash = $3, name = $4, department = $5, position = $6, updated_at = now()
			WHERE id = $1`},
	}
	for _, st := range steps {
		if err := prepare(st.dst, st.query); err != nil {
			_ = r.Close()
			return nil, err
		}
	}

	return r, nil
}

func (r *EmployeeRepository) Close() error {
	var firstErr error
	for _, s := range []*sql.Stmt{r.stmtCreate, r.stmtGetByID, r.stmtGetByEmail, r.stmtExistsByMail, r.stmtUpdate} {
		if s == nil {
			continue
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, e employee.Employee) error {
	role := e.Role
	if role == "" {
		role = employee.RoleEmployee
	}
	_, err := r.stmtCreate.ExecContext(ctx, e.ID, e.Email, e.PasswordHash, e.Name, e.Department, e.Position, string(role), e.IsActive)
	return err
}

func (r *EmployeeRepository) GetEmployeeByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	return scanEmployee(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *EmployeeRepository) GetEmployeeByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return scanEmployee(r.stmtGetByEmail.QueryRowContext(ctx, email))
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.stmtExistsByMail.QueryRowContext(ctx, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, e employee.Employee) error {
	res, err := r.stmtUpdate.ExecContext(ctx, e.ID, e.Email, e.PasswordHash, e.Name, e.Department, e.Position)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return employee.ErrNotFound
	}
	return nil
}

type employeeRow interface {
	Scan(dest ...any) error
}

func scanEmployee(row employeeRow) (employee.Employee, error) {
	var e employee.Employee
	var role string
	err := row.Scan(&e.ID, &e.Email, &e.PasswordHash, &e.Name, &e.Department, &e.Position, &role, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrNotFound
		}
		return employee.Employee{}, err
	}
	e.Role = employee.Role(role)
	return e, nil
}
