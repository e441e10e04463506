package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode = "23505"
	emailConstraintName = "employees_email_key"
)

// FindByID retrieves an employee from the database by their ID.
func (r *Repository) FindByID(ctx context.Context, identifier int64) (models.Employee, error) {
	defer r.observe("find_by_id", time.Now())

	query := `SELECT id, first_name, last_name, email FROM employees WHERE id = $1`

	employee, err := scanEmployee(r.db.QueryRow(ctx, query, identifier))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return employee, nil
}

// FindAll returns every stored employee ordered by id.
func (r *Repository) FindAll(ctx context.Context) ([]models.Employee, error) {
	defer r.observe("find_all", time.Now())

	query := `SELECT id, first_name, last_name, email FROM employees ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee rows: %w", err)
	}

	return employees, nil
}

// FindByEmail retrieves an employee by email address.
func (r *Repository) FindByEmail(ctx context.Context, email string) (models.Employee, error) {
	defer r.observe("find_by_email", time.Now())

	query := `SELECT id, first_name, last_name, email FROM employees WHERE email = $1`

	employee, err := scanEmployee(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return employee, nil
}

// Save updates the row with the employee's ID. When the ID is unassigned or no row has it,
// the employee is inserted under a newly generated ID. The stored row is returned.
func (r *Repository) Save(ctx context.Context, employee models.Employee) (models.Employee, error) {
	defer r.observe("save_employee", time.Now())

	if employee.ID != 0 {
		query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4
		WHERE id = $1
		RETURNING id, first_name, last_name, email;
	`
		saved, err := scanEmployee(r.db.QueryRow(ctx, query,
			employee.ID, employee.FirstName, employee.LastName, employee.Email))
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return models.Employee{}, saveError(employee, err)
		}
	}

	query := `
		INSERT INTO employees (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING id, first_name, last_name, email;
	`

	saved, err := scanEmployee(r.db.QueryRow(ctx, query, employee.FirstName, employee.LastName, employee.Email))
	if err != nil {
		return models.Employee{}, saveError(employee, err)
	}

	return saved, nil
}

func saveError(employee models.Employee, err error) error {
	if isEmailViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, employee.Email)
	}

	return fmt.Errorf("failed to save employee: %w", err)
}

// DeleteByID removes the employee with the given ID. Deleting a missing ID is not an error.
func (r *Repository) DeleteByID(ctx context.Context, identifier int64) error {
	defer r.observe("delete_by_id", time.Now())

	query := `DELETE FROM employees WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, identifier); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

// FindByFirstAndLastName looks an employee up by the exact first and last name pair.
// ErrMultipleFound is returned when more than one employee has that name.
func (r *Repository) FindByFirstAndLastName(
	ctx context.Context,
	firstName, lastName string,
) (models.Employee, error) {
	defer r.observe("find_by_name", time.Now())

	query := `SELECT id, first_name, last_name, email FROM employees WHERE first_name = $1 AND last_name = $2`

	employee, err := r.findOne(ctx, query, firstName, lastName)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by name: %w", err)
	}

	return employee, nil
}

// FindByFirstAndLastNameNamed is FindByFirstAndLastName with named parameter binding.
func (r *Repository) FindByFirstAndLastNameNamed(
	ctx context.Context,
	firstName, lastName string,
) (models.Employee, error) {
	defer r.observe("find_by_name_named", time.Now())

	query := `SELECT id, first_name, last_name, email FROM employees WHERE first_name = @firstName AND last_name = @lastName`
	args := pgx.NamedArgs{
		"firstName": firstName,
		"lastName":  lastName,
	}

	employee, err := r.findOne(ctx, query, args)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by name: %w", err)
	}

	return employee, nil
}

// findOne runs a query that must match exactly one employee.
func (r *Repository) findOne(ctx context.Context, query string, args ...any) (models.Employee, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, ErrNotFound
		}
		return models.Employee{}, err
	}

	employee, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (models.Employee, error) {
		var employee models.Employee
		scanErr := row.Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email)
		return employee, scanErr
	})
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return models.Employee{}, ErrNotFound
	case errors.Is(err, pgx.ErrTooManyRows):
		return models.Employee{}, ErrMultipleFound
	case err != nil:
		return models.Employee{}, err
	}

	return employee, nil
}

// scanEmployee reads a single employee row, translating an empty result into ErrNotFound.
func scanEmployee(row pgx.Row) (models.Employee, error) {
	var employee models.Employee

	err := row.Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Employee{}, ErrNotFound
	}
	if err != nil {
		return models.Employee{}, err
	}

	return employee, nil
}

func isEmailViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == emailConstraintName
}
