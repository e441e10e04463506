package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

// ErrEmployeeExists is returned when another employee already uses the given email.
var ErrEmployeeExists = errors.New("employee already exist with given email")

type Staff struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) *Staff {
	return &Staff{log: log, repo: repo, metrics: metrics}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		sl.Op(opn),
		slog.String("division", "employee"),
	)
}

// SaveEmployee creates a new employee unless one with the same email already exists.
//
// The lookup and the insert are separate statements; two concurrent calls with the
// same email are settled by the unique constraint on employees.email, which the
// repository reports as repository.ErrDuplicateEmail.
func (s *Staff) SaveEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	const opn = "Employee.SaveEmployee"
	log := s.initLogger(opn)

	_, err := s.repo.FindByEmail(ctx, employee.Email)
	switch {
	case err == nil:
		log.InfoContext(ctx, "Employee with this email already exists", "email", employee.Email)
		s.metrics.DuplicateEmails.Inc()
		return models.Employee{}, fmt.Errorf("%w: %s", ErrEmployeeExists, employee.Email)
	case !errors.Is(err, repository.ErrNotFound):
		return models.Employee{}, fmt.Errorf("failed to check employee email: %w", err)
	}

	saved, err := s.repo.Save(ctx, employee)
	if err != nil {
		return models.Employee{}, s.translateSaveError(ctx, log, employee, err)
	}

	s.metrics.EmployeesCreated.Inc()
	log.DebugContext(ctx, "Employee created", "id", saved.ID)

	return saved, nil
}

// GetAllEmployees returns every stored employee.
func (s *Staff) GetAllEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	return employees, nil
}

// GetEmployeeByID returns the employee and true, or false when no employee has this ID.
func (s *Staff) GetEmployeeByID(ctx context.Context, identifier int64) (models.Employee, bool, error) {
	employee, err := s.repo.FindByID(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Employee{}, false, nil
		}
		return models.Employee{}, false, fmt.Errorf("failed to get employee %d: %w", identifier, err)
	}

	return employee, true, nil
}

// UpdateEmployee overwrites the stored employee with the same ID.
// It does not check that the employee exists; callers fetch it first.
func (s *Staff) UpdateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	const opn = "Employee.UpdateEmployee"
	log := s.initLogger(opn)

	updated, err := s.repo.Save(ctx, employee)
	if err != nil {
		return models.Employee{}, s.translateSaveError(ctx, log, employee, err)
	}

	log.DebugContext(ctx, "Employee updated", "id", updated.ID)

	return updated, nil
}

// DeleteEmployee removes the employee. Deleting an unknown ID succeeds.
func (s *Staff) DeleteEmployee(ctx context.Context, identifier int64) error {
	if err := s.repo.DeleteByID(ctx, identifier); err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", identifier, err)
	}

	return nil
}

func (s *Staff) translateSaveError(ctx context.Context, log *slog.Logger, employee models.Employee, err error) error {
	if errors.Is(err, repository.ErrDuplicateEmail) {
		log.InfoContext(ctx, "Email is taken by another employee", "email", employee.Email)
		s.metrics.DuplicateEmails.Inc()
		return fmt.Errorf("%w: %s", ErrEmployeeExists, employee.Email)
	}

	log.ErrorContext(ctx, "Failed to save employee", sl.Err(err))

	return fmt.Errorf("failed to save employee: %w", err)
}
