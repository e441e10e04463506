package repository

import (
	"context"
	"errors"
	"time"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

var (
	// ErrNotFound is returned when no employee matches the lookup.
	ErrNotFound = errors.New("employee not found")

	// ErrDuplicateEmail is returned when a write violates the unique email constraint.
	ErrDuplicateEmail = errors.New("employee with this email already exists")

	// ErrMultipleFound is returned when a lookup expected one employee but matched several.
	ErrMultipleFound = errors.New("more than one employee matches")
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	FindByID(ctx context.Context, identifier int64) (models.Employee, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	FindByEmail(ctx context.Context, email string) (models.Employee, error)
	Save(ctx context.Context, employee models.Employee) (models.Employee, error)
	DeleteByID(ctx context.Context, identifier int64) error
	FindByFirstAndLastName(ctx context.Context, firstName, lastName string) (models.Employee, error)
	FindByFirstAndLastNameNamed(ctx context.Context, firstName, lastName string) (models.Employee, error)
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}

func (r *Repository) observe(queryType string, startTime time.Time) {
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
}
