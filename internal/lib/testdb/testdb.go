// Package testdb starts a disposable PostgreSQL container for integration tests
// and migrates it with the project's goose migrations.
package testdb

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	image      = "postgres:16-alpine"
	dbName     = "ems"
	dbUser     = "username"
	dbPassword = "password"
)

// New starts a PostgreSQL container scoped to t, applies migrations and returns a pool
// connected to it. The container and the pool are released in t.Cleanup.
// The test is skipped in -short mode or when no container provider is available.
func New(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dbpool, err := repository.NewDatabase(ctx, config.PostgresConfig{
		Host:     host,
		Port:     port.Port(),
		User:     dbUser,
		Password: dbPassword,
		Dbname:   dbName,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(dbpool.Close)

	require.NoError(t, repository.Migrate(dbpool, MigrationsDir()))

	return dbpool
}

// Reset removes every employee and restarts id assignment.
func Reset(t *testing.T, dbpool *pgxpool.Pool) {
	t.Helper()

	_, err := dbpool.Exec(context.Background(), "TRUNCATE employees RESTART IDENTITY")
	require.NoError(t, err)
}

// MigrationsDir returns the absolute path of the repository's migrations directory.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)

	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}
