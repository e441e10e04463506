package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/server"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	var wgr sync.WaitGroup

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	var tracer pgx.QueryTracer
	if cfg.Env == envLocal {
		tracer = repository.NewSQLTracer(logger)
	}

	dtb, err := repository.NewDatabase(ctx, cfg.Postgres, tracer)
	if err != nil {
		logger.Error("Failed to connect to DB", sl.Err(err))
		os.Exit(1)
	}
	defer dtb.Close()

	if err = repository.Migrate(dtb, cfg.MigrationsDir); err != nil {
		logger.Error("Failed to apply migrations", sl.Err(err))
		os.Exit(1)
	}

	employeeRepo := repository.NewEmployeeRepository(dtb, appMetrics)
	staff := employees.NewStaff(logger, employeeRepo, appMetrics)
	api := server.NewAPI(logger, staff, appMetrics)

	wgr.Add(2)

	go func() {
		defer wgr.Done()
		if monErr := server.StartMonitoringServer(
			ctx, logger, reg, dtb, cfg.Monitoring.Port, cfg.ShutdownTimeout); monErr != nil {
			logger.ErrorContext(ctx, "Monitoring server failed", sl.Err(monErr))
			stop()
		}
	}()

	go func() {
		defer wgr.Done()
		logger.InfoContext(ctx, "Starting Employee API")
		if apiErr := api.Start(ctx, cfg.HTTP, cfg.ShutdownTimeout); apiErr != nil {
			logger.ErrorContext(ctx, "Employee API failed", sl.Err(apiErr))
			stop()
		}
		logger.InfoContext(ctx, "Employee API stopped.")
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	wgr.Wait()

	logger.Info("Application stopped gracefully...")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{Key: "", Value: slog.Value{}}
	}
	return a
}
