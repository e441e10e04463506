package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMonitoringHandler exposes the registry on /metrics and the health checker on /healthz.
func NewMonitoringHandler(log *slog.Logger, reg *prometheus.Registry, db DBPinger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          reg,
	}))
	mux.Handle("/healthz", NewHealthChecker(db, log))

	return mux
}

// StartMonitoringServer serves the monitoring handler on port until ctx is cancelled.
func StartMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	db DBPinger,
	port int,
	shutdownTimeout time.Duration,
) error {
	readTimeout := 5 * time.Second
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           NewMonitoringHandler(log, reg, db),
		ReadHeaderTimeout: readTimeout,
	}

	return serve(ctx, log.With(slog.String("division", "monitoring")), srv, shutdownTimeout)
}
