package server

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// metricsMiddleware records request count and latency per route.
// It must wrap requestLogger, which hands errors to the error handler so the final status is known here.
func metricsMiddleware(appMetrics *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			startTime := time.Now()

			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = toHTTPError(err).Status
			}

			method := c.Request().Method
			appMetrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			appMetrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(startTime).Seconds())

			return err
		}
	}
}

// requestLogger writes one access log record per request.
func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			switch {
			case v.Status >= 500:
				level = slog.LevelError
			case v.Status >= 400:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("ip", c.RealIP()),
			}

			log.LogAttrs(c.Request().Context(), level, "API", attrs...)

			return nil
		},
	})
}
