package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// EmployeeService is the business layer the API delegates to.
type EmployeeService interface {
	SaveEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	GetAllEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier int64) (models.Employee, bool, error)
	UpdateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int64) error
}

var _ EmployeeService = (*employees.Staff)(nil)

// API is the employee REST API.
type API struct {
	echo    *echo.Echo
	service EmployeeService
	log     *slog.Logger
}

func NewAPI(log *slog.Logger, service EmployeeService, appMetrics *metrics.Metrics) *API {
	api := &API{
		echo:    echo.New(),
		service: service,
		log:     log.With(slog.String("division", "api")),
	}

	api.echo.HideBanner = true
	api.echo.HidePort = true
	api.echo.Validator = newRequestValidator()
	api.echo.HTTPErrorHandler = api.handleError

	api.echo.Use(
		middleware.RequestID(),
		metricsMiddleware(appMetrics),
		requestLogger(api.log),
		middleware.Recover(),
	)

	api.registerRoutes()

	return api
}

func (a *API) registerRoutes() {
	group := a.echo.Group("/api")

	group.POST("/employees", a.createEmployee)
	group.GET("/employees", a.listEmployees)
	group.GET("/employees/:id", a.getEmployee)
	group.PUT("/employees/:id", a.updateEmployee)
	group.DELETE("/employee/:id", a.deleteEmployee)
	group.DELETE("/employees/:id", a.deleteEmployee)
}

func (a *API) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	a.echo.ServeHTTP(writer, req)
}

// Start serves the API until ctx is cancelled, then shuts down gracefully.
func (a *API) Start(ctx context.Context, cfg config.HTTPConfig, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           a,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return serve(ctx, a.log, srv, shutdownTimeout)
}
