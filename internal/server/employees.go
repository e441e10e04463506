package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/labstack/echo/v4"
)

const deletedMessage = "Employee deleted successfully!"

type employeeRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (a *API) createEmployee(c echo.Context) error {
	req, err := bindEmployee(c)
	if err != nil {
		return err
	}

	saved, err := a.service.SaveEmployee(c.Request().Context(), models.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return conflictOr(err)
	}

	return c.JSON(http.StatusCreated, saved)
}

func (a *API) listEmployees(c echo.Context) error {
	list, err := a.service.GetAllEmployees(c.Request().Context())
	if err != nil {
		return err
	}

	if list == nil {
		list = []models.Employee{}
	}

	return c.JSON(http.StatusOK, list)
}

func (a *API) getEmployee(c echo.Context) error {
	identifier, err := parseID(c)
	if err != nil {
		return err
	}

	employee, found, err := a.service.GetEmployeeByID(c.Request().Context(), identifier)
	if err != nil {
		return err
	}
	if !found {
		return notFound(identifier)
	}

	return c.JSON(http.StatusOK, employee)
}

// updateEmployee copies the request fields onto the stored employee. The employee must exist.
func (a *API) updateEmployee(c echo.Context) error {
	identifier, err := parseID(c)
	if err != nil {
		return err
	}

	req, err := bindEmployee(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	employee, found, err := a.service.GetEmployeeByID(ctx, identifier)
	if err != nil {
		return err
	}
	if !found {
		return notFound(identifier)
	}

	employee.FirstName = req.FirstName
	employee.LastName = req.LastName
	employee.Email = req.Email

	updated, err := a.service.UpdateEmployee(ctx, employee)
	if err != nil {
		return conflictOr(err)
	}

	return c.JSON(http.StatusOK, updated)
}

func (a *API) deleteEmployee(c echo.Context) error {
	identifier, err := parseID(c)
	if err != nil {
		return err
	}

	if err = a.service.DeleteEmployee(c.Request().Context(), identifier); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: deletedMessage})
}

func bindEmployee(c echo.Context) (employeeRequest, error) {
	var req employeeRequest

	if err := c.Bind(&req); err != nil {
		return employeeRequest{}, NewBadRequestError("invalid request body", nil)
	}

	if err := c.Validate(&req); err != nil {
		return employeeRequest{}, err
	}

	return req, nil
}

func parseID(c echo.Context) (int64, error) {
	identifier, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || identifier <= 0 {
		return 0, NewBadRequestError(fmt.Sprintf("invalid employee id: %q", c.Param("id")), nil)
	}

	return identifier, nil
}

func notFound(identifier int64) error {
	return NewNotFoundError(fmt.Sprintf("employee with id %d not found", identifier))
}

func conflictOr(err error) error {
	if errors.Is(err, employees.ErrEmployeeExists) {
		return NewConflictError(err.Error())
	}

	return err
}
