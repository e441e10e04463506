package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/labstack/echo/v4"
)

// FieldError describes why a single request field was rejected.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the JSON body of every non-2xx API response.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func newHTTPError(status int, message string, fieldErrors []FieldError) *HTTPError {
	return &HTTPError{
		// http.StatusText(404) => "Not Found" => "NOT_FOUND"
		Code:    strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_")),
		Message: message,
		Status:  status,
		Errors:  fieldErrors,
	}
}

func NewBadRequestError(message string, fieldErrors []FieldError) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message, fieldErrors)
}

func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, nil)
}

func NewConflictError(message string) *HTTPError {
	return newHTTPError(http.StatusConflict, message, nil)
}

// NewInternalServerError hides the cause from the client; it is logged instead.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
}

// toHTTPError converts any handler error into the response body.
func toHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return newHTTPError(echoErr.Code, message, nil)
	}

	return NewInternalServerError()
}

// handleError is the echo HTTPErrorHandler of the API.
func (a *API) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	ctx := c.Request().Context()
	httpErr := toHTTPError(err)

	if httpErr.Status >= http.StatusInternalServerError {
		a.log.ErrorContext(ctx, "Request failed", sl.Err(err), "method", c.Request().Method, "route", c.Path())
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.Status)
	} else {
		writeErr = c.JSON(httpErr.Status, httpErr)
	}

	if writeErr != nil {
		a.log.ErrorContext(ctx, "Failed to write error response", sl.Err(writeErr))
	}
}
