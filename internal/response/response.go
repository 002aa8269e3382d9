// Package response renders every request outcome into one JSON envelope.
//
// Handlers never call c.JSON themselves: they produce a Result and hand it
// to Write, so success and failure share identical serialization.
//
//	{"success": true,  "data": "Todo added: 5b6f..."}
//	{"success": false, "error": {"code": "VALIDATION_FAILED", ...}}
package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/todo-service/internal/errs"
)

// Envelope is the single external representation of an outcome.
type Envelope struct {
	Success bool            `json:"success"`
	Data    any             `json:"data,omitempty"`
	Error   *errs.HTTPError `json:"error,omitempty"`
}

// Result is a two-variant outcome: a value or an error, never both.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err wraps a failure. A nil err is treated as an internal failure so
// that an Err result can never render as success.
func Err[T any](err error) Result[T] {
	if err == nil {
		err = errs.NewInternalServerError()
	}
	return Result[T]{err: err}
}

// Render converts the result into a status code and envelope.
// okStatus is used for the success variant.
func (r Result[T]) Render(okStatus int) (int, Envelope) {
	if r.err == nil {
		return okStatus, Envelope{Success: true, Data: fmt.Sprint(r.value)}
	}

	httpErr := Classify(r.err)
	return httpErr.Status, Envelope{Success: false, Error: httpErr}
}

// Classify maps any error onto an *errs.HTTPError.
//
//   - *errs.HTTPError: unchanged
//   - *echo.HTTPError: status kept, code derived from the status text
//   - anything else: 500 carrying the error message
func Classify(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	return errs.NewControllerError(err)
}

// Write renders r with 200 as the success status.
func Write[T any](c echo.Context, r Result[T]) error {
	return WriteWithStatus(c, http.StatusOK, r)
}

// WriteWithStatus renders r, using okStatus for the success variant.
func WriteWithStatus[T any](c echo.Context, okStatus int, r Result[T]) error {
	status, envelope := r.Render(okStatus)
	return c.JSON(status, envelope)
}
