package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/todo-service/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate returns:
//   - validator.ValidationErrors for declarative tag failures
//   - an *errs.HTTPError when the payload wants to classify the failure itself
//   - nil when the payload is acceptable
type Validatable interface {
	Validate() error
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct (query for GET, JSON body for POST).
//     Any bind failure is a malformed request.
//  2. payload.Validate() runs every constraint; all failures are collected
//     into a single validation error.
//
// payload must be a pointer so Bind can mutate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewMalformedRequestError(bindErrorDetail(err))
	}

	err := payload.Validate()
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	fieldErrors := extractValidationError(err)
	if len(fieldErrors) == 0 {
		return errs.NewBadRequestError(err.Error(), false, nil, nil, nil)
	}

	return errs.NewValidationError(fieldErrors)
}

// bindErrorDetail pulls a readable message out of Echo's bind error.
func bindErrorDetail(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
		if echoErr.Internal != nil {
			return echoErr.Internal.Error()
		}
	}
	return err.Error()
}

func extractValidationError(err error) []errs.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			// strings are measured in characters, numbers by value
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s", characters(err.Param()))
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s", characters(err.Param()))
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		case "uuid", "uuid4":
			msg = "must be a valid UUID"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors
}

// characters renders a length bound, e.g. "1 character" or "64 characters".
func characters(n string) string {
	if n == "1" {
		return n + " character"
	}
	return n + " characters"
}
