package errs

import (
	"errors"
	"net/http"
)

const (
	// CodeValidationFailed marks declarative constraint violations.
	CodeValidationFailed = "VALIDATION_FAILED"

	// CodeMalformedRequest marks payloads that could not be parsed at all.
	CodeMalformedRequest = "MALFORMED_REQUEST"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors
//   - action: optional client instruction
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a 500 with the generic status text as message.
// Used for infrastructure failures whose details must not reach the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewValidationError creates a 400 listing every violated field constraint.
func NewValidationError(fieldErrors []FieldError) *HTTPError {
	code := CodeValidationFailed
	return NewBadRequestError("Validation failed", true, &code, fieldErrors, nil)
}

// NewMalformedRequestError creates a 400 for payloads that failed to parse.
func NewMalformedRequestError(detail string) *HTTPError {
	code := CodeMalformedRequest
	message := "Malformed request"
	if detail != "" {
		message += ": " + detail
	}
	return NewBadRequestError(message, false, &code, nil, nil)
}

// NewControllerError converts a failure returned by business logic.
//
// An *HTTPError already classified by the controller is returned unchanged.
// Anything else becomes a 500 carrying the original message verbatim.
func NewControllerError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  err.Error(),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}
