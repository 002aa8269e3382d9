package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "email", Error: "must be a valid email address"},
		{Field: "template_id", Error: "must not exceed 64 characters"},
	})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.True(t, err.HasField("email"))
	assert.True(t, err.HasField("template_id"))
	assert.False(t, err.HasField("description"))
}

func TestNewMalformedRequestError(t *testing.T) {
	err := NewMalformedRequestError("invalid UUID length: 3")

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeMalformedRequest, err.Code)
	assert.Equal(t, "Malformed request: invalid UUID length: 3", err.Message)
	assert.Empty(t, err.Errors)

	assert.Equal(t, "Malformed request", NewMalformedRequestError("").Message)
}

func TestNewControllerError(t *testing.T) {
	t.Run("plain error keeps message", func(t *testing.T) {
		err := NewControllerError(errors.New("smtp relay refused connection"))

		assert.Equal(t, http.StatusInternalServerError, err.Status)
		assert.Equal(t, "smtp relay refused connection", err.Message)
	})

	t.Run("classified error passes through", func(t *testing.T) {
		code := "TODO_NOT_FOUND"
		notFound := NewNotFoundError("Todo not found", true, &code)

		err := NewControllerError(fmt.Errorf("complete: %w", notFound))

		assert.Same(t, notFound, err)
	})
}

func TestHTTPErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewInternalServerError())
	assert.True(t, errors.Is(err, &HTTPError{}))

	copied := NewInternalServerError().WithMessage("other")
	assert.Equal(t, "other", copied.Error())
	assert.Equal(t, http.StatusInternalServerError, copied.Status)
}
