package sqlerr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/todo-service/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorNoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(WrapNoRows(pgx.ErrNoRows, "todos")))

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "TODO_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "Todo not found", httpErr.Message)

	generic := asHTTPError(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, "Resource not found", generic.Message)
}

func TestHandleErrorCheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23514",
		Severity:   "ERROR",
		TableName:  "todos",
		ColumnName: "description",
		Message:    "new row violates check constraint",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "TODO_INVALID", httpErr.Code)
	assert.Equal(t, "The Description value does not meet required conditions", httpErr.Message)
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "todos",
		ConstraintName: "todos_id_key",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, "TODO_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Todo with this Id already exists", httpErr.Message)
}

func TestHandleErrorNotNull(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "todos", ColumnName: "description"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "description", Error: "is required"}, httpErr.Errors[0])
}

func TestHandleErrorFallbacks(t *testing.T) {
	passthrough := errs.NewNotFoundError("gone", false, nil)
	assert.Same(t, passthrough, HandleError(passthrough))

	unknown := asHTTPError(t, HandleError(errors.New("connection reset by peer")))
	assert.Equal(t, http.StatusInternalServerError, unknown.Status)
	assert.Equal(t, "Internal Server Error", unknown.Message)

	other := asHTTPError(t, HandleError(&pgconn.PgError{Code: "53300"}))
	assert.Equal(t, http.StatusInternalServerError, other.Status)
}

func TestConvertPgError(t *testing.T) {
	src := &pgconn.PgError{Code: "23503", Severity: "FATAL", Message: "fk"}
	converted := ConvertPgError(src)

	assert.Equal(t, ForeignKeyViolation, converted.Code)
	assert.Equal(t, SeverityFatal, converted.Severity)
	assert.ErrorIs(t, converted, src)
}
