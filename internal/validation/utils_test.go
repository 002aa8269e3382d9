package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/todo-service/internal/errs"
)

type queryPayload struct {
	Email      string `query:"email" validate:"email"`
	TemplateID string `query:"template_id" validate:"min=1,max=64"`
}

func (p *queryPayload) Validate() error {
	return ValidateStruct(p)
}

type bodyPayload struct {
	Name string `json:"name" validate:"min=1,max=5"`
}

func (p *bodyPayload) Validate() error {
	return ValidateStruct(p)
}

type classifyingPayload struct {
	Value *string `json:"value"`
}

func (p *classifyingPayload) Validate() error {
	if p.Value == nil {
		return errs.NewMalformedRequestError("missing field `value`")
	}
	return nil
}

func newContext(method, target, body string) echo.Context {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	httpErr, ok := err.(*errs.HTTPError)
	require.True(t, ok, "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidateCollectsAllFields(t *testing.T) {
	c := newContext(http.MethodGet, "/?email=nope&template_id="+strings.Repeat("x", 65), "")

	err := BindAndValidate(c, &queryPayload{})
	httpErr := asHTTPError(t, err)

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.CodeValidationFailed, httpErr.Code)
	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, errs.FieldError{Field: "email", Error: "must be a valid email address"}, httpErr.Errors[0])
	assert.Equal(t, errs.FieldError{Field: "template_id", Error: "must not exceed 64 characters"}, httpErr.Errors[1])
}

func TestBindAndValidateEmptyTemplate(t *testing.T) {
	c := newContext(http.MethodGet, "/?email=ada@example.com", "")

	err := BindAndValidate(c, &queryPayload{})
	httpErr := asHTTPError(t, err)

	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "template_id", httpErr.Errors[0].Field)
	assert.Equal(t, "must be at least 1 character", httpErr.Errors[0].Error)
}

func TestBindAndValidateCountsCharacters(t *testing.T) {
	// five runes, more than five bytes
	c := newContext(http.MethodPost, "/", `{"name":"héllo"}`)

	p := &bodyPayload{}
	require.NoError(t, BindAndValidate(c, p))
	assert.Equal(t, "héllo", p.Name)
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	c := newContext(http.MethodPost, "/", `{"name":`)

	err := BindAndValidate(c, &bodyPayload{})
	httpErr := asHTTPError(t, err)

	assert.Equal(t, errs.CodeMalformedRequest, httpErr.Code)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidatePassesClassifiedError(t *testing.T) {
	c := newContext(http.MethodPost, "/", `{}`)

	err := BindAndValidate(c, &classifyingPayload{})
	httpErr := asHTTPError(t, err)

	assert.Equal(t, errs.CodeMalformedRequest, httpErr.Code)
	assert.Contains(t, httpErr.Message, "missing field")
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := newContext(http.MethodGet, "/?email=ada@example.com&template_id=welcome", "")

	p := &queryPayload{}
	require.NoError(t, BindAndValidate(c, p))
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, "welcome", p.TemplateID)
}

func TestCharacterBoundMessages(t *testing.T) {
	assert.Equal(t, "1 character", characters("1"))
	assert.Equal(t, "64 characters", characters("64"))
	assert.Equal(t, "0 characters", characters("0"))
}
