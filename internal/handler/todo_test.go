package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/todo-service/internal/config"
	"github.com/deppfellow/todo-service/internal/errs"
	loggerPkg "github.com/deppfellow/todo-service/internal/logger"
	"github.com/deppfellow/todo-service/internal/middleware"
	"github.com/deppfellow/todo-service/internal/server"
)

type mockController struct {
	mock.Mock
}

func (m *mockController) TodoInfo(ctx context.Context) string {
	return m.Called(ctx).String(0)
}

func (m *mockController) SendMail(ctx context.Context, email, templateID string) error {
	return m.Called(ctx, email, templateID).Error(0)
}

func (m *mockController) AddTodo(ctx context.Context, description string) (uuid.UUID, error) {
	args := m.Called(ctx, description)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockController) CompleteTodo(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    string          `json:"data"`
	Error   *errs.HTTPError `json:"error"`
}

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger:        &logger,
		LoggerService: &loggerPkg.LoggerService{},
	}
}

func newTestEcho(ctrl TodoController) *echo.Echo {
	s := newTestServer()
	h := NewTodoHandler(s, ctrl)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler

	g := e.Group("/todo")
	g.GET("/info", h.InfoRoute())
	g.GET("/send", h.SendMailRoute())
	g.POST("/add", h.AddTodoRoute())
	g.POST("/complete", h.CompleteTodoRoute())

	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (int, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestGetInfo(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("TodoInfo", mock.Anything).Return("todo-service (test): 2 open, 1 completed")

	status, env := do(t, newTestEcho(ctrl), http.MethodGet, "/todo/info", "")

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Todo info: todo-service (test): 2 open, 1 completed", env.Data)
	ctrl.AssertNumberOfCalls(t, "TodoInfo", 1)
	ctrl.AssertNotCalled(t, "SendMail", mock.Anything, mock.Anything, mock.Anything)
	ctrl.AssertNotCalled(t, "AddTodo", mock.Anything, mock.Anything)
	ctrl.AssertNotCalled(t, "CompleteTodo", mock.Anything, mock.Anything)
}

func TestAddTodoDescriptionBounds(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantOK      bool
	}{
		{name: "empty", description: "", wantOK: false},
		{name: "one character", description: "a", wantOK: true},
		{name: "hundred characters", description: strings.Repeat("a", 100), wantOK: true},
		{name: "hundred multibyte characters", description: strings.Repeat("é", 100), wantOK: true},
		{name: "hundred and one characters", description: strings.Repeat("a", 101), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			ctrl := &mockController{}
			ctrl.On("AddTodo", mock.Anything, tt.description).Return(id, nil)

			body, err := json.Marshal(map[string]string{"description": tt.description})
			require.NoError(t, err)

			status, env := do(t, newTestEcho(ctrl), http.MethodPost, "/todo/add", string(body))

			if tt.wantOK {
				assert.Equal(t, http.StatusOK, status)
				assert.Equal(t, "Todo added: "+id.String(), env.Data)
				ctrl.AssertNumberOfCalls(t, "AddTodo", 1)
				return
			}

			assert.Equal(t, http.StatusBadRequest, status)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, errs.CodeValidationFailed, env.Error.Code)
			assert.True(t, env.Error.HasField("description"))
			ctrl.AssertNotCalled(t, "AddTodo", mock.Anything, mock.Anything)
		})
	}
}

func TestAddTodoMissingBody(t *testing.T) {
	ctrl := &mockController{}

	status, env := do(t, newTestEcho(ctrl), http.MethodPost, "/todo/add", "")

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, errs.CodeValidationFailed, env.Error.Code)
	ctrl.AssertNotCalled(t, "AddTodo", mock.Anything, mock.Anything)
}

func TestAddTodoMalformedJSON(t *testing.T) {
	ctrl := &mockController{}

	status, env := do(t, newTestEcho(ctrl), http.MethodPost, "/todo/add", `{"description":`)

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, errs.CodeMalformedRequest, env.Error.Code)
	assert.Empty(t, env.Error.Errors)
	ctrl.AssertNotCalled(t, "AddTodo", mock.Anything, mock.Anything)
}

func TestSendMailValidation(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantFields []string
	}{
		{name: "invalid email", query: "email=not-an-email&template_id=welcome", wantFields: []string{"email"}},
		{name: "invalid email and empty template", query: "email=not-an-email&template_id=", wantFields: []string{"email", "template_id"}},
		{name: "missing email", query: "template_id=welcome", wantFields: []string{"email"}},
		{name: "empty template", query: "email=ada@example.com&template_id=", wantFields: []string{"template_id"}},
		{name: "template too long", query: "email=ada@example.com&template_id=" + strings.Repeat("t", 65), wantFields: []string{"template_id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &mockController{}

			status, env := do(t, newTestEcho(ctrl), http.MethodGet, "/todo/send?"+tt.query, "")

			assert.Equal(t, http.StatusBadRequest, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, errs.CodeValidationFailed, env.Error.Code)
			require.Len(t, env.Error.Errors, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.True(t, env.Error.HasField(field), field)
			}
			ctrl.AssertNotCalled(t, "SendMail", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSendMail(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("SendMail", mock.Anything, "ada@example.com", strings.Repeat("t", 64)).Return(nil)

	status, env := do(t, newTestEcho(ctrl), http.MethodGet, "/todo/send?email=ada@example.com&template_id="+strings.Repeat("t", 64), "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Mail sent", env.Data)
	ctrl.AssertNumberOfCalls(t, "SendMail", 1)
}

func TestSendMailControllerErrors(t *testing.T) {
	code := "TEMPLATE_NOT_FOUND"
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "plain error keeps its message",
			err:        errors.New("failed to queue mail: redis down"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "failed to queue mail: redis down",
		},
		{
			name:       "classified error keeps its status",
			err:        errs.NewNotFoundError("Email template \"nope\" not found", true, &code),
			wantStatus: http.StatusNotFound,
			wantCode:   code,
			wantMsg:    "Email template \"nope\" not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &mockController{}
			ctrl.On("SendMail", mock.Anything, mock.Anything, mock.Anything).Return(tt.err)

			status, env := do(t, newTestEcho(ctrl), http.MethodGet, "/todo/send?email=ada@example.com&template_id=nope", "")

			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, tt.wantMsg, env.Error.Message)
			ctrl.AssertNumberOfCalls(t, "SendMail", 1)
		})
	}
}

func TestCompleteTodoMalformedID(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not a uuid", body: `{"id":"not-a-uuid"}`},
		{name: "wrong type", body: `{"id":42}`},
		{name: "missing id", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &mockController{}

			status, env := do(t, newTestEcho(ctrl), http.MethodPost, "/todo/complete", tt.body)

			assert.Equal(t, http.StatusBadRequest, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, errs.CodeMalformedRequest, env.Error.Code)
			assert.Empty(t, env.Error.Errors)
			ctrl.AssertNotCalled(t, "CompleteTodo", mock.Anything, mock.Anything)
		})
	}
}

func TestAddThenComplete(t *testing.T) {
	id := uuid.New()
	ctrl := &mockController{}
	ctrl.On("AddTodo", mock.Anything, "write tests").Return(id, nil).Once()
	ctrl.On("CompleteTodo", mock.Anything, id).Return(nil).Once()

	e := newTestEcho(ctrl)

	status, env := do(t, e, http.MethodPost, "/todo/add", `{"description":"write tests"}`)
	require.Equal(t, http.StatusOK, status)
	require.True(t, strings.HasPrefix(env.Data, "Todo added: "))

	returned := strings.TrimPrefix(env.Data, "Todo added: ")
	_, err := uuid.Parse(returned)
	require.NoError(t, err)

	status, env = do(t, e, http.MethodPost, "/todo/complete", `{"id":"`+returned+`"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Todo completed", env.Data)
	ctrl.AssertExpectations(t)
}

func TestCompleteTodoUnknownID(t *testing.T) {
	id := uuid.New()
	code := "TODO_NOT_FOUND"
	ctrl := &mockController{}
	ctrl.On("CompleteTodo", mock.Anything, id).Return(errs.NewNotFoundError("Todo not found", true, &code))

	status, env := do(t, newTestEcho(ctrl), http.MethodPost, "/todo/complete", `{"id":"`+id.String()+`"}`)

	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, code, env.Error.Code)
}

func TestHandleBuildsRequestPerCall(t *testing.T) {
	built := 0
	var seen []string

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler
	e.POST("/add", Handle("add_todo",
		func(c echo.Context, req *AddTodoRequest) (string, error) {
			seen = append(seen, req.Description)
			return req.Description, nil
		},
		func() *AddTodoRequest {
			built++
			return &AddTodoRequest{}
		},
	))

	status, _ := do(t, e, http.MethodPost, "/add", `{"description":"first"}`)
	require.Equal(t, http.StatusOK, status)

	// an empty body must not inherit the previous description
	status, env := do(t, e, http.MethodPost, "/add", "")
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.True(t, env.Error.HasField("description"))

	assert.Equal(t, 2, built)
	assert.Equal(t, []string{"first"}, seen)
}
