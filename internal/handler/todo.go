package handler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/todo-service/internal/errs"
	"github.com/deppfellow/todo-service/internal/server"
	"github.com/deppfellow/todo-service/internal/validation"
)

// TodoController is the business logic behind the /todo routes.
type TodoController interface {
	TodoInfo(ctx context.Context) string
	SendMail(ctx context.Context, email, templateID string) error
	AddTodo(ctx context.Context, description string) (uuid.UUID, error)
	CompleteTodo(ctx context.Context, id uuid.UUID) error
}

// InfoRequest carries no input.
type InfoRequest struct{}

func (r *InfoRequest) Validate() error {
	return nil
}

// SendMailRequest is bound from the query string.
type SendMailRequest struct {
	Email      string `query:"email" validate:"email"`
	TemplateID string `query:"template_id" validate:"min=1,max=64"`
}

func (r *SendMailRequest) Validate() error {
	return validation.ValidateStruct(r)
}

// AddTodoRequest is bound from the JSON body.
type AddTodoRequest struct {
	Description string `json:"description" validate:"min=1,max=100"`
}

func (r *AddTodoRequest) Validate() error {
	return validation.ValidateStruct(r)
}

// CompleteTodoRequest is bound from the JSON body. The id is checked by
// UUID parsing during bind, so a bad id is a malformed request rather
// than a field violation.
type CompleteTodoRequest struct {
	ID *uuid.UUID `json:"id"`
}

func (r *CompleteTodoRequest) Validate() error {
	if r.ID == nil {
		return errs.NewMalformedRequestError("missing field `id`")
	}
	return nil
}

// TodoHandler serves the /todo routes.
type TodoHandler struct {
	Handler
	controller TodoController
}

func NewTodoHandler(s *server.Server, controller TodoController) *TodoHandler {
	return &TodoHandler{
		Handler:    NewHandler(s),
		controller: controller,
	}
}

func (h *TodoHandler) Info(c echo.Context, _ *InfoRequest) (string, error) {
	info := h.controller.TodoInfo(c.Request().Context())
	return fmt.Sprintf("Todo info: %s", info), nil
}

func (h *TodoHandler) SendMail(c echo.Context, req *SendMailRequest) (string, error) {
	if err := h.controller.SendMail(c.Request().Context(), req.Email, req.TemplateID); err != nil {
		return "", err
	}
	return "Mail sent", nil
}

func (h *TodoHandler) AddTodo(c echo.Context, req *AddTodoRequest) (string, error) {
	id, err := h.controller.AddTodo(c.Request().Context(), req.Description)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Todo added: %s", id), nil
}

func (h *TodoHandler) CompleteTodo(c echo.Context, req *CompleteTodoRequest) (string, error) {
	if err := h.controller.CompleteTodo(c.Request().Context(), *req.ID); err != nil {
		return "", err
	}
	return "Todo completed", nil
}

// InfoRoute and the other *Route methods wrap each operation in the
// shared request pipeline.
func (h *TodoHandler) InfoRoute() echo.HandlerFunc {
	return Handle("get_info", h.Info, func() *InfoRequest { return &InfoRequest{} })
}

func (h *TodoHandler) SendMailRoute() echo.HandlerFunc {
	return Handle("send_mail", h.SendMail, func() *SendMailRequest { return &SendMailRequest{} })
}

func (h *TodoHandler) AddTodoRoute() echo.HandlerFunc {
	return Handle("add_todo", h.AddTodo, func() *AddTodoRequest { return &AddTodoRequest{} })
}

func (h *TodoHandler) CompleteTodoRoute() echo.HandlerFunc {
	return Handle("complete_todo", h.CompleteTodo, func() *CompleteTodoRequest { return &CompleteTodoRequest{} })
}
