package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/todo-service/internal/handler"
)

// TodoPrefix is the path every todo operation is mounted under.
const TodoPrefix = "/todo"

func registerTodoRoutes(r *echo.Echo, h *handler.Handlers) {
	todo := r.Group(TodoPrefix)

	todo.GET("/info", h.Todo.InfoRoute())
	todo.GET("/send", h.Todo.SendMailRoute())
	todo.POST("/add", h.Todo.AddTodoRoute())
	todo.POST("/complete", h.Todo.CompleteTodoRoute())
}
