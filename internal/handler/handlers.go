package handler

import (
	"github.com/deppfellow/todo-service/internal/server"
	"github.com/deppfellow/todo-service/internal/service"
)

// Handlers groups every HTTP handler so router setup receives one object.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Todo    *TodoHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Todo:    NewTodoHandler(s, services.Todo),
	}
}
