package repository

import (
	"github.com/deppfellow/todo-service/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Todos *TodoRepository
}

// NewRepositories constructs the repository container from the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Todos: NewTodoRepository(s.DB.Pool, s.Config.Observability.Logging.SlowQueryThreshold),
	}
}
