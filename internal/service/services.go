package service

import (
	"github.com/deppfellow/todo-service/internal/lib/job"
	"github.com/deppfellow/todo-service/internal/repository"
	"github.com/deppfellow/todo-service/internal/server"
)

// Services groups the business layer so the handler container receives a
// single dependency.
type Services struct {
	Todo *TodoService
	Job  *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Todo: NewTodoService(repos.Todos, s.Job, s.Config.Primary.Env),
		Job:  s.Job,
	}, nil
}
