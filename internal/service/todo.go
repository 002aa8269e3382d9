package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deppfellow/todo-service/internal/config"
	"github.com/deppfellow/todo-service/internal/errs"
	"github.com/deppfellow/todo-service/internal/lib/email"
	"github.com/deppfellow/todo-service/internal/repository"
	"github.com/deppfellow/todo-service/internal/sqlerr"
)

// CodeTemplateNotFound is returned when a mail template id is not registered.
const CodeTemplateNotFound = "TEMPLATE_NOT_FOUND"

// TodoStore persists todos.
type TodoStore interface {
	Create(ctx context.Context, id uuid.UUID, description string) error
	Complete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (repository.TodoStats, error)
}

// MailQueue hands mail off for background delivery.
type MailQueue interface {
	EnqueueSendMail(ctx context.Context, to string, t email.Template) error
}

// TodoService implements the todo operations exposed over HTTP.
type TodoService struct {
	store TodoStore
	mail  MailQueue
	env   string
}

func NewTodoService(store TodoStore, mail MailQueue, env string) *TodoService {
	return &TodoService{
		store: store,
		mail:  mail,
		env:   env,
	}
}

// TodoInfo describes the service and its current todo counts. It never
// fails: when the counts cannot be read the summary says so.
func (s *TodoService) TodoInfo(ctx context.Context) string {
	prefix := fmt.Sprintf("%s (%s)", config.ServiceName, s.env)

	stats, err := s.store.Stats(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to read todo stats")
		return prefix + ": stats unavailable"
	}

	return fmt.Sprintf("%s: %d open, %d completed", prefix, stats.Open, stats.Completed)
}

// SendMail queues exactly one delivery of the template to address.
func (s *TodoService) SendMail(ctx context.Context, address, templateID string) error {
	tmpl, err := email.ParseTemplate(templateID)
	if errors.Is(err, email.ErrUnknownTemplate) {
		code := CodeTemplateNotFound
		return errs.NewNotFoundError(fmt.Sprintf("Email template %q not found", templateID), true, &code)
	}
	if err != nil {
		return err
	}

	if err := s.mail.EnqueueSendMail(ctx, address, tmpl); err != nil {
		return fmt.Errorf("failed to queue mail: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("template", templateID).
		Msg("mail queued")

	return nil
}

// AddTodo stores a new open todo under a freshly generated id.
func (s *TodoService) AddTodo(ctx context.Context, description string) (uuid.UUID, error) {
	id := uuid.New()

	if err := s.store.Create(ctx, id, description); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to create todo")
		return uuid.Nil, sqlerr.HandleError(err)
	}

	return id, nil
}

// CompleteTodo marks id completed. Completing twice succeeds.
func (s *TodoService) CompleteTodo(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Complete(ctx, id); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("todo_id", id.String()).Msg("failed to complete todo")
		return sqlerr.HandleError(err)
	}

	return nil
}
