package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/todo-service/internal/lib/email"
)

const (
	// TaskSendMail is the job type name stored in Redis.
	TaskSendMail = "email:send"
)

// SendMailPayload is the JSON payload of a TaskSendMail task.
type SendMailPayload struct {
	To         string `json:"to"`
	TemplateID string `json:"template_id"`
}

// NewSendMailTask constructs an Asynq task for sending template t to `to`.
//
// Delivery is retried by the worker at most 3 times and killed after 30s.
func NewSendMailTask(to string, t email.Template) (*asynq.Task, error) {
	payload, err := json.Marshal(SendMailPayload{
		To:         to,
		TemplateID: string(t),
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskSendMail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueSendMail enqueues exactly one TaskSendMail task.
func (j *JobService) EnqueueSendMail(ctx context.Context, to string, t email.Template) error {
	task, err := NewSendMailTask(to, t)
	if err != nil {
		return fmt.Errorf("failed to build send mail task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue send mail task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("template", string(t)).
		Msg("send mail task enqueued")

	return nil
}
