package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/todo-service/internal/lib/email"
)

// handleSendMailTask decodes the payload and sends the email.
// A returned error makes Asynq schedule a retry.
func (j *JobService) handleSendMailTask(ctx context.Context, t *asynq.Task) error {
	var p SendMailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal send mail payload: %w: %w", err, asynq.SkipRetry)
	}

	tmpl, err := email.ParseTemplate(p.TemplateID)
	if err != nil {
		// a template removed between enqueue and delivery will never succeed
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("template", p.TemplateID).
		Str("to", p.To).
		Msg("Processing send mail task")

	if err := j.emailClient.SendTemplateEmail(p.To, tmpl); err != nil {
		j.logger.Error().
			Str("template", p.TemplateID).
			Str("to", p.To).
			Err(err).
			Msg("Failed to send email")
		return err
	}

	j.logger.Info().
		Str("template", p.TemplateID).
		Str("to", p.To).
		Msg("Successfully sent email")

	return nil
}
