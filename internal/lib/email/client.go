// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and
// loads HTML templates from the filesystem to render email bodies.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/todo-service/internal/config"
)

// DefaultTemplateDir is where template files live relative to the working directory.
const DefaultTemplateDir = "templates/emails"

// Sender is the part of the Resend email service the client uses.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client renders templates and hands the result to the provider.
type Client struct {
	sender      Sender
	from        string
	templateDir string
	logger      *zerolog.Logger
}

// NewClient creates an email Client backed by Resend.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return NewClientWithSender(
		resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		cfg.Integration.MailFrom,
		DefaultTemplateDir,
		logger,
	)
}

// NewClientWithSender creates a Client with an explicit provider and template directory.
func NewClientWithSender(sender Sender, from, templateDir string, logger *zerolog.Logger) *Client {
	return &Client{
		sender:      sender,
		from:        from,
		templateDir: templateDir,
		logger:      logger,
	}
}

// Render executes the named template with data.
func (c *Client) Render(templateName Template, data map[string]string) (string, error) {
	tmplPath := filepath.Join(c.templateDir, string(templateName)+".html")

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	html, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := c.sender.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	event := c.logger.Debug().Str("template", string(templateName))
	if sent != nil {
		event = event.Str("provider_id", sent.Id)
	}
	event.Msg("email accepted by provider")

	return nil
}
