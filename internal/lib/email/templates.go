package email

import (
	"errors"
	"fmt"
)

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateWelcome corresponds to templates/emails/welcome.html
	TemplateWelcome Template = "welcome"

	// TemplateTodoReminder corresponds to templates/emails/todo_reminder.html
	TemplateTodoReminder Template = "todo_reminder"
)

// ErrUnknownTemplate is returned for template ids missing from the registry.
var ErrUnknownTemplate = errors.New("unknown email template")

var subjects = map[Template]string{
	TemplateWelcome:      "Welcome to Todo!",
	TemplateTodoReminder: "You have open todos",
}

// ParseTemplate resolves a client supplied template id. Only registered
// templates are accepted, so ids never reach the filesystem unchecked.
func ParseTemplate(id string) (Template, error) {
	t := Template(id)
	if _, ok := subjects[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return t, nil
}

// Subject returns the subject line used for t.
func (t Template) Subject() string {
	return subjects[t]
}
