package mailer

import (
	"bytes"
	"context"
	"fmt"
	texttemplate "text/template"
)

// Mailer renders templates and sends them through a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	if cfg.Layout == "" {
		cfg.Layout = "base.html"
	}
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// Message is one templated email.
type Message struct {
	Data     any
	Tags     map[string]string
	Template string // e.g. "application.md"
	Subject  string // overrides the template's Subject
	ReplyTo  string
	To       []string
}

// Send renders msg and delivers it. The subject comes from msg.Subject, the
// template's Subject front matter or Config.FallbackSubject, in that order,
// and is itself executed as a template with msg.Data.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipient
	}

	result, err := m.renderer.Render(m.config.Layout, msg.Template, msg.Data)
	if err != nil {
		return err
	}

	subject := msg.Subject
	if subject == "" {
		if s, ok := result.Metadata["Subject"].(string); ok {
			subject = s
		} else {
			subject = m.config.FallbackSubject
		}
	}

	subject, err = executeSubject(subject, msg.Data)
	if err != nil {
		return err
	}

	if err := m.sender.Send(ctx, &Email{
		To:      msg.To,
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		ReplyTo: msg.ReplyTo,
		Tags:    msg.Tags,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	return nil
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", fmt.Errorf("%w: subject: %w", ErrRenderFailed, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: subject: %w", ErrRenderFailed, err)
	}
	return buf.String(), nil
}
