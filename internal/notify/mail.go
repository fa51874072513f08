package notify

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/intake/pkg/logger"
	"github.com/dmitrymomot/intake/pkg/mailer"
)

//go:embed templates
var templates embed.FS

// Templates returns the embedded notification templates.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// ErrNoInbox is returned by NewMailNotifier when no inbox is configured.
var ErrNoInbox = errors.New("notify: inbox address is required")

// MailNotifier renders <TemplateID>.md with the message params and mails it
// to a fixed inbox.
type MailNotifier struct {
	mailer *mailer.Mailer
	logger *slog.Logger
	inbox  []string
}

// MailOption configures a MailNotifier.
type MailOption func(*MailNotifier)

// WithMailLogger sets the logger.
func WithMailLogger(l *slog.Logger) MailOption {
	return func(n *MailNotifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// NewMailNotifier creates a notifier that sends every submission to inbox.
func NewMailNotifier(m *mailer.Mailer, inbox string, opts ...MailOption) (*MailNotifier, error) {
	if inbox == "" {
		return nil, ErrNoInbox
	}
	n := &MailNotifier{mailer: m, inbox: []string{inbox}, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

func (n *MailNotifier) Notify(ctx context.Context, msg Message) error {
	err := n.mailer.Send(ctx, mailer.Message{
		Template: msg.TemplateID + ".md",
		Data:     map[string]string(msg.Params),
		Tags:     map[string]string{"form": msg.TemplateID},
		ReplyTo:  msg.ReplyTo,
		To:       n.inbox,
	})
	if err == nil {
		n.logger.InfoContext(ctx, "notification sent", slog.String("template", msg.TemplateID))
		return nil
	}

	n.logger.ErrorContext(ctx, "notification failed",
		slog.String("template", msg.TemplateID),
		slog.Any("error", err),
	)

	text := "mail delivery failed"
	switch {
	case errors.Is(err, mailer.ErrTemplateNotFound):
		text = "unknown template " + msg.TemplateID
	case errors.Is(err, mailer.ErrRenderFailed):
		text = "could not render message"
	}
	return &Error{Text: text, Err: err}
}
