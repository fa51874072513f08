package submission

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/intake/internal/notify"
	"github.com/dmitrymomot/intake/internal/relay"
	"github.com/dmitrymomot/intake/pkg/logger"
)

// Status messages.
const (
	MsgSucceeded          = "Form submitted successfully! Check your email."
	msgNotificationFailed = "Failed to send email: "
)

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, f *relay.File) (string, error)
}

// State is the result of one submit.
type State uint8

const (
	StateInvalid State = iota + 1
	StateUploadFailed
	StateNotificationFailed
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateInvalid:
		return "invalid"
	case StateUploadFailed:
		return "upload_failed"
	case StateNotificationFailed:
		return "notification_failed"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// Outcome is what the page shows after a submit: inline field errors or a
// single status message.
type Outcome struct {
	Errors  ValidationErrors
	Message string
	FileURL string
	State   State
}

// Succeeded reports whether the submission was delivered.
func (o Outcome) Succeeded() bool {
	return o.State == StateSucceeded
}

// IsError reports whether Message describes a failure.
func (o Outcome) IsError() bool {
	return strings.Contains(o.Message, "Failed")
}

// Controller runs a submission through validation, upload and notification.
type Controller struct {
	uploader Uploader
	notifier notify.Notifier
	logger   *slog.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController creates a Controller.
func NewController(u Uploader, n notify.Notifier, opts ...ControllerOption) *Controller {
	c := &Controller{uploader: u, notifier: n, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit validates sub, uploads its file if there is one and sends one
// notification. Each outbound call happens at most once and only if every
// previous step succeeded.
func (c *Controller) Submit(ctx context.Context, form *Form, sub *Submission) Outcome {
	log := c.logger.With(slog.String("form", form.Name))

	if errs := Validate(form, sub); len(errs) > 0 {
		log.DebugContext(ctx, "submission invalid", slog.Int("errors", len(errs)))
		return Outcome{State: StateInvalid, Errors: errs}
	}

	var fileURL string
	if sub.File != nil {
		url, err := c.uploader.Upload(ctx, sub.File)
		if err != nil {
			msg := relay.MsgUploadFailed
			if re := relay.AsError(err); re != nil {
				msg = re.Message
			}
			log.WarnContext(ctx, "submission upload failed", slog.Any("error", err))
			return Outcome{State: StateUploadFailed, Message: msg}
		}
		fileURL = url
	}

	err := c.notifier.Notify(ctx, notify.Message{
		TemplateID: form.Name,
		Params:     BuildParams(form, sub, fileURL),
		ReplyTo:    sub.Email,
	})
	if err != nil {
		log.WarnContext(ctx, "submission notification failed", slog.Any("error", err))
		return Outcome{
			State:   StateNotificationFailed,
			Message: msgNotificationFailed + notify.ErrorText(err),
			FileURL: fileURL,
		}
	}

	log.InfoContext(ctx, "submission delivered", slog.Bool("file", fileURL != ""))
	return Outcome{State: StateSucceeded, Message: MsgSucceeded, FileURL: fileURL}
}
