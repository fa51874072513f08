// Package notify delivers a submitted form to the people who handle it.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Notifier sends one notification per submission.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Params is the flat parameter bag handed to the notification template.
type Params map[string]string

// Message is a single notification.
type Message struct {
	Params     Params
	TemplateID string // form name, e.g. "application"
	ReplyTo    string
}

// Error is a failed delivery. Text is the provider's description of the
// failure and is shown to the submitter.
type Error struct {
	Err    error
	Text   string
	Status int // provider HTTP status, 0 when the request never completed
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("notify: status %d: %s", e.Status, e.Text)
	}
	return "notify: " + e.Text
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a notify *Error from err, or nil.
func AsError(err error) *Error {
	var ne *Error
	if errors.As(err, &ne) {
		return ne
	}
	return nil
}

// ErrorText returns the text to show for a failed notification.
func ErrorText(err error) string {
	if ne := AsError(err); ne != nil && ne.Text != "" {
		return ne.Text
	}
	if err == nil {
		return ""
	}
	return strings.TrimPrefix(err.Error(), "notify: ")
}
