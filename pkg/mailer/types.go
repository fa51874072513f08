package mailer

import (
	"context"
	"fmt"
)

// Sender delivers a rendered email through a provider.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Email is a fully rendered message.
type Email struct {
	Tags    map[string]string
	Subject string
	HTML    string
	Text    string
	From    string // empty means the sender's default
	ReplyTo string
	To      []string
}

// Recipient formats "Name <email>", or just email when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
