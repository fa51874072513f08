// Package handlers exposes the intake pages, form submission and the
// upload relay over HTTP.
package handlers

import (
	"context"

	"github.com/dmitrymomot/intake/internal/relay"
	"github.com/dmitrymomot/intake/internal/submission"
)

// Relay validates and stores one uploaded file.
type Relay interface {
	Upload(ctx context.Context, f *relay.File) (string, error)
	MaxSize() int64
}

// Submitter runs a bound submission through validation, upload and
// notification.
type Submitter interface {
	Submit(ctx context.Context, form *submission.Form, sub *submission.Submission) submission.Outcome
}
