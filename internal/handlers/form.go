package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/intake/internal"
	"github.com/dmitrymomot/intake/internal/relay"
	"github.com/dmitrymomot/intake/internal/submission"
	"github.com/dmitrymomot/intake/internal/views"
	"github.com/dmitrymomot/intake/pkg/htmx"
)

// TriggerSubmitted is the HX-Trigger event fired after a delivered submission.
const TriggerSubmitted = "form-submitted"

// FormHandler accepts form posts.
type FormHandler struct {
	submitter Submitter
	maxSize   int64
}

// NewFormHandler creates a FormHandler. maxSize bounds the uploaded file.
func NewFormHandler(s Submitter, maxSize int64) *FormHandler {
	if maxSize <= 0 {
		maxSize = relay.DefaultMaxSize
	}
	return &FormHandler{submitter: s, maxSize: maxSize}
}

func (h *FormHandler) Routes(r internal.Router) {
	r.POST("/apply/{form}", h.submit)
}

func (h *FormHandler) submit(c internal.Context) error {
	form, ok := submission.Lookup(c.Param("form"))
	if !ok {
		return internal.ErrNotFound("Unknown form", internal.WithErrorCode("unknown_form"))
	}

	in, err := relay.ParseMultipart(c.Response(), c.Request(), h.maxSize)
	switch {
	case err == nil, errors.Is(err, relay.ErrMissingFile):
	case errors.Is(err, relay.ErrFileTooLarge):
		// The body overflowed outside the file part.
		sub := submission.Bind(in, form)
		return h.render(c, form, sub, submission.Outcome{State: submission.StateUploadFailed, Message: relay.MsgFileTooLarge})
	default:
		return internal.ErrBadRequest("Invalid form data", internal.WithError(err))
	}

	sub := submission.Bind(in, form)
	defer sub.Close()

	out := h.submitter.Submit(c, form, sub)
	c.LogDebug("form submitted", slog.String("form", form.Name), slog.String("state", out.State.String()))

	return h.render(c, form, sub, out)
}

func (h *FormHandler) render(c internal.Context, form *submission.Form, sub *submission.Submission, out submission.Outcome) error {
	state := views.StateFromOutcome(sub, out)

	var opts []htmx.RenderOption
	if out.Succeeded() {
		opts = append(opts, htmx.WithOOB(views.Modal()), htmx.WithTrigger(TriggerSubmitted))
	}

	return c.RenderPartial(statusFor(out),
		views.Page(form, state),
		views.Form(form, state),
		opts...,
	)
}

func statusFor(out submission.Outcome) int {
	switch out.State {
	case submission.StateInvalid:
		return http.StatusUnprocessableEntity
	case submission.StateUploadFailed:
		if out.Message == relay.MsgUploadFailed {
			return http.StatusInternalServerError
		}
		return http.StatusBadRequest
	case submission.StateNotificationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}
