package handlers

import (
	"net/http"

	"github.com/dmitrymomot/intake/internal"
	"github.com/dmitrymomot/intake/internal/submission"
	"github.com/dmitrymomot/intake/internal/views"
)

// PageHandler serves the form pages.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Routes(r internal.Router) {
	r.GET("/", h.page(submission.Application))
	r.GET("/contact", h.page(submission.Contact))
}

func (h *PageHandler) page(form *submission.Form) internal.HandlerFunc {
	return func(c internal.Context) error {
		return c.RenderPartial(http.StatusOK,
			views.Page(form, views.FormState{}),
			views.Form(form, views.FormState{}),
		)
	}
}
