package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/intake/internal"
	"github.com/dmitrymomot/intake/internal/relay"
	"github.com/dmitrymomot/intake/internal/views"
	"github.com/dmitrymomot/intake/middlewares"
	"github.com/dmitrymomot/intake/pkg/htmx"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler renders errors returned by handlers: {error} JSON for API
// routes and JSON clients, an error page otherwise.
func ErrorHandler(c internal.Context, err error) error {
	he := toHTTPError(err)
	if he.RequestID == "" {
		he.RequestID = middlewares.GetRequestID(c)
	}

	if he.Code >= http.StatusInternalServerError {
		c.LogError("request failed",
			slog.Int("status", he.Code),
			slog.String("code", he.ErrorCode),
			slog.Any("error", err),
		)
	}

	if wantsJSON(c.Request()) {
		return c.JSON(he.Code, errorResponse{Error: he.Message, RequestID: he.RequestID})
	}

	return c.Render(he.Code, views.ErrorPage(he.Code, he.StatusText(), he.Message),
		htmx.WithRetarget("body"),
		htmx.WithReswap(htmx.SwapInnerHTML),
	)
}

// NotFound is the handler for unknown routes.
func NotFound(internal.Context) error {
	return internal.ErrNotFound("Page not found")
}

// MethodNotAllowed is the handler for known routes hit with the wrong method.
func MethodNotAllowed(internal.Context) error {
	return internal.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
}

func toHTTPError(err error) *internal.HTTPError {
	if he := internal.AsHTTPError(err); he != nil {
		return he
	}
	if relay.AsError(err) != nil {
		return relayHTTPError(err)
	}
	return internal.ErrInternal(http.StatusText(http.StatusInternalServerError), internal.WithError(err))
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
