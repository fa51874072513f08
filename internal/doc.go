// Package internal is the HTTP runtime of the intake service.
//
// It wraps chi with a small set of abstractions used by every handler and
// middleware in the module:
//
//   - App: routing, middleware, health endpoints and graceful shutdown
//   - Context: request/response access plus JSON, HTML and HTMX helpers
//   - Router: method routing and grouping declared by a Handler
//   - HTTPError: an error that carries its status code and public message
//
// Context embeds context.Context, so it can be passed straight to storage
// and notification clients:
//
//	func (h *UploadHandler) upload(c internal.Context) error {
//	    url, err := h.relay.Relay(c, file)
//	    ...
//	}
//
// Handlers never write error responses themselves. They return an error and
// the ErrorHandler configured with WithErrorHandler renders it. For HTMX
// requests the ResponseWriter rewrites any status to 200 so the swap happens.
package internal
