// Package htmx implements the small part of the HTMX request/response
// protocol the intake form relies on: request detection, redirects and
// response headers that steer swaps and client-side events.
package htmx

import "net/http"

// Request headers sent by htmx.
const (
	HeaderHXRequest = "HX-Request"
	HeaderHXTarget  = "HX-Target"
)

// Response headers understood by htmx.
const (
	HeaderHXRedirect = "HX-Redirect"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXReswap   = "HX-Reswap"
	HeaderHXTrigger  = "HX-Trigger"
)

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// Target returns the id of the element that issued the request, if any.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderHXTarget)
}

// Redirect sends a client-side redirect for HTMX requests and a regular
// HTTP redirect otherwise. HTMX ignores 3xx responses to XHRs, so the
// HX-Redirect header with 200 is used instead.
func Redirect(w http.ResponseWriter, r *http.Request, url string, code int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, code)
}
