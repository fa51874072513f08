package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/intake/internal"
)

// RequestLogger writes one access log line per request with method, path,
// status, response size and duration. 5xx responses log at error level,
// 4xx at warn.
func RequestLogger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := http.StatusOK
			var size int64
			if rw := c.ResponseWriter(); rw != nil {
				status = rw.Status()
				size = rw.Size()
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", size),
				slog.Duration("duration", time.Since(start)),
			}
			if c.IsHTMX() {
				attrs = append(attrs, slog.Bool("htmx", true))
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}

			switch {
			case status >= http.StatusInternalServerError || err != nil:
				c.LogError("request", attrs...)
			case status >= http.StatusBadRequest:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}

			return err
		}
	}
}
