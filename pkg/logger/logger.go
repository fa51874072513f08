// Package logger builds the service's slog.Logger: JSON (or text) output,
// request-scoped attributes pulled from the context, and optional Sentry
// fan-out for warnings and errors.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config configures the root logger.
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is json or text. Defaults to json.
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	Sentry SentryConfig

	// Output defaults to os.Stdout.
	Output io.Writer `env:"-"`
}

// New creates a logger from cfg. Extractors add attributes from the
// context passed to the *Context logging methods.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	if cfg.Sentry.DSN != "" {
		sh, err := newSentryHandler(cfg.Sentry)
		if err != nil {
			slog.New(handler).Error("sentry disabled", slog.Any("error", err))
		} else {
			handler = newFanout(handler, sh)
		}
	}

	return slog.New(newContextHandler(handler, extractors...))
}

// ParseLevel maps a level name to slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
