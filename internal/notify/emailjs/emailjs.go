// Package emailjs sends template notifications through the EmailJS REST API.
//
// Server-side calls must be enabled in the EmailJS account security
// settings; setting a private key (access token) is strongly advised there.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"strings"

	"github.com/dmitrymomot/intake/internal/notify"
	"github.com/dmitrymomot/intake/pkg/logger"
)

const (
	DefaultBaseURL = "https://api.emailjs.com"
	sendPath       = "/api/v1.0/email/send"

	// maxErrorBody bounds how much of an error response is kept as text.
	maxErrorBody = 4 << 10
)

var ErrInvalidConfig = errors.New("emailjs: service id, template id and public key are required")

// Config holds EmailJS account settings.
type Config struct {
	ServiceID  string `env:"EMAILJS_SERVICE_ID"`
	TemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	PublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
	PrivateKey string `env:"EMAILJS_PRIVATE_KEY"`
	BaseURL    string `env:"EMAILJS_BASE_URL" envDefault:"https://api.emailjs.com"`
}

// Client implements notify.Notifier.
type Client struct {
	http   *http.Client
	logger *slog.Logger
	cfg    Config
	// templates maps a form name to an EmailJS template id. Forms not in
	// the map use cfg.TemplateID.
	templates map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTemplate routes form to a dedicated EmailJS template.
func WithTemplate(form, templateID string) Option {
	return func(c *Client) {
		c.templates[form] = templateID
	}
}

// New creates a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ServiceID == "" || cfg.TemplateID == "" || cfg.PublicKey == "" {
		return nil, ErrInvalidConfig
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	c := &Client{
		cfg:       cfg,
		http:      &http.Client{},
		logger:    logger.NewNope(),
		templates: map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type sendRequest struct {
	TemplateParams map[string]string `json:"template_params"`
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
}

// Notify posts one send request. A non-2xx answer becomes a *notify.Error
// carrying the status and the response body as text.
func (c *Client) Notify(ctx context.Context, msg notify.Message) error {
	params := map[string]string(msg.Params)
	if msg.ReplyTo != "" {
		params = make(map[string]string, len(msg.Params)+1)
		maps.Copy(params, msg.Params)
		params["reply_to"] = msg.ReplyTo
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.templateFor(msg.TemplateID),
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("emailjs: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "emailjs request failed", slog.Any("error", err))
		return &notify.Error{Text: "email service unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.InfoContext(ctx, "notification sent", slog.String("template", msg.TemplateID))
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	text := strings.TrimSpace(string(raw))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	c.logger.ErrorContext(ctx, "emailjs rejected notification",
		slog.Int("status", resp.StatusCode),
		slog.String("text", text),
	)
	return &notify.Error{Status: resp.StatusCode, Text: text}
}

func (c *Client) templateFor(form string) string {
	if id, ok := c.templates[form]; ok {
		return id
	}
	return c.cfg.TemplateID
}
