// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/intake/internal/notify/emailjs"
	"github.com/dmitrymomot/intake/pkg/logger"
	"github.com/dmitrymomot/intake/pkg/mailer"
	"github.com/dmitrymomot/intake/pkg/mailer/resend"
	"github.com/dmitrymomot/intake/pkg/storage"
)

// Storage drivers.
const (
	StorageCloudinary = "cloudinary"
	StorageS3         = "s3"
)

// Notification drivers.
const (
	NotifyEmailJS = "emailjs"
	NotifyResend  = "resend"
)

var ErrUnknownDriver = errors.New("config: unknown driver")

// Config is the full service configuration.
type Config struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	Logger logger.Config

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"cloudinary"`
	Cloudinary    storage.CloudinaryConfig
	S3            storage.S3Config
	UploadFolder  string `env:"UPLOAD_FOLDER" envDefault:"resumes"`
	UploadMaxSize int64  `env:"UPLOAD_MAX_SIZE" envDefault:"10485760"`

	NotifyDriver string `env:"NOTIFY_DRIVER" envDefault:"emailjs"`
	NotifyInbox  string `env:"NOTIFY_INBOX"`
	EmailJS      emailjs.Config
	Resend       resend.Config
	Mailer       mailer.Config

	// EmailJSContactTemplate sends contact requests through their own
	// template. Empty means EMAILJS_TEMPLATE_ID serves both forms.
	EmailJSContactTemplate string `env:"EMAILJS_CONTACT_TEMPLATE_ID"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`
}

// Load reads .env files when present, then parses the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load dotenv: %w", err)
	}
	return parse(env.Options{})
}

// LoadFrom parses the given environment only. Used by tests.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.Cloudinary.Folder = cfg.UploadFolder
	cfg.S3.Folder = cfg.UploadFolder
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageCloudinary, StorageS3:
	default:
		return fmt.Errorf("%w: STORAGE_DRIVER=%q", ErrUnknownDriver, c.StorageDriver)
	}
	switch c.NotifyDriver {
	case NotifyEmailJS, NotifyResend:
	default:
		return fmt.Errorf("%w: NOTIFY_DRIVER=%q", ErrUnknownDriver, c.NotifyDriver)
	}
	return nil
}
