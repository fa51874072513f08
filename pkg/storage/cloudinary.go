package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryConfig holds Cloudinary account credentials.
type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`

	// UploadPrefix replaces https://api.cloudinary.com, e.g. for a regional host.
	UploadPrefix string `env:"CLOUDINARY_UPLOAD_PREFIX"`

	Folder string `env:"-"`
}

func (c *CloudinaryConfig) validate() error {
	if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
		return fmt.Errorf("%w: cloud name, api key and api secret are required", ErrInvalidConfig)
	}
	return nil
}

// CloudinaryStorage uploads files to Cloudinary and lets it pick the
// resource type, so images and documents share one code path.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
	cfg CloudinaryConfig
}

// NewCloudinary creates a Cloudinary backend.
func NewCloudinary(cfg CloudinaryConfig) (*CloudinaryStorage, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Folder == "" {
		cfg.Folder = DefaultFolder
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cld.Config.URL.Secure = true
	if cfg.UploadPrefix != "" {
		prefix := strings.TrimSuffix(cfg.UploadPrefix, "/")
		cld.Config.API.UploadPrefix = prefix
		cld.Upload.Config.API.UploadPrefix = prefix
		cld.Admin.Config.API.UploadPrefix = prefix
	}

	return &CloudinaryStorage{cld: cld, cfg: cfg}, nil
}

func (s *CloudinaryStorage) Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	o := newPutOptions(s.cfg.Folder, "", opts...)

	if err := ValidateFile(size, o.contentType, o.validationRules...); err != nil {
		return nil, err
	}

	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       o.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, errors.New(resp.Error.Message))
	}
	if resp.SecureURL == "" {
		return nil, fmt.Errorf("%w: empty secure_url in response", ErrUploadFailed)
	}

	return &FileInfo{
		Key:         resp.PublicID,
		ContentType: o.contentType,
		Size:        size,
		URL:         resp.SecureURL,
	}, nil
}

// URL returns the delivery URL of an image asset. Documents uploaded as
// raw resources are only reachable through the URL returned by Put.
func (s *CloudinaryStorage) URL(key string) string {
	img, err := s.cld.Image(key)
	if err == nil {
		if u, err := img.String(); err == nil {
			return u
		}
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", s.cfg.CloudName, key)
}

// Ping calls the admin ping endpoint, which also verifies the credentials.
func (s *CloudinaryStorage) Ping(ctx context.Context) error {
	resp, err := s.cld.Admin.Ping(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Error.Message)
	}
	return nil
}

var _ Storage = (*CloudinaryStorage)(nil)
