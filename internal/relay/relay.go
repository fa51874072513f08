package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/intake/pkg/logger"
	"github.com/dmitrymomot/intake/pkg/storage"
)

const (
	// FieldName is the multipart field carrying the file.
	FieldName = "resume"

	// DefaultFolder is the storage folder uploads land in.
	DefaultFolder = "resumes"

	// DefaultMaxSize is the largest accepted file, 10 MiB.
	DefaultMaxSize int64 = 10 << 20
)

// DefaultAllowedTypes is the server-side allow-list of declared content types.
var DefaultAllowedTypes = []string{
	storage.MIMEPDF,
	storage.MIMEDOC,
	storage.MIMEDOCX,
	storage.MIMEJPEG,
	storage.MIMEPNG,
	storage.MIMEGIF,
	storage.MIMEBMP,
	storage.MIMEWebP,
	storage.MIMEXLS,
	storage.MIMEXLSX,
	storage.MIMECSV,
}

// File is one uploaded file as declared by the client.
type File struct {
	Content     io.Reader
	closer      io.Closer
	Name        string
	ContentType string
	Size        int64
}

// Close releases the underlying multipart file, if any.
func (f *File) Close() error {
	if f == nil || f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// Service validates files and forwards them to storage.
type Service struct {
	store   storage.Storage
	logger  *slog.Logger
	folder  string
	allowed []string
	maxSize int64
}

// Option configures a Service.
type Option func(*Service)

// WithFolder overrides the destination folder.
func WithFolder(folder string) Option {
	return func(s *Service) {
		if folder != "" {
			s.folder = folder
		}
	}
}

// WithMaxSize overrides the size limit in bytes.
func WithMaxSize(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// WithAllowedTypes replaces the content type allow-list.
func WithAllowedTypes(types ...string) Option {
	return func(s *Service) {
		if len(types) > 0 {
			s.allowed = slices.Clone(types)
		}
	}
}

// WithLogger sets the logger used for transitions and failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a relay in front of store.
func New(store storage.Storage, opts ...Option) *Service {
	s := &Service{
		store:   store,
		logger:  logger.NewNope(),
		folder:  DefaultFolder,
		maxSize: DefaultMaxSize,
		allowed: slices.Clone(DefaultAllowedTypes),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxSize returns the configured size limit.
func (s *Service) MaxSize() int64 {
	return s.maxSize
}

// Upload validates f and forwards it to storage in a single call.
// It returns the public URL of the stored file or an *Error.
func (s *Service) Upload(ctx context.Context, f *File) (string, error) {
	t := &tracker{logger: s.logger}
	t.advance(ctx, StateValidating)

	if err := s.validate(f); err != nil {
		t.advance(ctx, StateRejected)
		s.logger.InfoContext(ctx, "upload rejected", slog.String("reason", err.Code()))
		return "", err
	}

	t.advance(ctx, StateForwarding)

	info, err := s.store.Put(ctx, f.Content, f.Size,
		storage.WithFolder(s.folder),
		storage.WithFilename(f.Name),
		storage.WithContentType(f.ContentType),
		storage.WithValidation(s.rules()...),
	)
	if err != nil {
		t.advance(ctx, StateFailed)
		s.logger.ErrorContext(ctx, "upload failed",
			slog.String("file", f.Name),
			slog.Any("error", err),
		)
		return "", newError(ErrUploadFailed, err)
	}

	t.advance(ctx, StateSucceeded)
	s.logger.InfoContext(ctx, "upload stored",
		slog.String("key", info.Key),
		slog.Int64("size", info.Size),
	)
	return info.URL, nil
}

// rules are checked here and again by the backend before it uploads.
func (s *Service) rules() []storage.ValidationRule {
	return []storage.ValidationRule{
		storage.NotEmpty(),
		storage.MaxSize(s.maxSize),
		storage.AllowedTypes(s.allowed...),
	}
}

// validate checks presence, then size, then declared type.
func (s *Service) validate(f *File) *Error {
	if f == nil || f.Content == nil || f.Name == "" {
		return newError(ErrMissingFile, nil)
	}

	err := storage.ValidateFile(f.Size, f.ContentType, s.rules()...)
	if err == nil {
		return nil
	}

	var fve *storage.FileValidationError
	if errors.As(err, &fve) {
		switch fve.Code {
		case storage.ErrCodeEmptyFile:
			return newError(ErrMissingFile, err)
		case storage.ErrCodeFileTooLarge:
			return newError(ErrFileTooLarge, err)
		}
	}
	return newError(ErrUnsupportedType, err)
}
