package storage

import (
	"path"
	"strings"
)

// Option configures a single Put.
type Option func(*putOptions)

type putOptions struct {
	folder          string
	filename        string // original client file name
	contentType     string // declared content type
	acl             ACL
	validationRules []ValidationRule
}

func newPutOptions(defaultFolder string, defaultACL ACL, opts ...Option) *putOptions {
	o := &putOptions{folder: defaultFolder, acl: defaultACL}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ext returns the extension for the object key: the one implied by the
// content type, else the original file name's, else ".bin".
func (o *putOptions) ext() string {
	if ext := ExtFromMIME(o.contentType); ext != "" {
		return ext
	}
	if ext := strings.ToLower(path.Ext(o.filename)); ext != "" && len(ext) <= 6 {
		return ext
	}
	return ".bin"
}

// WithFolder places the object under folder (e.g. "resumes").
func WithFolder(folder string) Option {
	return func(o *putOptions) {
		o.folder = folder
	}
}

// WithFilename records the client's original file name.
func WithFilename(name string) Option {
	return func(o *putOptions) {
		o.filename = name
	}
}

// WithContentType sets the declared content type. When omitted S3 sniffs it.
func WithContentType(ct string) Option {
	return func(o *putOptions) {
		o.contentType = ct
	}
}

// WithValidation runs rules before anything is sent to the backend.
func WithValidation(rules ...ValidationRule) Option {
	return func(o *putOptions) {
		o.validationRules = append(o.validationRules, rules...)
	}
}

// PutParams is the resolved form of a Put's options, for Storage
// implementations outside this package.
type PutParams struct {
	Folder      string
	Filename    string
	ContentType string
	Rules       int // number of validation rules attached
}

// ResolveOptions applies opts and returns the result.
func ResolveOptions(opts ...Option) PutParams {
	o := newPutOptions("", "", opts...)
	return PutParams{
		Folder:      o.folder,
		Filename:    o.filename,
		ContentType: o.contentType,
		Rules:       len(o.validationRules),
	}
}
