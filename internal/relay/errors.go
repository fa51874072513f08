package relay

import (
	"errors"
	"net/http"
)

// Error kinds.
var (
	// ErrMissingFile is returned when the request carries no file, or an empty one.
	ErrMissingFile = errors.New("relay: no file provided")

	// ErrFileTooLarge is returned when the file or the request body exceeds the size limit.
	ErrFileTooLarge = errors.New("relay: file too large")

	// ErrUnsupportedType is returned when the file's type is not on the allow list.
	ErrUnsupportedType = errors.New("relay: unsupported file type")

	// ErrUploadFailed is returned when the storage backend fails.
	ErrUploadFailed = errors.New("relay: upload failed")
)

// User-facing messages, one per kind.
const (
	MsgMissingFile     = "No file provided"
	MsgFileTooLarge    = "File size exceeds 10 MB limit"
	MsgUnsupportedType = "Unsupported file type. Allowed types: PDF, DOC, DOCX, images, spreadsheets (XLS, XLSX), CSV"
	MsgUploadFailed    = "Failed to upload file"
)

// Error is a relay failure. Message is safe to show to users; Err is the
// underlying cause and is only logged.
type Error struct {
	Kind    error
	Err     error
	Message string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Err.Error()
	}
	return e.Kind.Error()
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the kind to an HTTP status: 500 for upload failures,
// 400 for everything the client can fix.
func (e *Error) StatusCode() int {
	if e.Kind == ErrUploadFailed {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// Code is a stable machine-readable name for the kind.
func (e *Error) Code() string {
	switch e.Kind {
	case ErrMissingFile:
		return "missing_file"
	case ErrFileTooLarge:
		return "file_too_large"
	case ErrUnsupportedType:
		return "unsupported_type"
	default:
		return "upload_failed"
	}
}

func newError(kind error, cause error) *Error {
	return &Error{Kind: kind, Err: cause, Message: messageFor(kind)}
}

func messageFor(kind error) string {
	switch kind {
	case ErrMissingFile:
		return MsgMissingFile
	case ErrFileTooLarge:
		return MsgFileTooLarge
	case ErrUnsupportedType:
		return MsgUnsupportedType
	default:
		return MsgUploadFailed
	}
}

// AsError extracts a relay *Error from err, or nil.
func AsError(err error) *Error {
	var re *Error
	if errors.As(err, &re) {
		return re
	}
	return nil
}
