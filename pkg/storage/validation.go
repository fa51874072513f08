package storage

import (
	"fmt"
	"slices"
)

// FileValidationError is returned by a failed ValidationRule.
type FileValidationError struct {
	Details map[string]any
	Code    string
	Message string
}

func (e *FileValidationError) Error() string {
	return e.Message
}

const (
	ErrCodeFileTooLarge = "file_too_large"
	ErrCodeInvalidMIME  = "invalid_mime"
	ErrCodeEmptyFile    = "empty_file"
)

// ValidationRule checks a file by its size and declared content type.
type ValidationRule interface {
	Validate(size int64, contentType string) error
}

// RuleFunc adapts a function to ValidationRule.
type RuleFunc func(size int64, contentType string) error

func (f RuleFunc) Validate(size int64, contentType string) error {
	return f(size, contentType)
}

// ValidateFile applies rules in order and returns the first failure.
func ValidateFile(size int64, contentType string, rules ...ValidationRule) error {
	for _, rule := range rules {
		if err := rule.Validate(size, contentType); err != nil {
			return err
		}
	}
	return nil
}

// MaxSize rejects files larger than limit bytes. A file of exactly limit passes.
func MaxSize(limit int64) ValidationRule {
	return RuleFunc(func(size int64, _ string) error {
		if size <= limit {
			return nil
		}
		return &FileValidationError{
			Code:    ErrCodeFileTooLarge,
			Message: fmt.Sprintf("file size %d exceeds limit of %d bytes", size, limit),
			Details: map[string]any{"limit": limit, "got": size},
		}
	})
}

// NotEmpty rejects zero-byte files.
func NotEmpty() ValidationRule {
	return RuleFunc(func(size int64, _ string) error {
		if size > 0 {
			return nil
		}
		return &FileValidationError{
			Code:    ErrCodeEmptyFile,
			Message: "file is empty",
			Details: map[string]any{},
		}
	})
}

// AllowedTypes accepts content types matching one of patterns.
// A pattern is an exact type or a wildcard such as "image/*".
func AllowedTypes(patterns ...string) ValidationRule {
	patterns = slices.Clone(patterns)
	return RuleFunc(func(_ int64, contentType string) error {
		if matchesMIME(contentType, patterns) {
			return nil
		}
		return &FileValidationError{
			Code:    ErrCodeInvalidMIME,
			Message: fmt.Sprintf("file type %q is not allowed", contentType),
			Details: map[string]any{"type": contentType, "allowed": patterns},
		}
	})
}
