package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	// ErrInvalidConfig is returned when a backend is built with missing credentials or bucket.
	ErrInvalidConfig = errors.New("storage: invalid configuration")

	// ErrNotFound is returned when the bucket or object does not exist.
	ErrNotFound = errors.New("storage: not found")

	// ErrAccessDenied is returned when the backend rejects the credentials.
	ErrAccessDenied = errors.New("storage: access denied")

	// ErrUploadFailed is returned when the backend fails to store the file
	// or answers without a usable URL.
	ErrUploadFailed = errors.New("storage: upload failed")

	// ErrUnavailable is returned when the backend cannot be reached.
	ErrUnavailable = errors.New("storage: backend unavailable")
)

// wrapS3Error maps S3 API error codes onto package sentinels.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
	}

	var noBucket *types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %w", fallback, err)
}
