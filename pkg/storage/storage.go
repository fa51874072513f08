package storage

import (
	"context"
	"io"
)

// Storage stores a file and reports where it can be fetched.
type Storage interface {
	// Put uploads size bytes from r. The returned FileInfo carries the
	// public URL of the stored object.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// URL returns the public URL for a stored key.
	URL(key string) string

	// Ping checks that the backend is reachable with the configured credentials.
	Ping(ctx context.Context) error
}

// FileInfo describes a stored object.
type FileInfo struct {
	Key         string
	ContentType string
	URL         string
	Size        int64
}

// ACL is an object access level for S3.
type ACL string

const (
	ACLPrivate    ACL = "private"
	ACLPublicRead ACL = "public-read"
)

const (
	DefaultRegion = "us-east-1"
	DefaultFolder = "uploads"
)
