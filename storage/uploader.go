package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored flag image.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores team flag images in an object store. Keys are
// stable per team so re-uploading a flag replaces the previous image.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	// GetPublicURL returns the public address of a stored key, or ""
	// when the key can not be resolved.
	GetPublicURL(key string) string
}
