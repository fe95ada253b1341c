// Package storage keeps exported radiograph images in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound is returned when no image is stored under a key.
var ErrObjectNotFound = errors.New("object not found")

// KeyPrefix is the folder radiograph images are written under.
const KeyPrefix = "radiographs/"

// ObjectKey names the stored image of radiograph id; ext carries the dot.
func ObjectKey(id, ext string) string {
	return KeyPrefix + id + ext
}

// PutObjectOptions describe an image upload. Size is -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo is what the bucket reports about a stored image.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage stores, streams and removes radiograph images.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get fails with ErrObjectNotFound when key holds nothing.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a download URL valid for expiry.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
