// Package storage holds the binary side of uploaded images. Keys are flat file names.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"docsite/internal/config"
)

// ErrObjectNotFound is returned by Get and Delete for unknown keys.
var ErrObjectNotFound = errors.New("object not found")

// ErrInvalidKey is returned for keys that are empty or contain path elements.
var ErrInvalidKey = errors.New("invalid object key")

// TempPrefix marks in-flight uploads. Objects with this prefix are never served.
const TempPrefix = ".upload-"

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is implemented by the local disk backend and the S3-compatible backend.
// Implementations are safe for concurrent use.
type Storage interface {
	// Put stores r under key. A reader of the key never observes a partially written object.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// List returns every stored object, including leftover temp objects.
	List(ctx context.Context) ([]ObjectInfo, error)
}

// ValidKey reports whether key is a plain file name.
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, `/\`) && path.Base(key) == key
}

// IsTemp reports whether key names an unfinished upload.
func IsTemp(key string) bool {
	return strings.HasPrefix(key, TempPrefix)
}

// Open returns the backend selected by STORAGE_DRIVER: "disk" (default) or "minio".
func Open(sc config.StorageConfig, mc config.MinIOConfig) (Storage, error) {
	switch sc.Driver {
	case "", "disk":
		return NewDisk(sc.UploadDir)
	case "minio", "s3":
		return NewMinIO(mc)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", sc.Driver)
	}
}
