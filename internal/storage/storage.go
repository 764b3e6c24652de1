// Package storage provides the object store tablet snapshots are written to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tabletkv/tabletkv/internal/config"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrPutFailed      = errors.New("put failed")
	ErrGetFailed      = errors.New("get failed")
	ErrDeleteFailed   = errors.New("delete failed")
)

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Path     string
	Size     int64
	ETag     string
	Modified time.Time
}

// ObjectStorage is a flat namespace of immutable objects addressed by
// slash-separated paths. A Put replaces any previous object at the path
// atomically: readers see the old object or the new one, never a mix.
type ObjectStorage interface {
	// Put stores size bytes read from body and returns the object's ETag.
	// body may be re-read from the start when a transfer is retried.
	Put(ctx context.Context, objectPath string, body io.ReadSeeker, size int64) (string, error)

	// Get opens an object for reading. A missing object yields
	// ErrObjectNotFound. The caller closes the reader.
	Get(ctx context.Context, objectPath string) (io.ReadCloser, error)

	// Stat returns the object's metadata or ErrObjectNotFound.
	Stat(ctx context.Context, objectPath string) (ObjectInfo, error)

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, objectPath string) error

	// List returns every object under prefix ordered by path.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// Open builds the store described by cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (ObjectStorage, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "local":
		return NewLocalStorage(cfg.Path)
	case "s3":
		s3cfg := DefaultS3Config()
		if cfg.S3.Region != "" {
			s3cfg.Region = cfg.S3.Region
		}
		s3cfg.Endpoint = cfg.S3.Endpoint
		s3cfg.UsePathStyle = cfg.S3.UsePathStyle
		return NewS3Storage(ctx, cfg.S3.Bucket, s3cfg)
	default:
		return nil, fmt.Errorf("storage: unsupported type %q", cfg.Type)
	}
}
