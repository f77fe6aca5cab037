package storage

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a key has no value.
	ErrNotFound = errors.New("Not found")
)

// Reader reads values by key.
type Reader interface {
	Read(ctx context.Context, key string) ([]byte, error)
}

// Writer writes and removes values by key.
type Writer interface {
	Write(ctx context.Context, key string, body []byte, options *Options) error
	Remove(ctx context.Context, key string) error
}

// ReadWriter is the full key/value surface used by the ledger.
type ReadWriter interface {
	Reader
	Writer
}

// Storage is a ReadWriter that can be released.
type Storage interface {
	ReadWriter
	Close() error
}

// Options are applied to a single write.
type Options struct {
	Mode    os.FileMode
	DirMode os.FileMode
}

// NewOptions returns the default write options.
func NewOptions() Options {
	return Options{
		Mode:    0644,
		DirMode: 0755,
	}
}

// CreateStorage selects a backend from the config. A DSN selects PostgreSQL, the "standalone"
// bucket selects the local filesystem and any other bucket selects S3.
func CreateStorage(config Config) (Storage, error) {
	if len(config.DSN) > 0 {
		pg, err := NewPostgresStorage(config)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}

	if strings.ToLower(config.Bucket) == "standalone" {
		return NewFilesystemStorage(config), nil
	}

	return NewS3Storage(config), nil
}
