package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FilesystemStorage implements the Storage interface for interacting with
// the local filesystem.
type FilesystemStorage struct {
	Config Config
}

// NewFilesystemStorage implements the Storage interface for simple S3 like
// file system interactions.
func NewFilesystemStorage(config Config) FilesystemStorage {
	return FilesystemStorage{
		Config: config,
	}
}

// Write writes the data to a temporary file next to the key and renames it into place, so a
// reader never sees a partial value.
func (f FilesystemStorage) Write(ctx context.Context, key string, body []byte,
	options *Options) error {

	// make sure that the Options argument is valid
	if options == nil {
		opts := NewOptions()
		options = &opts
	}

	filename := f.buildPath(key)

	if err := f.ensureExists(path.Dir(filepath.ToSlash(filename)), options); err != nil {
		return err
	}

	mode := options.Mode
	if mode == 0 {
		mode = 0644
	}

	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, body, mode); err != nil {
		return errors.Wrap(err, "write temp file")
	}

	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "rename temp file")
	}

	return nil
}

// Read reads the data from a file on the local filesystem.
func (f FilesystemStorage) Read(ctx context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(f.buildPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return b, nil
}

// Remove removes the file stored at key.
func (f FilesystemStorage) Remove(ctx context.Context, key string) error {
	if err := os.Remove(f.buildPath(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

// Close has nothing to release.
func (f FilesystemStorage) Close() error {
	return nil
}

func (f FilesystemStorage) buildPath(key string) string {
	parts := []string{
		f.Config.Root,
		f.Config.Bucket,
	}

	if len(key) > 0 {
		parts = append(parts, key)
	}

	s := strings.Join(parts, "/")

	return filepath.FromSlash(s)
}

func (f FilesystemStorage) ensureExists(dir string, options *Options) error {
	dir = filepath.FromSlash(dir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		mode := options.DirMode
		if mode == 0 {
			mode = 0755
		}
		if err := os.MkdirAll(dir, mode); err != nil {
			return err
		}
	}

	return nil
}
