package storage

import (
	"context"
	"errors"
	"io/fs"
	"path"
)

// EmbeddedFileStorage implements FileStorage over a read-only fs.FS,
// typically files bundled into the binary with go:embed
type EmbeddedFileStorage struct {
	fsys fs.FS
}

// NewEmbeddedFileStorage creates a new EmbeddedFileStorage
func NewEmbeddedFileStorage(fsys fs.FS) *EmbeddedFileStorage {
	return &EmbeddedFileStorage{fsys: fsys}
}

// Retrieve implements FileStorage.Retrieve
func (e *EmbeddedFileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	if !fs.ValidPath(key) {
		return nil, permanentError("read", key, ErrInvalidKey)
	}

	data, err := fs.ReadFile(e.fsys, key)
	if err != nil {
		return nil, e.wrap("read", key, err)
	}

	return data, nil
}

// GetMetadata implements FileStorage.GetMetadata. Embedded files carry no
// modification time, so LastModified is the zero time.
func (e *EmbeddedFileStorage) GetMetadata(ctx context.Context, key string) (*FileMetadata, error) {
	if !fs.ValidPath(key) {
		return nil, permanentError("stat", key, ErrInvalidKey)
	}

	stat, err := fs.Stat(e.fsys, key)
	if err != nil {
		return nil, e.wrap("stat", key, err)
	}
	if stat.IsDir() {
		return nil, permanentError("stat", key, ErrInvalidKey)
	}

	return &FileMetadata{
		Key:          key,
		Size:         stat.Size(),
		ContentType:  contentTypeOf(path.Base(key)),
		LastModified: stat.ModTime(),
	}, nil
}

// Close implements FileStorage.Close
func (e *EmbeddedFileStorage) Close() error {
	return nil
}

// wrap never marks errors transient: the bundle cannot change at runtime
func (e *EmbeddedFileStorage) wrap(op, key string, err error) *ReadError {
	if errors.Is(err, fs.ErrNotExist) {
		return permanentError(op, key, ErrDatasetNotFound)
	}
	return permanentError(op, key, err)
}
