package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStorage reads datasets from a directory on disk. The files may be
// replaced by a deploy while the service runs.
type LocalFileStorage struct {
	basePath string
}

// NewLocalFileStorage creates a LocalFileStorage rooted at basePath, which
// must be an existing directory
func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, permanentError("open", "", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, permanentError("open", "", ErrDatasetNotFound)
		}
		return nil, permanentError("open", "", err)
	}
	if !info.IsDir() {
		return nil, permanentError("open", "", ErrInvalidKey)
	}

	return &LocalFileStorage{basePath: absPath}, nil
}

// Retrieve reads the dataset and checks that it did not change underneath
// the read. A file rewritten mid-read yields ErrIncompleteRead.
func (l *LocalFileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	if err := l.validateKey(key); err != nil {
		return nil, permanentError("read", key, err)
	}

	f, err := os.Open(l.getFilePath(key))
	if err != nil {
		return nil, classify("read", key, err)
	}
	defer f.Close()

	before, err := f.Stat()
	if err != nil {
		return nil, classify("read", key, err)
	}
	if before.IsDir() {
		return nil, permanentError("read", key, ErrInvalidKey)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, transientError("read", key, err)
	}

	after, err := os.Stat(l.getFilePath(key))
	if err != nil {
		return nil, classify("read", key, err)
	}

	if int64(len(data)) != before.Size() || after.Size() != before.Size() || !after.ModTime().Equal(before.ModTime()) {
		return nil, transientError("read", key, ErrIncompleteRead)
	}

	return data, nil
}

// GetMetadata implements FileStorage.GetMetadata
func (l *LocalFileStorage) GetMetadata(ctx context.Context, key string) (*FileMetadata, error) {
	if err := l.validateKey(key); err != nil {
		return nil, permanentError("stat", key, err)
	}

	stat, err := os.Stat(l.getFilePath(key))
	if err != nil {
		return nil, classify("stat", key, err)
	}
	if stat.IsDir() {
		return nil, permanentError("stat", key, ErrInvalidKey)
	}

	return &FileMetadata{
		Key:          key,
		Size:         stat.Size(),
		ContentType:  contentTypeOf(key),
		LastModified: stat.ModTime(),
	}, nil
}

// Close implements FileStorage.Close
func (l *LocalFileStorage) Close() error {
	return nil
}

// classify maps filesystem errors onto the dataset errors. Anything other
// than a missing file or a permission problem may clear up on a second read.
func classify(op, key string, err error) *ReadError {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return permanentError(op, key, ErrDatasetNotFound)
	case errors.Is(err, fs.ErrPermission):
		return permanentError(op, key, ErrPermissionDenied)
	default:
		return transientError(op, key, err)
	}
}

// validateKey rejects empty keys and keys escaping the base path
func (l *LocalFileStorage) validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	cleaned := filepath.Clean(key)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return ErrInvalidKey
	}

	return nil
}

func (l *LocalFileStorage) getFilePath(key string) string {
	return filepath.Join(l.basePath, filepath.Clean(key))
}

func contentTypeOf(key string) string {
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return contentType
}
