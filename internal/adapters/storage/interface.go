package storage

import (
	"context"
	"time"
)

// FileMetadata describes a dataset file as seen by the storage backend
type FileMetadata struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	LastModified time.Time `json:"last_modified"`
}

// FileStorage provides read access to dataset files.
// The catalog is loaded once at cold start, so only read operations exist.
type FileStorage interface {
	// Retrieve reads the whole dataset stored under key
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// GetMetadata stats the dataset without reading it
	GetMetadata(ctx context.Context, key string) (*FileMetadata, error)

	// Close releases any resources held by the backend
	Close() error
}

// StorageConfig selects the backend the dataset is read from
type StorageConfig struct {
	Type     string `json:"type" yaml:"type"`           // "embedded" or "local"
	BasePath string `json:"base_path" yaml:"base_path"` // For local storage
}
