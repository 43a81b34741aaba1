package storage

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/sirupsen/logrus"
)

// StorageType names a dataset backend
type StorageType string

const (
	StorageTypeEmbedded StorageType = "embedded"
	StorageTypeLocal    StorageType = "local"
)

// Factory creates FileStorage instances based on configuration
type Factory struct {
	retryConfig *RetryConfig
	embedded    fs.FS
	logger      logrus.FieldLogger
}

// NewFactory creates a new storage factory. embedded backs the "embedded"
// storage type and may be nil when that type is not used.
func NewFactory(retryConfig *RetryConfig, embedded fs.FS, logger logrus.FieldLogger) *Factory {
	return &Factory{
		retryConfig: retryConfig,
		embedded:    embedded,
		logger:      logger,
	}
}

// Create creates a FileStorage instance based on the provided configuration
func (f *Factory) Create(config *StorageConfig) (FileStorage, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	storageType := StorageType(strings.ToLower(config.Type))

	switch storageType {
	case StorageTypeEmbedded:
		if f.embedded == nil {
			return nil, fmt.Errorf("failed to create %s storage: no embedded filesystem configured", config.Type)
		}
		// Bundled files cannot change underneath a read
		return NewEmbeddedFileStorage(f.embedded), nil

	case StorageTypeLocal:
		basePath := config.BasePath
		if basePath == "" {
			basePath = "./data"
		}
		local, err := NewLocalFileStorage(basePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s storage: %w", config.Type, err)
		}
		if f.retryConfig == nil {
			return local, nil
		}
		return NewRereadingFileStorage(local, f.retryConfig, f.logger), nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}
}
