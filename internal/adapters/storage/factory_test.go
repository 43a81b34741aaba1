package storage

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestFactory_Create(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "products.json"), []byte("[]"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	factory := NewFactory(DefaultRetryConfig(), fstest.MapFS{}, nil)

	tests := []struct {
		name      string
		config    *StorageConfig
		wantErr   bool
		wantRetry bool
	}{
		{name: "embedded", config: &StorageConfig{Type: "embedded"}},
		{name: "local", config: &StorageConfig{Type: "local", BasePath: tempDir}, wantRetry: true},
		{name: "local uppercase", config: &StorageConfig{Type: "LOCAL", BasePath: tempDir}, wantRetry: true},
		{name: "mock is not configurable", config: &StorageConfig{Type: "mock"}, wantErr: true},
		{name: "missing local path", config: &StorageConfig{Type: "local", BasePath: filepath.Join(tempDir, "nope")}, wantErr: true},
		{name: "unsupported", config: &StorageConfig{Type: "s3"}, wantErr: true},
		{name: "nil config", config: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, err := factory.Create(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer storage.Close()

			_, isRetry := storage.(*RereadingFileStorage)
			if isRetry != tt.wantRetry {
				t.Errorf("Expected reread wrapper = %v, got %T", tt.wantRetry, storage)
			}
		})
	}
}

func TestFactory_LocalWithoutRetry(t *testing.T) {
	factory := NewFactory(nil, nil, nil)
	storage, err := factory.Create(&StorageConfig{Type: "local", BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, ok := storage.(*LocalFileStorage); !ok {
		t.Errorf("Expected *LocalFileStorage, got %T", storage)
	}
}

func TestFactory_EmbeddedWithoutFS(t *testing.T) {
	factory := NewFactory(nil, nil, nil)
	if _, err := factory.Create(&StorageConfig{Type: "embedded"}); err == nil {
		t.Error("Expected error when no embedded filesystem is configured")
	}
}
