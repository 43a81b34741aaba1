package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLocalFileStorage_Retrieve(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "products.json"), []byte(`[{"id":"1"}]`), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tempDir, "catalog"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	storage, err := NewLocalFileStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer storage.Close()

	ctx := context.Background()

	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "existing file", key: "products.json"},
		{name: "missing file", key: "missing.json", wantErr: ErrDatasetNotFound},
		{name: "directory", key: "catalog", wantErr: ErrInvalidKey},
		{name: "empty key", key: "", wantErr: ErrInvalidKey},
		{name: "path traversal", key: "../../../etc/passwd", wantErr: ErrInvalidKey},
		{name: "absolute path", key: "/etc/passwd", wantErr: ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := storage.Retrieve(ctx, tt.key)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Retrieve failed: %v", err)
				}
				if string(data) != `[{"id":"1"}]` {
					t.Errorf("Unexpected data: %s", data)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if IsTransient(err) {
				t.Errorf("Expected a final error, got transient %v", err)
			}
		})
	}
}

func TestLocalFileStorage_GetMetadata(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, "catalog"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	file := filepath.Join(tempDir, "catalog", "products.json")
	if err := os.WriteFile(file, []byte("[]"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	modified := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(file, modified, modified); err != nil {
		t.Fatalf("Failed to set mtime: %v", err)
	}

	storage, err := NewLocalFileStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()

	metadata, err := storage.GetMetadata(ctx, "catalog/products.json")
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}
	if metadata.Size != 2 {
		t.Errorf("Expected size 2, got %d", metadata.Size)
	}
	if metadata.ContentType != "application/json" {
		t.Errorf("Expected application/json, got %s", metadata.ContentType)
	}
	if !metadata.LastModified.Equal(modified) {
		t.Errorf("Expected last modified %v, got %v", modified, metadata.LastModified)
	}

	if _, err := storage.GetMetadata(ctx, "missing.json"); !IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
	if _, err := storage.GetMetadata(ctx, "catalog"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Expected invalid key error for a directory, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantErr       error
		wantTransient bool
	}{
		{name: "not exist", err: fs.ErrNotExist, wantErr: ErrDatasetNotFound},
		{name: "permission", err: fs.ErrPermission, wantErr: ErrPermissionDenied},
		{name: "other", err: errors.New("input/output error"), wantTransient: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("read", "products.json", &fs.PathError{Op: "open", Path: "products.json", Err: tt.err})
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if IsTransient(err) != tt.wantTransient {
				t.Errorf("Expected transient = %v, got %v", tt.wantTransient, err)
			}
		})
	}
}

func TestNewLocalFileStorage_InvalidBasePath(t *testing.T) {
	tempDir := t.TempDir()

	if _, err := NewLocalFileStorage(filepath.Join(tempDir, "does-not-exist")); !IsNotFound(err) {
		t.Errorf("Expected not found error for missing base path, got %v", err)
	}

	file := filepath.Join(tempDir, "file.json")
	if err := os.WriteFile(file, []byte("[]"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if _, err := NewLocalFileStorage(file); err == nil {
		t.Error("Expected error when base path is a file")
	}
}
