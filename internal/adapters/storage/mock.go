package storage

import (
	"context"
	"sync"
	"time"
)

type mockFile struct {
	data     []byte
	modified time.Time
}

// MockFileStorage implements FileStorage in memory for testing
type MockFileStorage struct {
	files map[string]mockFile
	mu    sync.RWMutex

	// failures holds errors returned by the next Retrieve calls, in order
	failures []error
	calls    int
}

// NewMockFileStorage creates a new MockFileStorage
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{
		files: make(map[string]mockFile),
	}
}

// Put adds or replaces a file and stamps its modification time
func (m *MockFileStorage) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	m.files[key] = mockFile{data: copied, modified: time.Now()}
}

// FailNext makes the next Retrieve calls fail with the given errors
func (m *MockFileStorage) FailNext(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, errs...)
}

// FailNextTorn makes the next n Retrieve calls fail as reads of a file
// that was being rewritten
func (m *MockFileStorage) FailNextTorn(key string, n int) {
	errs := make([]error, n)
	for i := range errs {
		errs[i] = transientError("read", key, ErrIncompleteRead)
	}
	m.FailNext(errs...)
}

// Retrieve implements FileStorage.Retrieve
func (m *MockFileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++

	if len(m.failures) > 0 {
		err := m.failures[0]
		m.failures = m.failures[1:]
		return nil, err
	}

	if key == "" {
		return nil, permanentError("read", key, ErrInvalidKey)
	}

	file, ok := m.files[key]
	if !ok {
		return nil, permanentError("read", key, ErrDatasetNotFound)
	}

	copied := make([]byte, len(file.data))
	copy(copied, file.data)
	return copied, nil
}

// GetMetadata implements FileStorage.GetMetadata
func (m *MockFileStorage) GetMetadata(ctx context.Context, key string) (*FileMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, ok := m.files[key]
	if !ok {
		return nil, permanentError("stat", key, ErrDatasetNotFound)
	}

	return &FileMetadata{
		Key:          key,
		Size:         int64(len(file.data)),
		ContentType:  contentTypeOf(key),
		LastModified: file.modified,
	}, nil
}

// Close implements FileStorage.Close
func (m *MockFileStorage) Close() error {
	return nil
}

// RetrieveCalls returns how many times Retrieve was called
func (m *MockFileStorage) RetrieveCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}
