package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"product-service/internal/adapters/storage"
	"product-service/internal/data"
	"product-service/internal/repositories"
)

func TestLoader_LoadProducts(t *testing.T) {
	logger, hook := test.NewNullLogger()
	mockStorage := storage.NewMockFileStorage()
	mockStorage.Put("products.json", []byte(`[
		{"id":"2","title":"Stillness Is the Key","description":"by Ryan Holiday","price":10,"imageUrl":"https://example.com/2.jpg"},
		{"id":"1","title":"Principles: Life and Work","description":"by Ray Dalio","price":2.4,"imageUrl":"https://example.com/1.jpg","count":4}
	]`))

	loader := NewLoader(mockStorage, logger)
	products, err := loader.LoadProducts(context.Background(), "products.json")
	if err != nil {
		t.Fatalf("LoadProducts failed: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(products))
	}
	if products[0].ID != "2" || products[1].ID != "1" {
		t.Errorf("Expected file order [2 1], got [%s %s]", products[0].ID, products[1].ID)
	}
	if products[1].Count == nil || *products[1].Count != 4 {
		t.Errorf("Expected count 4 for product 1")
	}
	if products[0].Count != nil {
		t.Errorf("Expected no count for product 2")
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Message != "Product dataset loaded" {
		t.Fatalf("Expected load log entry, got %+v", entry)
	}
	if entry.Data["count"] != 2 || entry.Data["stocked"] != 1 {
		t.Errorf("Expected count=2 stocked=1, got %v", entry.Data)
	}
	if size, ok := entry.Data["size"].(int64); !ok || size == 0 {
		t.Errorf("Expected dataset size in log, got %v", entry.Data["size"])
	}
	if _, ok := entry.Data["last_modified"]; !ok {
		t.Errorf("Expected last_modified in log, got %v", entry.Data)
	}
}

func TestLoader_MissingDatasetFailsBeforeRead(t *testing.T) {
	logger, hook := test.NewNullLogger()
	mockStorage := storage.NewMockFileStorage()

	_, err := NewLoader(mockStorage, logger).LoadProducts(context.Background(), "catalog.json")
	if !storage.IsNotFound(err) {
		t.Fatalf("Expected not found error, got %v", err)
	}
	if !strings.Contains(err.Error(), `product dataset "catalog.json" does not exist`) {
		t.Errorf("Unexpected error message: %v", err)
	}
	if calls := mockStorage.RetrieveCalls(); calls != 0 {
		t.Errorf("Expected no read of a missing dataset, got %d", calls)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
		t.Errorf("Expected an error log entry, got %+v", entry)
	}
}

func TestLoader_EmptyDataset(t *testing.T) {
	logger, _ := test.NewNullLogger()
	mockStorage := storage.NewMockFileStorage()
	mockStorage.Put("products.json", nil)

	_, err := NewLoader(mockStorage, logger).LoadProducts(context.Background(), "products.json")
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("Expected empty dataset error, got %v", err)
	}
	if calls := mockStorage.RetrieveCalls(); calls != 0 {
		t.Errorf("Expected no read of an empty dataset, got %d", calls)
	}
}

func TestLoader_RereadsTornDataset(t *testing.T) {
	logger, _ := test.NewNullLogger()
	mockStorage := storage.NewMockFileStorage()
	mockStorage.Put("products.json", []byte(`[{"id":"1","title":"a"}]`))
	mockStorage.FailNextTorn("products.json", 1)

	rereading := storage.NewRereadingFileStorage(mockStorage, &storage.RetryConfig{
		MaxAttempts:     2,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		Multiplier:      1,
	}, logger)

	products, err := NewLoader(rereading, logger).LoadProducts(context.Background(), "products.json")
	if err != nil {
		t.Fatalf("LoadProducts failed: %v", err)
	}
	if len(products) != 1 || mockStorage.RetrieveCalls() != 2 {
		t.Errorf("Expected 1 product after 2 reads, got %d products after %d reads", len(products), mockStorage.RetrieveCalls())
	}
}

func TestLoader_LoadProductsErrors(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantValidation bool
	}{
		{name: "malformed json", content: `[{"id":`},
		{name: "not an array", content: `{"id":"1"}`},
		{name: "missing title", content: `[{"id":"1","price":1}]`, wantValidation: true},
		{name: "negative price", content: `[{"id":"1","title":"x","price":-1}]`, wantValidation: true},
		{name: "bad image url", content: `[{"id":"1","title":"x","imageUrl":"nope"}]`, wantValidation: true},
		{name: "null entry", content: `[null]`, wantValidation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			mockStorage := storage.NewMockFileStorage()
			mockStorage.Put("products.json", []byte(tt.content))

			_, err := NewLoader(mockStorage, logger).LoadProducts(context.Background(), "products.json")
			if err == nil {
				t.Fatal("Expected an error")
			}
			if repositories.IsValidation(err) != tt.wantValidation {
				t.Errorf("Expected validation error = %v, got %v", tt.wantValidation, err)
			}
		})
	}
}

func TestLoader_LoadRepositoryDuplicate(t *testing.T) {
	logger, _ := test.NewNullLogger()
	mockStorage := storage.NewMockFileStorage()
	mockStorage.Put("products.json", []byte(`[{"id":"1","title":"a"},{"id":"1","title":"b"}]`))

	_, err := NewLoader(mockStorage, logger).LoadRepository(context.Background(), "products.json")
	if !repositories.IsDuplicate(err) {
		t.Errorf("Expected duplicate error, got %v", err)
	}
}

func TestLoader_BundledDataset(t *testing.T) {
	logger, _ := test.NewNullLogger()
	loader := NewLoader(storage.NewEmbeddedFileStorage(data.FS), logger)

	repo, err := loader.LoadRepository(context.Background(), data.ProductsKey)
	if err != nil {
		t.Fatalf("Failed to load bundled dataset: %v", err)
	}

	product, err := repo.GetByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("Expected product 1 in bundled dataset: %v", err)
	}
	if product.Title != "Principles: Life and Work" || product.Price != 2.4 {
		t.Errorf("Unexpected product 1: %+v", product)
	}
}
