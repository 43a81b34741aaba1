package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"product-service/internal/models"
	"product-service/internal/repositories"
	"product-service/internal/repositories/memory"
	"product-service/pkg/httperr"
)

// failingRepo returns err from every call
type failingRepo struct {
	err error
}

func (r *failingRepo) List(ctx context.Context) ([]*models.Product, error) { return nil, r.err }
func (r *failingRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return nil, r.err
}

func newTestService(t *testing.T, delay time.Duration) ProductService {
	t.Helper()

	count := 4
	repo, err := memory.NewProductRepository([]*models.Product{
		{ID: "1", Title: "Principles: Life and Work", Price: 2.4, Count: &count},
		{ID: "2", Title: "Stillness Is the Key", Price: 10},
	})
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	return NewProductService(repo, delay)
}

func TestProductService_GetProducts(t *testing.T) {
	service := newTestService(t, 0)

	products, err := service.GetProducts(context.Background())
	if err != nil {
		t.Fatalf("GetProducts failed: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(products))
	}
	if products[0].ID != "1" || products[1].ID != "2" {
		t.Errorf("Unexpected order: %s, %s", products[0].ID, products[1].ID)
	}
}

func TestProductService_GetProduct(t *testing.T) {
	service := newTestService(t, 0)
	ctx := context.Background()

	tests := []struct {
		name        string
		id          string
		wantTitle   string
		wantMessage string
	}{
		{name: "existing product", id: "1", wantTitle: "Principles: Life and Work"},
		{name: "missing product", id: "NOT FOUND", wantMessage: "Product with id: NOT FOUND was not found"},
		{name: "empty id", id: "", wantMessage: "Product with id:  was not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := service.GetProduct(ctx, tt.id)

			if tt.wantMessage == "" {
				if err != nil {
					t.Fatalf("GetProduct failed: %v", err)
				}
				if product.Title != tt.wantTitle {
					t.Errorf("Expected title %q, got %q", tt.wantTitle, product.Title)
				}
				return
			}

			code, ok := httperr.StatusOf(err)
			if !ok || code != httperr.StatusNotFound {
				t.Fatalf("Expected 404 error, got %v", err)
			}
			if err.Error() != tt.wantMessage {
				t.Errorf("Expected message %q, got %q", tt.wantMessage, err.Error())
			}
		})
	}
}

func TestProductService_RepositoryFailure(t *testing.T) {
	cause := errors.New("catalog unavailable")
	service := NewProductService(&failingRepo{err: cause}, 0)
	ctx := context.Background()

	_, err := service.GetProduct(ctx, "1")
	if !errors.Is(err, cause) {
		t.Errorf("Expected wrapped cause, got %v", err)
	}
	if _, ok := httperr.StatusOf(err); ok {
		t.Error("Infrastructure failures must not carry a status code")
	}

	_, err = service.GetProducts(ctx)
	if !errors.Is(err, cause) {
		t.Errorf("Expected wrapped cause, got %v", err)
	}
}

func TestProductService_NotFoundFromRepository(t *testing.T) {
	service := NewProductService(&failingRepo{err: repositories.NotFoundError("Product", "x")}, 0)

	_, err := service.GetProduct(context.Background(), "x")
	if status, ok := httperr.StatusOf(err); !ok || status != http.StatusNotFound {
		t.Errorf("Expected repository miss to become a not found error, got %v", err)
	}
}

func TestProductService_MockDelay(t *testing.T) {
	service := newTestService(t, 20*time.Millisecond)

	start := time.Now()
	if _, err := service.GetProduct(context.Background(), "1"); err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Expected lookup to take at least 20ms, took %v", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.GetProducts(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestProductService_Idempotent(t *testing.T) {
	service := newTestService(t, 0)
	ctx := context.Background()

	first, _ := service.GetProduct(ctx, "1")
	second, _ := service.GetProduct(ctx, "1")

	if first == second {
		t.Error("Expected separate copies for each call")
	}
	if *first.Count != *second.Count || first.Title != second.Title {
		t.Errorf("Expected identical products, got %+v and %+v", first, second)
	}
}
