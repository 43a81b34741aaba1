package repositories

import (
	"context"

	"product-service/internal/models"
)

// ProductRepository provides read access to the product catalog.
// Implementations are immutable after construction and safe for concurrent use.
type ProductRepository interface {
	// List returns every product in dataset order
	List(ctx context.Context) ([]*models.Product, error)

	// GetByID returns the product with exactly the given ID.
	// Returns an error matching ErrNotFound when no product has that ID.
	GetByID(ctx context.Context, id string) (*models.Product, error)
}
