package services

import (
	"context"

	"product-service/internal/models"
)

// ProductService defines the read operations of the product catalog
type ProductService interface {
	// GetProducts returns every product in dataset order
	GetProducts(ctx context.Context) ([]*models.Product, error)

	// GetProduct returns the product with exactly the given ID.
	// Fails with a not found httperr.Error when no product matches.
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}
