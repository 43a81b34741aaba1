package services

import (
	"context"
	"fmt"
	"time"

	"product-service/internal/models"
	"product-service/internal/repositories"
	"product-service/pkg/httperr"
)

// productService implements the ProductService interface
type productService struct {
	productRepo repositories.ProductRepository
	mockDelay   time.Duration
}

// NewProductService creates a new product service instance.
// A positive mockDelay postpones every lookup to simulate a remote catalog.
func NewProductService(productRepo repositories.ProductRepository, mockDelay time.Duration) ProductService {
	return &productService{
		productRepo: productRepo,
		mockDelay:   mockDelay,
	}
}

// GetProducts retrieves all products
func (s *productService) GetProducts(ctx context.Context) ([]*models.Product, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a product by ID
func (s *productService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, httperr.NotFound(fmt.Sprintf("Product with id: %s was not found", id))
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

func (s *productService) wait(ctx context.Context) error {
	if s.mockDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.mockDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
