package memory

import (
	"context"

	"product-service/internal/models"
	"product-service/internal/repositories"
)

const productEntity = "Product"

// ProductRepository implements repositories.ProductRepository over a fixed,
// ordered product list. Callers receive copies, so the dataset never changes
// after construction.
type ProductRepository struct {
	products []*models.Product
	index    map[string]int
}

var _ repositories.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates a repository holding copies of products in the given order
func NewProductRepository(products []*models.Product) (*ProductRepository, error) {
	repo := &ProductRepository{
		products: make([]*models.Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}

	for _, product := range products {
		if product == nil {
			continue
		}
		if _, exists := repo.index[product.ID]; exists {
			return nil, repositories.DuplicateError(productEntity, "id", product.ID)
		}
		repo.index[product.ID] = len(repo.products)
		repo.products = append(repo.products, product.Clone())
	}

	return repo, nil
}

// List implements repositories.ProductRepository.List
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	products := make([]*models.Product, len(r.products))
	for i, product := range r.products {
		products[i] = product.Clone()
	}
	return products, nil
}

// GetByID implements repositories.ProductRepository.GetByID
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, repositories.NotFoundError(productEntity, id)
	}
	return r.products[i].Clone(), nil
}
