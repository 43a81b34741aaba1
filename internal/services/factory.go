package services

import (
	"fmt"
	"time"

	"product-service/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	ProductService ProductService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	// MockDelay is added to every catalog lookup to simulate a remote store
	MockDelay time.Duration
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(repos *repositories.RepositoryContainer, config *ServiceConfig) (*ServiceContainer, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository container cannot be nil")
	}
	if err := repos.Validate(); err != nil {
		return nil, fmt.Errorf("invalid repository container: %w", err)
	}

	if config == nil {
		config = &ServiceConfig{}
	}
	if config.MockDelay < 0 {
		return nil, fmt.Errorf("mock delay cannot be negative: %v", config.MockDelay)
	}

	return &ServiceContainer{
		ProductService: NewProductService(repos.ProductRepo, config.MockDelay),
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.ProductService == nil {
		return fmt.Errorf("product service is nil")
	}
	return nil
}
