package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"product-service/internal/adapters/storage"
	"product-service/internal/models"
	"product-service/internal/repositories"
)

// Loader reads and validates the product dataset at cold start
type Loader struct {
	storage   storage.FileStorage
	validator *validator.Validate
	logger    logrus.FieldLogger
}

// NewLoader creates a new dataset loader
func NewLoader(fileStorage storage.FileStorage, logger logrus.FieldLogger) *Loader {
	return &Loader{
		storage:   fileStorage,
		validator: validator.New(),
		logger:    logger,
	}
}

// LoadProducts reads the JSON array stored under key and returns its products in order
func (l *Loader) LoadProducts(ctx context.Context, key string) ([]*models.Product, error) {
	log := l.logger.WithField("key", key)

	meta, err := l.storage.GetMetadata(ctx, key)
	if err != nil {
		if storage.IsNotFound(err) {
			log.WithError(err).Error("Product dataset does not exist")
			return nil, fmt.Errorf("product dataset %q does not exist: %w", key, err)
		}
		log.WithError(err).Error("Failed to stat product dataset")
		return nil, fmt.Errorf("failed to stat product dataset: %w", err)
	}
	if meta.Size == 0 {
		log.Error("Product dataset is empty")
		return nil, fmt.Errorf("product dataset %q is empty", key)
	}

	log = log.WithFields(logrus.Fields{
		"size":         meta.Size,
		"content_type": meta.ContentType,
	})
	if !meta.LastModified.IsZero() {
		log = log.WithField("last_modified", meta.LastModified.UTC().Format(time.RFC3339))
	}
	log.Debug("Loading product dataset")

	data, err := l.storage.Retrieve(ctx, key)
	if err != nil {
		log.WithError(err).Error("Failed to read product dataset")
		return nil, fmt.Errorf("failed to read product dataset: %w", err)
	}

	var products []*models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.WithError(err).Error("Failed to decode product dataset")
		return nil, fmt.Errorf("failed to decode product dataset: %w", err)
	}

	stocked := 0
	for i, product := range products {
		if product == nil {
			return nil, repositories.ValidationError(productEntity, "", fmt.Errorf("entry %d is null", i))
		}
		if err := l.validator.Struct(product); err != nil {
			return nil, repositories.ValidationError(productEntity, product.ID, err)
		}
		if err := product.Validate(); err != nil {
			return nil, repositories.ValidationError(productEntity, product.ID, err)
		}
		if product.HasCount() {
			stocked++
		}
	}

	log.WithFields(logrus.Fields{
		"count":   len(products),
		"stocked": stocked,
	}).Info("Product dataset loaded")
	return products, nil
}

// LoadRepository loads the dataset stored under key into a new ProductRepository
func (l *Loader) LoadRepository(ctx context.Context, key string) (*ProductRepository, error) {
	products, err := l.LoadProducts(ctx, key)
	if err != nil {
		return nil, err
	}
	return NewProductRepository(products)
}
