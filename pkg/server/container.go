package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"product-service/internal/adapters/storage"
	"product-service/internal/config"
	"product-service/internal/data"
	"product-service/internal/handlers"
	"product-service/internal/logging"
	"product-service/internal/repositories"
	"product-service/internal/repositories/memory"
	"product-service/internal/services"
	"product-service/pkg/lambda"
)

// ServiceName identifies this service in logs and health checks
const ServiceName = "product-service"

// Version of the service
const Version = "1.0.0"

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *logrus.Logger
	ProductService services.ProductService
	ProductHandler *handlers.ProductHandler
	HealthHandler  *handlers.HealthHandler

	// Internal dependencies
	storage        storage.FileStorage
	tracerProvider *sdktrace.TracerProvider
}

// Option overrides a container dependency
type Option func(*options)

type options struct {
	storage storage.FileStorage
	logger  *logrus.Logger
}

// WithStorage replaces the storage selected by the catalog configuration
func WithStorage(s storage.FileStorage) Option {
	return func(o *options) { o.storage = s }
}

// WithLogger replaces the logger built from the logging configuration
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewContainer creates a new dependency injection container. The product
// dataset is read and validated here; any failure aborts start-up.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	fileStorage := o.storage
	if fileStorage == nil {
		factory := storage.NewFactory(storage.DefaultRetryConfig(), data.FS, logger.WithField("component", "catalog_storage"))
		var err error
		fileStorage, err = factory.Create(&storage.StorageConfig{
			Type:     cfg.Catalog.Source,
			BasePath: cfg.Catalog.Path,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create catalog storage: %w", err)
		}
	}

	container := &Container{
		Config:         cfg,
		Logger:         logger,
		storage:        fileStorage,
		tracerProvider: sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample()))),
	}

	repo, err := memory.NewLoader(fileStorage, logger).LoadRepository(ctx, cfg.Catalog.Key)
	if err != nil {
		_ = container.Close()
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}

	serviceContainer, err := services.NewServiceContainer(
		&repositories.RepositoryContainer{ProductRepo: repo},
		&services.ServiceConfig{MockDelay: cfg.Catalog.MockDelay},
	)
	if err != nil {
		_ = container.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	wrapper := lambda.NewWrapper(logger, lambda.WithTracerProvider(container.tracerProvider))

	container.ProductService = serviceContainer.ProductService
	container.ProductHandler = handlers.NewProductHandler(serviceContainer.ProductService, wrapper)
	container.HealthHandler = handlers.NewHealthHandler(ServiceName, Version, cfg.Stage)

	logger.WithFields(logrus.Fields{
		"stage":          cfg.Stage,
		"catalog_source": cfg.Catalog.Source,
		"catalog_key":    cfg.Catalog.Key,
		"mock_delay":     cfg.Catalog.MockDelay.String(),
		"mode":           config.GetDeploymentMode(),
	}).Info("Container initialized")

	return container, nil
}

// Router builds the gin engine for the local server
func (c *Container) Router() *gin.Engine {
	return handlers.NewRouter(&handlers.RouterConfig{
		ProductHandler: c.ProductHandler,
		HealthHandler:  c.HealthHandler,
		Logger:         c.Logger,
		RateLimitRPS:   c.Config.RateLimit.RequestsPerSecond,
		RateLimitBurst: c.Config.RateLimit.Burst,
	})
}

// Close cleans up all resources
func (c *Container) Close() error {
	var errs []error

	if c.tracerProvider != nil {
		if err := c.tracerProvider.Shutdown(context.Background()); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down tracer provider: %w", err))
		}
	}

	if c.storage != nil {
		if err := c.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
		}
	}

	return errors.Join(errs...)
}
