package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"product-service/internal/data"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `validate:"required,oneof=development test staging production"`
	Port        string `validate:"required,numeric"`
	Stage       string `validate:"required"`
	Logging     LoggingConfig
	Catalog     CatalogConfig
	RateLimit   RateLimitConfig
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	Format string `validate:"required,oneof=text json"`
	Silent bool
}

// CatalogConfig holds the product dataset location
type CatalogConfig struct {
	Source    string `validate:"required,oneof=embedded local"`
	Path      string
	Key       string        `validate:"required"`
	MockDelay time.Duration `validate:"gte=0"`
}

// RateLimitConfig holds local server rate limiting configuration.
// A zero RequestsPerSecond disables the limiter; otherwise Burst must be at
// least 1 or no request could ever pass.
type RateLimitConfig struct {
	RequestsPerSecond float64 `validate:"gte=0"`
	Burst             int     `validate:"required_with=RequestsPerSecond,gte=0"`
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8000")
	v.SetDefault("STAGE", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_SILENT", false)
	v.SetDefault("CATALOG_SOURCE", "embedded")
	v.SetDefault("CATALOG_PATH", "./data")
	v.SetDefault("CATALOG_KEY", data.ProductsKey)
	v.SetDefault("CATALOG_MOCK_DELAY", "0s")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Stage:       v.GetString("STAGE"),
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Silent: v.GetBool("LOG_SILENT"),
		},
		Catalog: CatalogConfig{
			Source:    v.GetString("CATALOG_SOURCE"),
			Path:      v.GetString("CATALOG_PATH"),
			Key:       v.GetString("CATALOG_KEY"),
			MockDelay: v.GetDuration("CATALOG_MOCK_DELAY"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
