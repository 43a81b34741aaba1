package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"product-service/internal/middleware"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	ProductHandler *ProductHandler
	HealthHandler  *HealthHandler
	Logger         logrus.FieldLogger
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds a gin engine with middleware and routes installed
func NewRouter(config *RouterConfig) *gin.Engine {
	router := gin.New()
	// Match on the escaped path so an encoded slash stays inside the
	// product ID segment, then hand handlers the decoded value
	router.UseRawPath = true
	router.UnescapePathValues = true
	SetupMiddleware(router, config)
	SetupRoutes(router, config)
	return router
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", config.HealthHandler.Health)

	products := router.Group("/products")
	{
		products.GET("", GinHandler(config.ProductHandler.HandleList))
		products.GET("/:"+ProductIDParam, GinHandler(config.ProductHandler.HandleGet))
	}

	router.NoRoute(func(c *gin.Context) {
		middleware.AbortWithError(c, http.StatusNotFound,
			fmt.Sprintf("Route %s %s was not found", c.Request.Method, c.Request.URL.Path))
	})
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, config *RouterConfig) {
	router.Use(middleware.Recovery(config.Logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.StructuredLogger(config.Logger))
	router.Use(middleware.PerformanceMonitor(config.Logger, 0))

	// A zero burst admits nothing, so it is treated as the limiter being off
	if config.RateLimitRPS > 0 && config.RateLimitBurst > 0 {
		router.Use(middleware.RateLimiter(config.RateLimitRPS, config.RateLimitBurst, config.Logger))
	}
}
