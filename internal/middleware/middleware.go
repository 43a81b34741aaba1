package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"product-service/pkg/lambda"
)

// CORS middleware for handling Cross-Origin Resource Sharing. The two headers
// set by the Lambda wrapper are always present; preflight requests end here.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		for name, value := range lambda.CORSHeaders() {
			c.Header(name, value)
		}
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Recovery turns panics outside the wrapped handlers into a 500 error body
func Recovery(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(logrus.Fields{
					"request_id": c.GetString(RequestIDKey),
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
					"panic":      fmt.Sprint(r),
					"stack":      string(debug.Stack()),
				}).Error("Recovered from panic")

				AbortWithError(c, http.StatusInternalServerError, fmt.Sprintf("panic: %v", r))
			}
		}()

		c.Next()
	}
}

// AbortWithError writes the standard {statusCode,message} body and stops the chain
func AbortWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, lambda.ErrorBody{
		StatusCode: statusCode,
		Message:    message,
	})
}
