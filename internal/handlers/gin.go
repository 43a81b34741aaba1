package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"product-service/internal/middleware"
	"product-service/pkg/lambda"
)

// GinHandler serves a lambda.HandlerFunc from gin, so the local server and
// the deployed functions produce the same responses.
func GinHandler(h lambda.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := h(c.Request.Context(), requestFromGin(c))

		for name, value := range resp.Headers {
			c.Header(name, value)
		}
		c.Data(resp.StatusCode, "application/json", resp.Body)
	}
}

func requestFromGin(c *gin.Context) *lambda.Request {
	req := &lambda.Request{
		RequestID:   c.GetString(middleware.RequestIDKey),
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     make(map[string]string, len(c.Request.Header)),
		QueryParams: make(map[string]string),
		PathParams:  make(map[string]string, len(c.Params)),
	}

	for name := range c.Request.Header {
		req.Headers[name] = c.GetHeader(name)
	}
	for name, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			req.QueryParams[name] = values[0]
		}
	}
	for _, param := range c.Params {
		req.PathParams[param.Key] = param.Value
	}

	if c.Request.Body != nil {
		if body, err := io.ReadAll(c.Request.Body); err == nil {
			req.Body = body
		}
	}

	return req
}
