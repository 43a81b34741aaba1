package handlers

import (
	"context"

	"product-service/internal/services"
	"product-service/pkg/lambda"
)

// ProductIDParam is the path parameter holding the product id
const ProductIDParam = "productId"

// ProductHandler exposes the product endpoints as wrapped handler functions.
// The same functions back the Lambda entrypoints and the local gin server.
type ProductHandler struct {
	productService services.ProductService
	get            lambda.HandlerFunc
	list           lambda.HandlerFunc
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService services.ProductService, wrapper *lambda.Wrapper) *ProductHandler {
	h := &ProductHandler{productService: productService}
	h.get = wrapper.Wrap("getProduct", h.getProduct)
	h.list = wrapper.Wrap("getProducts", h.getProducts)
	return h
}

// HandleGet returns a single product
// @Summary Get a product
// @Description Get a product by ID
// @Tags products
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} lambda.ErrorBody
// @Failure 500 {object} lambda.ErrorBody
// @Router /products/{productId} [get]
func (h *ProductHandler) HandleGet(ctx context.Context, req *lambda.Request) *lambda.Response {
	return h.get(ctx, req)
}

// HandleList returns the whole catalog
// @Summary List products
// @Description Get every product in the catalog, in catalog order
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} lambda.ErrorBody
// @Router /products [get]
func (h *ProductHandler) HandleList(ctx context.Context, req *lambda.Request) *lambda.Response {
	return h.list(ctx, req)
}

func (h *ProductHandler) getProduct(ctx context.Context, req *lambda.Request) (interface{}, error) {
	return h.productService.GetProduct(ctx, req.PathParam(ProductIDParam))
}

func (h *ProductHandler) getProducts(ctx context.Context, req *lambda.Request) (interface{}, error) {
	return h.productService.GetProducts(ctx)
}
