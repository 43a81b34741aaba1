package handlers

// @title Product Service API
// @version 1.0
// @description Read-only product catalog served from AWS Lambda
// @description and from a local gin server during development.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /

// @tag.name products
// @tag.description Product catalog operations

// @tag.name health
// @tag.description Service health
