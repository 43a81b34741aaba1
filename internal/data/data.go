// Package data bundles the static product dataset shipped with every function.
package data

import "embed"

// ProductsKey is the name of the bundled dataset within FS
const ProductsKey = "products.json"

//go:embed products.json
var FS embed.FS
