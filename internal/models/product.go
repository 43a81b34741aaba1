package models

import (
	"fmt"
	"strings"
)

// Product represents a catalog item
type Product struct {
	ID          string  `json:"id" validate:"required"`
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
	Count       *int    `json:"count,omitempty" validate:"omitempty,gte=0"`
}

// Validate validates the product data
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("product ID is required")
	}

	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("product title is required")
	}

	if p.Price < 0 {
		return fmt.Errorf("product price cannot be negative")
	}

	if p.Count != nil && *p.Count < 0 {
		return fmt.Errorf("product count cannot be negative")
	}

	return nil
}

// Clone returns a deep copy of the product
func (p *Product) Clone() *Product {
	clone := *p
	if p.Count != nil {
		count := *p.Count
		clone.Count = &count
	}
	return &clone
}

// HasCount returns true if the product carries a stock count
func (p *Product) HasCount() bool {
	return p.Count != nil
}
