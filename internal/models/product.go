package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductFilter holds search and filter criteria for catalog queries
type ProductFilter struct {
	Query         string     `json:"query,omitempty"`          // Substring search across name, slug, description
	BrandID       *uuid.UUID `json:"brand_id,omitempty"`       // Filter by brand
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`    // Filter by category
	MinPrice      *float64   `json:"min_price,omitempty"`      // Minimum base price
	MaxPrice      *float64   `json:"max_price,omitempty"`      // Maximum base price
	PublishedOnly bool       `json:"published_only,omitempty"` // Storefront queries set this
	Featured      *bool      `json:"featured,omitempty"`       // Filter by featured flag
	SortBy        string     `json:"sort_by,omitempty"`        // Sort field: name, base_price, created_at
	SortOrder     string     `json:"sort_order,omitempty"`     // Sort order: asc, desc
	Limit         int        `json:"limit,omitempty"`          // Page size (default: 50)
	Offset        int        `json:"offset,omitempty"`         // Page offset
}

type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	BasePrice   float64   `json:"base_price" db:"base_price"`
	BrandID     uuid.UUID `json:"brand_id" db:"brand_id"`
	CategoryID  uuid.UUID `json:"category_id" db:"category_id"`
	IsPublished bool      `json:"is_published" db:"is_published"`
	Featured    bool      `json:"featured" db:"featured"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type ProductVariant struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ProductID       uuid.UUID `json:"product_id" db:"product_id"`
	SKU             string    `json:"sku" db:"sku"`
	Name            string    `json:"name" db:"name"`
	PriceAdjustment float64   `json:"price_adjustment" db:"price_adjustment"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
