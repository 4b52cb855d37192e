package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is stored in Redis keyed by customer ID, not in Postgres.
type Cart struct {
	CustomerID uuid.UUID   `json:"customer_id"`
	Items      []*CartItem `json:"items"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type CartItem struct {
	VariantID uuid.UUID `json:"variant_id"`
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

// Subtotal is the sum of line totals before any coupon discount.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
