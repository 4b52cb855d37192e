package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID              uuid.UUID    `json:"id" db:"id"`
	CustomerID      uuid.UUID    `json:"customer_id" db:"customer_id"`
	Status          string       `json:"status" db:"status"`
	Subtotal        float64      `json:"subtotal" db:"subtotal"`
	Discount        float64      `json:"discount" db:"discount"`
	Total           float64      `json:"total" db:"total"`
	CouponCode      *string      `json:"coupon_code" db:"coupon_code"`
	ShippingAddress string       `json:"shipping_address" db:"shipping_address"`
	PaymentRef      *string      `json:"payment_ref" db:"payment_ref"`
	Items           []*OrderItem `json:"items,omitempty" db:"-"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	VariantID uuid.UUID `json:"variant_id" db:"variant_id"`
	SKU       string    `json:"sku" db:"sku"`
	Name      string    `json:"name" db:"name"`
	UnitPrice float64   `json:"unit_price" db:"unit_price"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// PaymentIntent is the black-box contract with the payment gateway: the
// gateway receives an order reference and amount, and reports success or
// failure back. Nothing about the provider leaks into the order model.
type PaymentIntent struct {
	OrderID   uuid.UUID `json:"order_id"`
	Reference string    `json:"reference"`
	Amount    float64   `json:"amount"`
	Succeeded bool      `json:"succeeded"`
}
