package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CouponTypePercent = "percent"
	CouponTypeFixed   = "fixed"
)

type Coupon struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Type        string    `json:"type" db:"type"` // percent or fixed
	Value       float64   `json:"value" db:"value"`
	MinSubtotal float64   `json:"min_subtotal" db:"min_subtotal"`
	StartsAt    time.Time `json:"starts_at" db:"starts_at"`
	EndsAt      time.Time `json:"ends_at" db:"ends_at"`
	UsageLimit  int       `json:"usage_limit" db:"usage_limit"` // 0 means unlimited
	UsedCount   int       `json:"used_count" db:"used_count"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// DiscountFor returns the discount amount for the given subtotal. The result
// never exceeds the subtotal.
func (c *Coupon) DiscountFor(subtotal float64) float64 {
	var discount float64
	switch c.Type {
	case CouponTypePercent:
		discount = subtotal * c.Value / 100.0
	case CouponTypeFixed:
		discount = c.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}
