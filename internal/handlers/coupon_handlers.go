package handlers

import (
	"net/http"
	"time"

	"dukamart/internal/common"
	"dukamart/internal/models"
	"dukamart/internal/services"

	"github.com/labstack/echo/v4"
)

// CouponHandlers serves admin coupon management and storefront validation
type CouponHandlers struct {
	couponSvc services.CouponService
}

func NewCouponHandlers(couponSvc services.CouponService) *CouponHandlers {
	return &CouponHandlers{couponSvc: couponSvc}
}

// ValidateCouponRequest checks a code against a cart subtotal
type ValidateCouponRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

// CreateCoupon handles admin coupon creation
func (h *CouponHandlers) CreateCoupon(c echo.Context) error {
	ctx := c.Request().Context()

	coupon := &models.Coupon{}
	if err := c.Bind(coupon); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := h.couponSvc.Create(ctx, coupon); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, coupon)
}

// ListCoupons handles admin coupon listing
func (h *CouponHandlers) ListCoupons(c echo.Context) error {
	ctx := c.Request().Context()
	limit, offset := paginationFromQuery(c)

	coupons, err := h.couponSvc.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list coupons")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"coupons": coupons})
}

// ValidateCoupon reports whether a code applies and the discount it yields
func (h *CouponHandlers) ValidateCoupon(c echo.Context) error {
	ctx := c.Request().Context()

	var req ValidateCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := common.ValidateRequiredString(req.Code, "code"); err != nil {
		return common.SendValidationError(c, "code", err.Error())
	}

	coupon, discount, err := h.couponSvc.Validate(ctx, req.Code, req.Subtotal, time.Now())
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"coupon":   coupon,
		"discount": discount,
	})
}

// DeactivateCoupon handles admin coupon deactivation
func (h *CouponHandlers) DeactivateCoupon(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.couponSvc.Deactivate(ctx, id); err != nil {
		return common.SendServerError(c, "Failed to deactivate coupon")
	}
	return c.NoContent(http.StatusNoContent)
}
