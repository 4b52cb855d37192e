package handlers

import (
	"net/http"

	"dukamart/internal/common"
	"dukamart/internal/services"

	"github.com/labstack/echo/v4"
)

// CartHandlers serves the customer shopping cart endpoints
type CartHandlers struct {
	cartSvc services.CartService
}

func NewCartHandlers(cartSvc services.CartService) *CartHandlers {
	return &CartHandlers{cartSvc: cartSvc}
}

// CartItemRequest represents an add or update cart item payload
type CartItemRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// GetCart returns the current customer's cart
func (h *CartHandlers) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	custID, err := customerID(c)
	if err != nil {
		return err
	}

	cart, err := h.cartSvc.GetCart(ctx, custID)
	if err != nil {
		return common.SendServerError(c, "Failed to load cart")
	}
	return c.JSON(http.StatusOK, cart)
}

// AddItem adds a variant to the cart, merging quantities for duplicates
func (h *CartHandlers) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	custID, err := customerID(c)
	if err != nil {
		return err
	}

	var req CartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	variantID, err := common.ValidateUUID(req.VariantID, "variant_id")
	if err != nil {
		return common.SendValidationError(c, "variant_id", err.Error())
	}
	if req.Quantity <= 0 {
		return common.SendValidationError(c, "quantity", "must be positive")
	}

	cart, err := h.cartSvc.AddItem(ctx, custID, variantID, req.Quantity)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, cart)
}

// UpdateItem sets the quantity for a cart line, removing it at zero
func (h *CartHandlers) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	custID, err := customerID(c)
	if err != nil {
		return err
	}

	variantID, err := common.ValidateUUID(c.Param("variantID"), "variantID")
	if err != nil {
		return common.SendValidationError(c, "variantID", err.Error())
	}

	var req CartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cart, err := h.cartSvc.UpdateItem(ctx, custID, variantID, req.Quantity)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, cart)
}

// RemoveItem deletes a cart line
func (h *CartHandlers) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	custID, err := customerID(c)
	if err != nil {
		return err
	}

	variantID, err := common.ValidateUUID(c.Param("variantID"), "variantID")
	if err != nil {
		return common.SendValidationError(c, "variantID", err.Error())
	}

	cart, err := h.cartSvc.RemoveItem(ctx, custID, variantID)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, cart)
}

// ClearCart empties the customer's cart
func (h *CartHandlers) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	custID, err := customerID(c)
	if err != nil {
		return err
	}

	if err := h.cartSvc.ClearCart(ctx, custID); err != nil {
		return common.SendServerError(c, "Failed to clear cart")
	}
	return c.NoContent(http.StatusNoContent)
}
