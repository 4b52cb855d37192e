package handlers

import (
	"net/http"

	"dukamart/internal/common"
	"dukamart/internal/models"
	"dukamart/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers serves checkout, order history and admin order management
type OrderHandlers struct {
	orderSvc services.OrderService
}

func NewOrderHandlers(orderSvc services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderSvc: orderSvc}
}

// CheckoutRequest represents a checkout payload
type CheckoutRequest struct {
	CouponCode      string `json:"coupon_code"`
	ShippingAddress string `json:"shipping_address"`
}

// UpdateOrderStatusRequest represents an admin status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// PaymentCallbackRequest is the gateway's payment result report
type PaymentCallbackRequest struct {
	OrderID   string  `json:"order_id"`
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Succeeded bool    `json:"succeeded"`
}

// Checkout converts the customer's cart into a pending order
func (h *OrderHandlers) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	custID, err := customerID(c)
	if err != nil {
		return err
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := common.ValidateRequiredString(req.ShippingAddress, "shipping_address"); err != nil {
		return common.SendValidationError(c, "shipping_address", err.Error())
	}

	order, err := h.orderSvc.Checkout(ctx, custID, req.CouponCode, req.ShippingAddress)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, order)
}

// GetOrder returns one order. Customers may only read their own orders.
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	order, err := h.orderSvc.GetOrder(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Order")
	}

	role, _ := common.GetRoleFromContext(ctx)
	if role != common.RoleAdmin {
		custID, err := customerID(c)
		if err != nil {
			return err
		}
		if order.CustomerID != custID {
			return common.SendNotFoundError(c, "Order")
		}
	}
	return c.JSON(http.StatusOK, order)
}

// ListMyOrders returns the current customer's order history
func (h *OrderHandlers) ListMyOrders(c echo.Context) error {
	ctx := c.Request().Context()

	custID, err := customerID(c)
	if err != nil {
		return err
	}
	limit, offset := paginationFromQuery(c)

	orders, err := h.orderSvc.ListCustomerOrders(ctx, custID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list orders")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"orders": orders})
}

// AdminListOrders returns all orders for back-office review
func (h *OrderHandlers) AdminListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	limit, offset := paginationFromQuery(c)

	orders, err := h.orderSvc.ListOrders(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list orders")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"orders": orders})
}

// UpdateStatus moves an order along the fulfilment lifecycle
func (h *OrderHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := h.orderSvc.UpdateStatus(ctx, id, req.Status); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}

// PaymentCallback records a gateway payment result against a pending order
func (h *OrderHandlers) PaymentCallback(c echo.Context) error {
	ctx := c.Request().Context()

	var req PaymentCallbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	orderID, err := common.ValidateUUID(req.OrderID, "order_id")
	if err != nil {
		return common.SendValidationError(c, "order_id", err.Error())
	}
	if err := common.ValidateRequiredString(req.Reference, "reference"); err != nil {
		return common.SendValidationError(c, "reference", err.Error())
	}

	intent := &models.PaymentIntent{
		OrderID:   orderID,
		Reference: req.Reference,
		Amount:    req.Amount,
		Succeeded: req.Succeeded,
	}
	if err := h.orderSvc.RecordPayment(ctx, intent); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Payment recorded"})
}

func paginationFromQuery(c echo.Context) (int, int) {
	var req struct {
		Limit  int `query:"limit"`
		Offset int `query:"offset"`
	}
	_ = c.Bind(&req)
	return common.ValidatePaginationParams(req.Limit, req.Offset)
}
