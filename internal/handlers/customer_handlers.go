package handlers

import (
	"errors"
	"net/http"

	"dukamart/internal/common"
	"dukamart/internal/models"
	"dukamart/internal/services"

	"github.com/labstack/echo/v4"
)

// CustomerHandlers serves registration, profile and admin customer management
type CustomerHandlers struct {
	customerSvc services.CustomerService
}

func NewCustomerHandlers(customerSvc services.CustomerService) *CustomerHandlers {
	return &CustomerHandlers{customerSvc: customerSvc}
}

// RegisterRequest represents a customer signup payload
type RegisterRequest struct {
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
}

// Register creates a customer record
func (h *CustomerHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := common.ValidateRequiredString(req.FullName, "full_name"); err != nil {
		return common.SendValidationError(c, "full_name", err.Error())
	}

	customer := &models.Customer{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
	}
	if err := h.customerSvc.Register(ctx, customer); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "Email already registered")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, customer)
}

// GetProfile returns the current customer's profile
func (h *CustomerHandlers) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	custID, err := customerID(c)
	if err != nil {
		return err
	}

	customer, err := h.customerSvc.GetProfile(ctx, custID)
	if err != nil {
		return common.SendNotFoundError(c, "Customer")
	}
	return c.JSON(http.StatusOK, customer)
}

// UpdateProfile updates the current customer's profile
func (h *CustomerHandlers) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	custID, err := customerID(c)
	if err != nil {
		return err
	}

	customer := &models.Customer{}
	if err := c.Bind(customer); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	customer.ID = custID

	if err := h.customerSvc.UpdateProfile(ctx, customer); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, customer)
}

// ListCustomers handles admin customer listing
func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	limit, offset := paginationFromQuery(c)

	customers, err := h.customerSvc.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list customers")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"customers": customers})
}

// DeactivateCustomer handles admin customer deactivation
func (h *CustomerHandlers) DeactivateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.customerSvc.Deactivate(ctx, id); err != nil {
		return common.SendServerError(c, "Failed to deactivate customer")
	}
	return c.NoContent(http.StatusNoContent)
}
