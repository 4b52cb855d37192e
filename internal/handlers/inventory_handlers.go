package handlers

import (
	"net/http"

	"dukamart/internal/common"
	"dukamart/internal/models"
	"dukamart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InventoryHandlers serves admin stock management
type InventoryHandlers struct {
	inventoryRepo repositories.InventoryRepository
}

func NewInventoryHandlers(inventoryRepo repositories.InventoryRepository) *InventoryHandlers {
	return &InventoryHandlers{inventoryRepo: inventoryRepo}
}

// SetStockRequest represents an absolute stock level write for a variant
type SetStockRequest struct {
	Quantity          int `json:"quantity"`
	LowStockThreshold int `json:"low_stock_threshold"`
}

// SetStock upserts the stock record for a variant
func (h *InventoryHandlers) SetStock(c echo.Context) error {
	ctx := c.Request().Context()

	variantID, err := common.ValidateUUID(c.Param("variantID"), "variantID")
	if err != nil {
		return common.SendValidationError(c, "variantID", err.Error())
	}

	var req SetStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Quantity < 0 {
		return common.SendValidationError(c, "quantity", "must not be negative")
	}

	inventory := &models.Inventory{
		ID:                uuid.New(),
		VariantID:         variantID,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
	}
	if err := h.inventoryRepo.Upsert(ctx, inventory); err != nil {
		return common.SendServerError(c, "Failed to update stock")
	}
	return c.JSON(http.StatusOK, inventory)
}

// GetStock returns the stock record for a variant
func (h *InventoryHandlers) GetStock(c echo.Context) error {
	ctx := c.Request().Context()

	variantID, err := common.ValidateUUID(c.Param("variantID"), "variantID")
	if err != nil {
		return common.SendValidationError(c, "variantID", err.Error())
	}

	inventory, err := h.inventoryRepo.GetByVariant(ctx, variantID)
	if err != nil {
		return common.SendNotFoundError(c, "Inventory")
	}
	return c.JSON(http.StatusOK, inventory)
}

// ListLowStock returns variants at or below their low-stock threshold
func (h *InventoryHandlers) ListLowStock(c echo.Context) error {
	ctx := c.Request().Context()
	limit, _ := paginationFromQuery(c)

	inventories, err := h.inventoryRepo.ListLowStock(ctx, limit)
	if err != nil {
		return common.SendServerError(c, "Failed to list low stock")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"inventory": inventories})
}
