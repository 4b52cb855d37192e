package handlers

import (
	"net/http"

	"dukamart/internal/common"
	"dukamart/internal/models"
	"dukamart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CatalogHandlers serves storefront browsing and admin catalog management
type CatalogHandlers struct {
	catalogSvc services.CatalogService
	reviewSvc  services.ReviewService
}

func NewCatalogHandlers(catalogSvc services.CatalogService, reviewSvc services.ReviewService) *CatalogHandlers {
	return &CatalogHandlers{catalogSvc: catalogSvc, reviewSvc: reviewSvc}
}

// ListProductsRequest represents query parameters for product listing
type ListProductsRequest struct {
	Query     string `query:"q"`
	Brand     string `query:"brand_id"`
	Category  string `query:"category_id"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
}

// ListProducts handles the public product listing (published products only)
func (h *CatalogHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	filter := &models.ProductFilter{
		Query:         req.Query,
		PublishedOnly: true,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
		Limit:         limit,
		Offset:        offset,
	}
	if req.Brand != "" {
		brandID, err := common.ValidateUUID(req.Brand, "brand_id")
		if err != nil {
			return common.SendValidationError(c, "brand_id", err.Error())
		}
		filter.BrandID = &brandID
	}
	if req.Category != "" {
		categoryID, err := common.ValidateUUID(req.Category, "category_id")
		if err != nil {
			return common.SendValidationError(c, "category_id", err.Error())
		}
		filter.CategoryID = &categoryID
	}

	products, err := h.catalogSvc.ListProducts(ctx, filter)
	if err != nil {
		return common.SendServerError(c, "Failed to list products")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"products": products})
}

// AdminListProducts lists every product, unpublished included
func (h *CatalogHandlers) AdminListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	products, err := h.catalogSvc.ListProducts(ctx, &models.ProductFilter{
		Query:  req.Query,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return common.SendServerError(c, "Failed to list products")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"products": products})
}

// GetProductBySlug serves the storefront product page lookup, with variants
// and rating attached.
func (h *CatalogHandlers) GetProductBySlug(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.catalogSvc.GetProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		return common.SendNotFoundError(c, "Product")
	}

	variants, err := h.catalogSvc.ListVariants(ctx, product.ID)
	if err != nil {
		return common.SendServerError(c, "Failed to load variants")
	}

	rating, err := h.reviewSvc.Rating(ctx, product.ID)
	if err != nil {
		return common.SendServerError(c, "Failed to load rating")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"product":  product,
		"variants": variants,
		"rating":   rating,
	})
}

// CreateProduct handles admin product creation
func (h *CatalogHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product := &models.Product{}
	if err := c.Bind(product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := h.catalogSvc.CreateProduct(ctx, product); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles admin product updates
func (h *CatalogHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	product := &models.Product{}
	if err := c.Bind(product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	product.ID = id

	if err := h.catalogSvc.UpdateProduct(ctx, product); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles admin product deletion
func (h *CatalogHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.catalogSvc.DeleteProduct(ctx, id); err != nil {
		return common.SendServerError(c, "Failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBrands handles brand listing
func (h *CatalogHandlers) ListBrands(c echo.Context) error {
	ctx := c.Request().Context()
	limit, offset := common.ValidatePaginationParams(0, 0)

	brands, err := h.catalogSvc.ListBrands(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list brands")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"brands": brands})
}

// ListCategories handles category listing
func (h *CatalogHandlers) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	limit, offset := common.ValidatePaginationParams(0, 0)

	categories, err := h.catalogSvc.ListCategories(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list categories")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"categories": categories})
}

func customerID(c echo.Context) (uuid.UUID, error) {
	id, ok := common.GetCustomerIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Customer not found")
	}
	return id, nil
}
