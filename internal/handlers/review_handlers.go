package handlers

import (
	"net/http"

	"dukamart/internal/common"
	"dukamart/internal/models"
	"dukamart/internal/services"

	"github.com/labstack/echo/v4"
)

// ReviewHandlers serves product review endpoints
type ReviewHandlers struct {
	reviewSvc services.ReviewService
}

func NewReviewHandlers(reviewSvc services.ReviewService) *ReviewHandlers {
	return &ReviewHandlers{reviewSvc: reviewSvc}
}

// AddReviewRequest represents a review submission
type AddReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

// AddReview records the current customer's review of a product
func (h *ReviewHandlers) AddReview(c echo.Context) error {
	ctx := c.Request().Context()

	custID, err := customerID(c)
	if err != nil {
		return err
	}

	productID, err := common.ValidateUUID(c.Param("productID"), "productID")
	if err != nil {
		return common.SendValidationError(c, "productID", err.Error())
	}

	var req AddReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	review := &models.Review{
		ProductID:  productID,
		CustomerID: custID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := h.reviewSvc.AddReview(ctx, review); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, review)
}

// ListReviews returns a product's reviews
func (h *ReviewHandlers) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("productID"), "productID")
	if err != nil {
		return common.SendValidationError(c, "productID", err.Error())
	}
	limit, offset := paginationFromQuery(c)

	reviews, err := h.reviewSvc.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list reviews")
	}

	rating, err := h.reviewSvc.Rating(ctx, productID)
	if err != nil {
		return common.SendServerError(c, "Failed to load rating")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"rating":  rating,
	})
}

// DeleteReview handles admin review moderation
func (h *ReviewHandlers) DeleteReview(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.reviewSvc.Delete(ctx, id); err != nil {
		return common.SendServerError(c, "Failed to delete review")
	}
	return c.NoContent(http.StatusNoContent)
}
