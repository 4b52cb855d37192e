package handlers

import (
	"net/http"

	"dukamart/internal/common"
	"dukamart/internal/services"

	"github.com/labstack/echo/v4"
)

// MediaHandlers serves admin product image uploads
type MediaHandlers struct {
	mediaSvc services.MediaService
}

func NewMediaHandlers(mediaSvc services.MediaService) *MediaHandlers {
	return &MediaHandlers{mediaSvc: mediaSvc}
}

// UploadProductImage stores a product image and records its URL
func (h *MediaHandlers) UploadProductImage(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to open uploaded file")
	}
	defer src.Close()

	url, err := h.mediaSvc.UploadProductImage(ctx, productID, fileHeader.Filename, src, fileHeader.Size)
	if err != nil {
		return common.SendServerError(c, "Failed to upload image")
	}
	return c.JSON(http.StatusOK, map[string]string{"image_url": url})
}
