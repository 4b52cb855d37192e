package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"dukamart/internal/common"
	"dukamart/internal/config"
	"dukamart/internal/importer"

	"github.com/labstack/echo/v4"
)

// ImportHandlers serves the admin bulk product import endpoint
type ImportHandlers struct {
	imp *importer.Importer
	cfg *config.ImportConfig
}

func NewImportHandlers(imp *importer.Importer, cfg *config.ImportConfig) *ImportHandlers {
	return &ImportHandlers{imp: imp, cfg: cfg}
}

// ImportProducts accepts a multipart spreadsheet upload and runs the
// import pipeline. The optional "strategy" form field selects duplicate
// handling and defaults from config.
func (h *ImportHandlers) ImportProducts(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Spreadsheet file is required")
	}
	if fileHeader.Size > h.cfg.Limits.MaxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Upload exceeds limit of %d bytes", h.cfg.Limits.MaxUploadBytes))
	}

	strategy := importer.Strategy(c.FormValue("strategy"))
	if strategy == "" {
		strategy = importer.Strategy(h.cfg.Limits.DefaultStrategy)
	}
	if !strategy.Valid() {
		return common.SendValidationError(c, "strategy", "must be one of skip, update, variant")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.cfg.Limits.MaxUploadBytes+1))
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	if int64(len(data)) > h.cfg.Limits.MaxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Upload exceeds limit of %d bytes", h.cfg.Limits.MaxUploadBytes))
	}

	rows, err := importer.ParseWorkbook(data)
	if err != nil {
		if errors.Is(err, importer.ErrHeaderNotFound) {
			return common.SendClientError(c, "No header row found in spreadsheet")
		}
		return common.SendClientError(c, "Failed to parse spreadsheet")
	}
	if len(rows) > h.cfg.Limits.MaxRows {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Spreadsheet exceeds limit of %d rows", h.cfg.Limits.MaxRows))
	}

	log.Printf("import: %s uploaded %d rows (strategy=%s)", fileHeader.Filename, len(rows), strategy)

	result, err := h.imp.Import(ctx, rows, strategy)
	if err != nil {
		return common.SendServerError(c, "Import failed")
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusMultiStatus
	}
	return c.JSON(status, result)
}
