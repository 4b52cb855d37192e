package importer

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrHeaderNotFound is returned when no header row is located within the
// first headerScanRows rows of the sheet. It is the only fatal parse failure;
// every other anomaly filters the offending row silently.
var ErrHeaderNotFound = errors.New("could not find header row")

const headerScanRows = 10

// ProductRow is one parsed spreadsheet row, ready for the orchestrator.
type ProductRow struct {
	PartNo       string
	Description  string
	Availability string
	SalePrice    float64
}

// sectionTokens mark embedded section-header rows (e.g. "LAPTOP RAM") that
// look like data but are not products.
var sectionTokens = []string{"laptop", "desktop", "ram", "ddr"}

// ParseWorkbook reads the first worksheet of an in-memory workbook and
// returns the product rows it contains. Pure function over the buffer.
func ParseWorkbook(data []byte) ([]ProductRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrHeaderNotFound
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return nil, ErrHeaderNotFound
	}

	partCol, descCol, availCol, priceCol := resolveColumns(rows[headerIdx])

	var products []ProductRow
	for _, row := range rows[headerIdx+1:] {
		if rowIsEmpty(row) {
			continue
		}

		partNo := strings.TrimSpace(cellAt(row, partCol))
		if partNo == "" || isSectionHeader(partNo) {
			continue
		}

		description := strings.TrimSpace(cellAt(row, descCol))
		if description == "" {
			continue
		}

		availability := strings.TrimSpace(cellAt(row, availCol))
		if availability == "" {
			availability = "Out of Stock"
		}

		salePrice := parsePrice(cellAt(row, priceCol))
		if salePrice == 0 || math.IsNaN(salePrice) {
			continue
		}

		products = append(products, ProductRow{
			PartNo:       partNo,
			Description:  description,
			Availability: availability,
			SalePrice:    salePrice,
		})
	}

	return products, nil
}

// findHeaderRow scans at most the first headerScanRows rows for a cell
// containing the literal substring "Part No" (case-sensitive).
func findHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if strings.Contains(cell, "Part No") {
				return i
			}
		}
	}
	return -1
}

// resolveColumns maps flexible header variants to fixed column indices. Each
// column is resolved independently, so one header cell may satisfy more than
// one role ("Stock Price" is both availability and price). Unresolved indices
// stay -1 and yield empty values downstream.
func resolveColumns(header []string) (partCol, descCol, availCol, priceCol int) {
	partCol = findColumn(header, "part", "model")
	descCol = findColumn(header, "ram", "description", "product", "laptop", "desktop")
	availCol = findColumn(header, "availability", "stock")
	priceCol = findColumn(header, "price", "cost")

	if descCol < 0 && len(header) >= 2 {
		descCol = 1
	}
	return partCol, descCol, availCol, priceCol
}

// findColumn returns the index of the first header cell containing any of the
// keywords, or -1.
func findColumn(header []string, keywords ...string) int {
	for i, cell := range header {
		if containsAny(strings.ToLower(cell), keywords...) {
			return i
		}
	}
	return -1
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isSectionHeader(partNo string) bool {
	lower := strings.ToLower(partNo)
	for _, token := range sectionTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// parsePrice strips everything except digits and dots from a noisy price cell
// ("KSh 12,500.00", "  4500/=") and parses the remainder. Returns NaN when
// nothing numeric survives.
func parsePrice(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return math.NaN()
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return math.NaN()
	}
	return price
}
