package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"dukamart/internal/caching"
	"dukamart/internal/models"
	"dukamart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/gommon/random"
)

// Strategy selects what happens when an imported row's SKU already exists.
type Strategy string

const (
	StrategySkip    Strategy = "skip"
	StrategyUpdate  Strategy = "update"
	StrategyVariant Strategy = "variant"
)

func (s Strategy) Valid() bool {
	switch s {
	case StrategySkip, StrategyUpdate, StrategyVariant:
		return true
	}
	return false
}

// ImportResult summarizes one import call. Partial success is the designed
// outcome; one bad row never aborts the batch.
type ImportResult struct {
	Success bool     `json:"success"`
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

const maxVariantNameLen = 100

// Importer resolves parsed rows into brand, category, product and variant
// records. Rows are processed sequentially; each row is independent.
type Importer struct {
	brandRepo    repositories.BrandRepository
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	variantRepo  repositories.VariantRepository
	rules        *RuleSet
	cacheService caching.CacheService
}

func NewImporter(
	brandRepo repositories.BrandRepository,
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	variantRepo repositories.VariantRepository,
	rules *RuleSet,
	cacheService caching.CacheService,
) *Importer {
	return &Importer{
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		rules:        rules,
		cacheService: cacheService,
	}
}

// Import processes rows one at a time, applying strategy to duplicate SKUs,
// and returns the aggregate result. Row-level persistence failures are
// recorded and skipped; processing always continues with the next row.
func (i *Importer) Import(ctx context.Context, rows []ProductRow, strategy Strategy) (*ImportResult, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("invalid duplicate strategy %q", strategy)
	}

	result := &ImportResult{Errors: []string{}}

	for _, row := range rows {
		if err := i.importRow(ctx, row, strategy, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", row.PartNo, err))
			result.Skipped++
		}
	}

	// The catalog changed; listing pages must be re-read from the database.
	if err := i.cacheService.InvalidateProductListing(ctx); err != nil {
		log.Printf("WARN: failed to invalidate product listing cache: %v", err)
	}

	result.Success = len(result.Errors) == 0
	return result, nil
}

func (i *Importer) importRow(ctx context.Context, row ProductRow, strategy Strategy, result *ImportResult) error {
	info := i.rules.Extract(row.Description, row.PartNo)

	brandID, err := i.resolveBrand(ctx, info)
	if err != nil {
		return fmt.Errorf("failed to resolve brand: %w", err)
	}

	categoryID, err := i.resolveCategory(ctx, info)
	if err != nil {
		return fmt.Errorf("failed to resolve category: %w", err)
	}

	existing, err := i.variantRepo.GetBySKU(ctx, row.PartNo)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to look up SKU: %w", err)
	}

	if existing != nil {
		switch strategy {
		case StrategySkip:
			result.Skipped++
			return nil
		case StrategyUpdate:
			return i.updateExisting(ctx, row, existing, result)
		case StrategyVariant:
			return i.attachVariant(ctx, row, existing, result)
		}
	}

	return i.createProduct(ctx, row, info, brandID, categoryID, result)
}

// resolveBrand returns the ID of the brand with the extracted slug, creating
// it on first reference. Brands are idempotent reference data keyed by slug:
// a retried row reuses whatever an earlier attempt persisted.
func (i *Importer) resolveBrand(ctx context.Context, info ProductInfo) (uuid.UUID, error) {
	brand, err := i.brandRepo.GetBySlug(ctx, info.BrandSlug)
	if err == nil {
		return brand.ID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, err
	}

	brand = &models.Brand{
		ID:          uuid.New(),
		Name:        info.Brand,
		Slug:        info.BrandSlug,
		Description: info.Brand + " products",
	}
	if err := i.brandRepo.Create(ctx, brand); err != nil {
		return uuid.Nil, err
	}
	return brand.ID, nil
}

// resolveCategory returns the ID of the category with the extracted slug,
// creating it on first reference. The parent category, when the rule names
// one, is resolved by slug against existing categories; a missing parent
// leaves parent_id null rather than failing the row.
func (i *Importer) resolveCategory(ctx context.Context, info ProductInfo) (uuid.UUID, error) {
	category, err := i.categoryRepo.GetBySlug(ctx, info.CategorySlug)
	if err == nil {
		return category.ID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, err
	}

	var parentID *uuid.UUID
	if info.ParentCategory != "" {
		parent, err := i.categoryRepo.GetBySlug(ctx, SlugifyName(info.ParentCategory))
		if err == nil {
			parentID = &parent.ID
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, err
		}
	}

	category = &models.Category{
		ID:          uuid.New(),
		Name:        info.Category,
		Slug:        info.CategorySlug,
		Description: info.Category + " products",
		ParentID:    parentID,
	}
	if err := i.categoryRepo.Create(ctx, category); err != nil {
		return uuid.Nil, err
	}
	return category.ID, nil
}

// updateExisting refreshes the variant's name and the parent product's base
// price from the imported row.
func (i *Importer) updateExisting(ctx context.Context, row ProductRow, existing *models.ProductVariant, result *ImportResult) error {
	if err := i.variantRepo.UpdateName(ctx, existing.ID, truncate(row.Description, maxVariantNameLen)); err != nil {
		return fmt.Errorf("failed to update variant: %w", err)
	}
	if err := i.productRepo.UpdateBasePrice(ctx, existing.ProductID, row.SalePrice); err != nil {
		return fmt.Errorf("failed to update product price: %w", err)
	}
	result.Updated++
	return nil
}

// attachVariant adds a new variant under the product that already owns this
// SKU, disambiguating the SKU with a -vN suffix.
func (i *Importer) attachVariant(ctx context.Context, row ProductRow, existing *models.ProductVariant, result *ImportResult) error {
	count, err := i.variantRepo.CountByProduct(ctx, existing.ProductID)
	if err != nil {
		return fmt.Errorf("failed to count variants: %w", err)
	}

	variant := &models.ProductVariant{
		ID:              uuid.New(),
		ProductID:       existing.ProductID,
		SKU:             fmt.Sprintf("%s-v%d", row.PartNo, count+1),
		Name:            truncate(row.Description, maxVariantNameLen),
		PriceAdjustment: 0,
	}
	if err := i.variantRepo.Create(ctx, variant); err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}
	result.Created++
	return nil
}

// createProduct inserts a new product and its first variant. A unique
// violation on the product slug is retried exactly once with a random
// suffix; any other failure is a row-level error.
func (i *Importer) createProduct(ctx context.Context, row ProductRow, info ProductInfo, brandID, categoryID uuid.UUID, result *ImportResult) error {
	product := &models.Product{
		ID:          uuid.New(),
		Name:        info.ProductName,
		Slug:        info.Slug,
		Description: info.FullDescription,
		BasePrice:   row.SalePrice,
		BrandID:     brandID,
		CategoryID:  categoryID,
		IsPublished: true,
		Featured:    false,
	}

	err := i.productRepo.Create(ctx, product)
	if err != nil && repositories.IsUniqueViolation(err, "slug") {
		product.Slug = info.Slug + "-" + strings.ToLower(random.String(6))
		err = i.productRepo.Create(ctx, product)
	}
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	variant := &models.ProductVariant{
		ID:              uuid.New(),
		ProductID:       product.ID,
		SKU:             row.PartNo,
		Name:            truncate(info.FullDescription, maxVariantNameLen),
		PriceAdjustment: 0,
	}
	if err := i.variantRepo.Create(ctx, variant); err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}

	result.Created++
	return nil
}

// truncate limits s to max runes. Cutting on a byte boundary could split a
// multi-byte rune and produce invalid UTF-8, which Postgres rejects.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
