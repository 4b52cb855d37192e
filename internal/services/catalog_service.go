package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dukamart/internal/caching"
	"dukamart/internal/models"
	"dukamart/internal/repositories"

	"github.com/google/uuid"
)

type CatalogService interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListVariants(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error)
	GetVariantBySKU(ctx context.Context, sku string) (*models.ProductVariant, error)
	ListBrands(ctx context.Context, limit, offset int) ([]*models.Brand, error)
	ListCategories(ctx context.Context, limit, offset int) ([]*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
}

type catalogService struct {
	productRepo  repositories.ProductRepository
	variantRepo  repositories.VariantRepository
	brandRepo    repositories.BrandRepository
	categoryRepo repositories.CategoryRepository
	cacheService caching.CacheService
}

func NewCatalogService(
	productRepo repositories.ProductRepository,
	variantRepo repositories.VariantRepository,
	brandRepo repositories.BrandRepository,
	categoryRepo repositories.CategoryRepository,
	cacheService caching.CacheService,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		cacheService: cacheService,
	}
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if cached, err := s.cacheService.GetProduct(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		// Cache errors never fail the read path
		log.Printf("WARN: cache error for product %s: %v", id.String(), err)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetProduct(ctx, product, 15*time.Minute); cacheErr != nil {
		log.Printf("WARN: failed to cache product %s: %v", id.String(), cacheErr)
	}
	return product, nil
}

func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.productRepo.GetBySlug(ctx, slug)
}

// ListProducts serves unfiltered first pages from the listing cache; anything
// more specific goes straight to the database.
func (s *catalogService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
	cacheKey := listingCacheKey(filter)
	if cacheKey != "" {
		if cached, err := s.cacheService.GetProductListing(ctx, cacheKey); cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("WARN: listing cache error: %v", err)
		}
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if cacheErr := s.cacheService.SetProductListing(ctx, cacheKey, products, 5*time.Minute); cacheErr != nil {
			log.Printf("WARN: failed to cache listing: %v", cacheErr)
		}
	}
	return products, nil
}

func listingCacheKey(filter *models.ProductFilter) string {
	if filter == nil {
		return "all:0"
	}
	if filter.Query != "" || filter.BrandID != nil || filter.CategoryID != nil ||
		filter.MinPrice != nil || filter.MaxPrice != nil || filter.Featured != nil {
		return ""
	}
	scope := "all"
	if filter.PublishedOnly {
		scope = "published"
	}
	return fmt.Sprintf("%s:%d", scope, filter.Offset)
}

func (s *catalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return errors.New("product name is required")
	}
	if product.Slug == "" {
		return errors.New("product slug is required")
	}
	if product.BasePrice <= 0 {
		return errors.New("base price must be positive")
	}

	product.ID = uuid.New()
	if err := s.productRepo.Create(ctx, product); err != nil {
		return err
	}
	return s.invalidateListing(ctx)
}

func (s *catalogService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if _, err := s.productRepo.GetByID(ctx, product.ID); err != nil {
		return err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return err
	}
	if cacheErr := s.cacheService.DeleteProduct(ctx, product.ID); cacheErr != nil {
		log.Printf("WARN: failed to invalidate cache for product %s: %v", product.ID.String(), cacheErr)
	}
	return s.invalidateListing(ctx)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	if cacheErr := s.cacheService.DeleteProduct(ctx, id); cacheErr != nil {
		log.Printf("WARN: failed to invalidate cache for product %s: %v", id.String(), cacheErr)
	}
	return s.invalidateListing(ctx)
}

func (s *catalogService) invalidateListing(ctx context.Context) error {
	if err := s.cacheService.InvalidateProductListing(ctx); err != nil {
		log.Printf("WARN: failed to invalidate listing cache: %v", err)
	}
	return nil
}

func (s *catalogService) ListVariants(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error) {
	return s.variantRepo.ListByProduct(ctx, productID)
}

func (s *catalogService) GetVariantBySKU(ctx context.Context, sku string) (*models.ProductVariant, error) {
	return s.variantRepo.GetBySKU(ctx, sku)
}

func (s *catalogService) ListBrands(ctx context.Context, limit, offset int) ([]*models.Brand, error) {
	return s.brandRepo.List(ctx, limit, offset)
}

func (s *catalogService) ListCategories(ctx context.Context, limit, offset int) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx, limit, offset)
}

func (s *catalogService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(ctx, slug)
}
