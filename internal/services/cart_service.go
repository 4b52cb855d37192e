package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dukamart/internal/caching"
	"dukamart/internal/models"
	"dukamart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// cartTTL keeps abandoned carts around for a week before Redis drops them.
const cartTTL = 7 * 24 * time.Hour

type CartService interface {
	GetCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, customerID, variantID uuid.UUID, quantity int) (*models.Cart, error)
	UpdateItem(ctx context.Context, customerID, variantID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, customerID, variantID uuid.UUID) (*models.Cart, error)
	ClearCart(ctx context.Context, customerID uuid.UUID) error
}

type cartService struct {
	variantRepo   repositories.VariantRepository
	productRepo   repositories.ProductRepository
	inventoryRepo repositories.InventoryRepository
	cacheService  caching.CacheService
}

func NewCartService(
	variantRepo repositories.VariantRepository,
	productRepo repositories.ProductRepository,
	inventoryRepo repositories.InventoryRepository,
	cacheService caching.CacheService,
) CartService {
	return &cartService{
		variantRepo:   variantRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		cacheService:  cacheService,
	}
}

func (s *cartService) GetCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cacheService.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{CustomerID: customerID, Items: []*models.CartItem{}}
	}
	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, customerID, variantID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	variant, err := s.variantRepo.GetByID(ctx, variantID)
	if err != nil {
		return nil, fmt.Errorf("variant not found: %w", err)
	}
	product, err := s.productRepo.GetByID(ctx, variant.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if !product.IsPublished {
		return nil, errors.New("product is not available")
	}

	cart, err := s.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	// Stock is validated against the merged quantity, not just the delta.
	var existing *models.CartItem
	for _, item := range cart.Items {
		if item.VariantID == variantID {
			existing = item
			break
		}
	}
	total := quantity
	if existing != nil {
		total += existing.Quantity
	}
	if err := s.checkStock(ctx, variantID, total); err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Quantity = total
	} else {
		cart.Items = append(cart.Items, &models.CartItem{
			VariantID: variant.ID,
			ProductID: product.ID,
			SKU:       variant.SKU,
			Name:      variant.Name,
			UnitPrice: product.BasePrice + variant.PriceAdjustment,
			Quantity:  quantity,
		})
	}

	return s.save(ctx, cart)
}

func (s *cartService) UpdateItem(ctx context.Context, customerID, variantID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, customerID, variantID)
	}

	if err := s.checkStock(ctx, variantID, quantity); err != nil {
		return nil, err
	}

	cart, err := s.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	for _, item := range cart.Items {
		if item.VariantID == variantID {
			item.Quantity = quantity
			return s.save(ctx, cart)
		}
	}
	return nil, errors.New("item not in cart")
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, variantID uuid.UUID) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.VariantID != variantID {
			items = append(items, item)
		}
	}
	cart.Items = items
	return s.save(ctx, cart)
}

func (s *cartService) ClearCart(ctx context.Context, customerID uuid.UUID) error {
	return s.cacheService.DeleteCart(ctx, customerID)
}

func (s *cartService) checkStock(ctx context.Context, variantID uuid.UUID, quantity int) error {
	inventory, err := s.inventoryRepo.GetByVariant(ctx, variantID)
	if errors.Is(err, pgx.ErrNoRows) {
		// No inventory record means stock is not tracked for this variant
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check stock: %w", err)
	}
	if inventory.Quantity < quantity {
		return fmt.Errorf("only %d units in stock", inventory.Quantity)
	}
	return nil
}

func (s *cartService) save(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	cart.UpdatedAt = time.Now()
	if err := s.cacheService.SetCart(ctx, cart, cartTTL); err != nil {
		return nil, err
	}
	return cart, nil
}
