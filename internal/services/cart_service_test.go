package services

import (
	"context"
	"errors"
	"testing"

	"dukamart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CartServiceTestSuite struct {
	suite.Suite
	mockVariantRepo   *MockVariantRepository
	mockProductRepo   *MockProductRepository
	mockInventoryRepo *MockInventoryRepository
	mockCacheSvc      *MockCacheService
	service           CartService
	ctx               context.Context
	customerID        uuid.UUID
	variant           *models.ProductVariant
	product           *models.Product
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.mockVariantRepo = &MockVariantRepository{}
	suite.mockProductRepo = &MockProductRepository{}
	suite.mockInventoryRepo = &MockInventoryRepository{}
	suite.mockCacheSvc = &MockCacheService{}
	suite.service = NewCartService(suite.mockVariantRepo, suite.mockProductRepo, suite.mockInventoryRepo, suite.mockCacheSvc)
	suite.ctx = context.Background()
	suite.customerID = uuid.New()

	productID := uuid.New()
	suite.product = &models.Product{ID: productID, Name: "Logitech K380", BasePrice: 3500, IsPublished: true}
	suite.variant = &models.ProductVariant{ID: uuid.New(), ProductID: productID, SKU: "KB-LOG-100", Name: "Logitech K380", PriceAdjustment: 200}
}

func (suite *CartServiceTestSuite) TearDownTest() {
	suite.mockVariantRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockInventoryRepo.AssertExpectations(suite.T())
	suite.mockCacheSvc.AssertExpectations(suite.T())
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func (suite *CartServiceTestSuite) expectLookups(stock int) {
	suite.mockVariantRepo.On("GetByID", suite.ctx, suite.variant.ID).Return(suite.variant, nil).Once()
	suite.mockProductRepo.On("GetByID", suite.ctx, suite.product.ID).Return(suite.product, nil).Once()
	suite.mockInventoryRepo.On("GetByVariant", suite.ctx, suite.variant.ID).
		Return(&models.Inventory{VariantID: suite.variant.ID, Quantity: stock}, nil).Once()
}

func (suite *CartServiceTestSuite) TestAddItem_NewItem() {
	suite.expectLookups(10)
	suite.mockCacheSvc.On("GetCart", suite.ctx, suite.customerID).Return(nil, nil).Once()
	suite.mockCacheSvc.On("SetCart", suite.ctx, mock.AnythingOfType("*models.Cart"), cartTTL).Return(nil).Once()

	cart, err := suite.service.AddItem(suite.ctx, suite.customerID, suite.variant.ID, 2)
	suite.NoError(err)
	suite.Require().Len(cart.Items, 1)
	suite.Equal("KB-LOG-100", cart.Items[0].SKU)
	suite.Equal(3700.0, cart.Items[0].UnitPrice)
	suite.Equal(2, cart.Items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestAddItem_MergesQuantities() {
	existing := &models.Cart{
		CustomerID: suite.customerID,
		Items:      []*models.CartItem{{VariantID: suite.variant.ID, SKU: "KB-LOG-100", UnitPrice: 3700, Quantity: 1}},
	}
	suite.expectLookups(10)
	suite.mockCacheSvc.On("GetCart", suite.ctx, suite.customerID).Return(existing, nil).Once()
	suite.mockCacheSvc.On("SetCart", suite.ctx, mock.AnythingOfType("*models.Cart"), cartTTL).Return(nil).Once()

	cart, err := suite.service.AddItem(suite.ctx, suite.customerID, suite.variant.ID, 3)
	suite.NoError(err)
	suite.Require().Len(cart.Items, 1)
	suite.Equal(4, cart.Items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestAddItem_RejectsUnpublishedProduct() {
	suite.product.IsPublished = false
	suite.mockVariantRepo.On("GetByID", suite.ctx, suite.variant.ID).Return(suite.variant, nil).Once()
	suite.mockProductRepo.On("GetByID", suite.ctx, suite.product.ID).Return(suite.product, nil).Once()

	_, err := suite.service.AddItem(suite.ctx, suite.customerID, suite.variant.ID, 1)
	suite.Error(err)
	suite.Contains(err.Error(), "not available")
}

func (suite *CartServiceTestSuite) TestAddItem_InsufficientStock() {
	suite.expectLookups(1)
	suite.mockCacheSvc.On("GetCart", suite.ctx, suite.customerID).Return(nil, nil).Once()

	_, err := suite.service.AddItem(suite.ctx, suite.customerID, suite.variant.ID, 5)
	suite.Error(err)
	suite.Contains(err.Error(), "only 1 units in stock")
}

func (suite *CartServiceTestSuite) TestAddItem_RepeatedAddsCannotExceedStock() {
	// 8 already carted, 10 in stock: adding 3 more must fail on the merged
	// quantity, not the delta.
	existing := &models.Cart{
		CustomerID: suite.customerID,
		Items:      []*models.CartItem{{VariantID: suite.variant.ID, SKU: "KB-LOG-100", Quantity: 8}},
	}
	suite.expectLookups(10)
	suite.mockCacheSvc.On("GetCart", suite.ctx, suite.customerID).Return(existing, nil).Once()

	_, err := suite.service.AddItem(suite.ctx, suite.customerID, suite.variant.ID, 3)
	suite.Error(err)
	suite.Contains(err.Error(), "only 10 units in stock")
}

func (suite *CartServiceTestSuite) TestAddItem_StockLookupFailureIsAnError() {
	// A failed inventory read is not the same as untracked stock.
	suite.mockVariantRepo.On("GetByID", suite.ctx, suite.variant.ID).Return(suite.variant, nil).Once()
	suite.mockProductRepo.On("GetByID", suite.ctx, suite.product.ID).Return(suite.product, nil).Once()
	suite.mockCacheSvc.On("GetCart", suite.ctx, suite.customerID).Return(nil, nil).Once()
	suite.mockInventoryRepo.On("GetByVariant", suite.ctx, suite.variant.ID).
		Return(nil, errors.New("connection refused")).Once()

	_, err := suite.service.AddItem(suite.ctx, suite.customerID, suite.variant.ID, 1)
	suite.Error(err)
	suite.Contains(err.Error(), "failed to check stock")
	suite.mockCacheSvc.AssertNotCalled(suite.T(), "SetCart")
}

func (suite *CartServiceTestSuite) TestAddItem_UntrackedStockIsAllowed() {
	suite.mockVariantRepo.On("GetByID", suite.ctx, suite.variant.ID).Return(suite.variant, nil).Once()
	suite.mockProductRepo.On("GetByID", suite.ctx, suite.product.ID).Return(suite.product, nil).Once()
	suite.mockInventoryRepo.On("GetByVariant", suite.ctx, suite.variant.ID).Return(nil, pgx.ErrNoRows).Once()
	suite.mockCacheSvc.On("GetCart", suite.ctx, suite.customerID).Return(nil, nil).Once()
	suite.mockCacheSvc.On("SetCart", suite.ctx, mock.AnythingOfType("*models.Cart"), cartTTL).Return(nil).Once()

	cart, err := suite.service.AddItem(suite.ctx, suite.customerID, suite.variant.ID, 50)
	suite.NoError(err)
	suite.Len(cart.Items, 1)
}

func (suite *CartServiceTestSuite) TestAddItem_RejectsNonPositiveQuantity() {
	_, err := suite.service.AddItem(suite.ctx, suite.customerID, suite.variant.ID, 0)
	suite.Error(err)
}

func (suite *CartServiceTestSuite) TestUpdateItem_SetsQuantity() {
	existing := &models.Cart{
		CustomerID: suite.customerID,
		Items:      []*models.CartItem{{VariantID: suite.variant.ID, SKU: "KB-LOG-100", Quantity: 1}},
	}
	suite.mockInventoryRepo.On("GetByVariant", suite.ctx, suite.variant.ID).
		Return(&models.Inventory{VariantID: suite.variant.ID, Quantity: 10}, nil).Once()
	suite.mockCacheSvc.On("GetCart", suite.ctx, suite.customerID).Return(existing, nil).Once()
	suite.mockCacheSvc.On("SetCart", suite.ctx, mock.AnythingOfType("*models.Cart"), cartTTL).Return(nil).Once()

	cart, err := suite.service.UpdateItem(suite.ctx, suite.customerID, suite.variant.ID, 4)
	suite.NoError(err)
	suite.Equal(4, cart.Items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestUpdateItem_ZeroQuantityRemovesItem() {
	existing := &models.Cart{
		CustomerID: suite.customerID,
		Items:      []*models.CartItem{{VariantID: suite.variant.ID, SKU: "KB-LOG-100", Quantity: 2}},
	}
	suite.mockCacheSvc.On("GetCart", suite.ctx, suite.customerID).Return(existing, nil).Once()
	suite.mockCacheSvc.On("SetCart", suite.ctx, mock.AnythingOfType("*models.Cart"), cartTTL).Return(nil).Once()

	cart, err := suite.service.UpdateItem(suite.ctx, suite.customerID, suite.variant.ID, 0)
	suite.NoError(err)
	suite.Empty(cart.Items)
}

func (suite *CartServiceTestSuite) TestUpdateItem_NotInCart() {
	suite.mockInventoryRepo.On("GetByVariant", suite.ctx, suite.variant.ID).Return(nil, pgx.ErrNoRows).Once()
	suite.mockCacheSvc.On("GetCart", suite.ctx, suite.customerID).
		Return(&models.Cart{CustomerID: suite.customerID}, nil).Once()

	_, err := suite.service.UpdateItem(suite.ctx, suite.customerID, suite.variant.ID, 2)
	suite.Error(err)
	suite.Contains(err.Error(), "not in cart")
}

func (suite *CartServiceTestSuite) TestRemoveItem_KeepsOtherItems() {
	otherVariantID := uuid.New()
	existing := &models.Cart{
		CustomerID: suite.customerID,
		Items: []*models.CartItem{
			{VariantID: suite.variant.ID, SKU: "KB-LOG-100", Quantity: 1},
			{VariantID: otherVariantID, SKU: "MS-LOG-200", Quantity: 1},
		},
	}
	suite.mockCacheSvc.On("GetCart", suite.ctx, suite.customerID).Return(existing, nil).Once()
	suite.mockCacheSvc.On("SetCart", suite.ctx, mock.AnythingOfType("*models.Cart"), cartTTL).Return(nil).Once()

	cart, err := suite.service.RemoveItem(suite.ctx, suite.customerID, suite.variant.ID)
	suite.NoError(err)
	suite.Require().Len(cart.Items, 1)
	suite.Equal(otherVariantID, cart.Items[0].VariantID)
}

func (suite *CartServiceTestSuite) TestClearCart() {
	suite.mockCacheSvc.On("DeleteCart", suite.ctx, suite.customerID).Return(nil).Once()
	suite.NoError(suite.service.ClearCart(suite.ctx, suite.customerID))
}
