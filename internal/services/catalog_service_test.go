package services

import (
	"context"
	"testing"
	"time"

	"dukamart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	mockProductRepo  *MockProductRepository
	mockVariantRepo  *MockVariantRepository
	mockBrandRepo    *MockBrandRepository
	mockCategoryRepo *MockCategoryRepository
	mockCacheSvc     *MockCacheService
	service          CatalogService
	ctx              context.Context
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockProductRepo = &MockProductRepository{}
	suite.mockVariantRepo = &MockVariantRepository{}
	suite.mockBrandRepo = &MockBrandRepository{}
	suite.mockCategoryRepo = &MockCategoryRepository{}
	suite.mockCacheSvc = &MockCacheService{}
	suite.service = NewCatalogService(
		suite.mockProductRepo,
		suite.mockVariantRepo,
		suite.mockBrandRepo,
		suite.mockCategoryRepo,
		suite.mockCacheSvc,
	)
	suite.ctx = context.Background()
}

func (suite *CatalogServiceTestSuite) TearDownTest() {
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockVariantRepo.AssertExpectations(suite.T())
	suite.mockBrandRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
	suite.mockCacheSvc.AssertExpectations(suite.T())
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (suite *CatalogServiceTestSuite) TestGetProduct_CacheHit() {
	productID := uuid.New()
	cached := &models.Product{ID: productID, Name: "Kingston 8GB DDR4 SODIMM"}
	suite.mockCacheSvc.On("GetProduct", suite.ctx, productID).Return(cached, nil).Once()

	product, err := suite.service.GetProduct(suite.ctx, productID)
	suite.NoError(err)
	suite.Equal(cached, product)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "GetByID")
}

func (suite *CatalogServiceTestSuite) TestGetProduct_CacheMissLoadsAndCaches() {
	productID := uuid.New()
	product := &models.Product{ID: productID, Name: "Kingston 8GB DDR4 SODIMM"}
	suite.mockCacheSvc.On("GetProduct", suite.ctx, productID).Return(nil, nil).Once()
	suite.mockProductRepo.On("GetByID", suite.ctx, productID).Return(product, nil).Once()
	suite.mockCacheSvc.On("SetProduct", suite.ctx, product, 15*time.Minute).Return(nil).Once()

	got, err := suite.service.GetProduct(suite.ctx, productID)
	suite.NoError(err)
	suite.Equal(product, got)
}

func (suite *CatalogServiceTestSuite) TestListProducts_UnfilteredPageIsCached() {
	filter := &models.ProductFilter{PublishedOnly: true, Limit: 20}
	products := []*models.Product{{ID: uuid.New(), Name: "Logitech K380"}}
	suite.mockCacheSvc.On("GetProductListing", suite.ctx, "published:0").Return(nil, nil).Once()
	suite.mockProductRepo.On("List", suite.ctx, filter).Return(products, nil).Once()
	suite.mockCacheSvc.On("SetProductListing", suite.ctx, "published:0", products, 5*time.Minute).Return(nil).Once()

	got, err := suite.service.ListProducts(suite.ctx, filter)
	suite.NoError(err)
	suite.Equal(products, got)
}

func (suite *CatalogServiceTestSuite) TestListProducts_CachedListingSkipsRepo() {
	filter := &models.ProductFilter{PublishedOnly: true}
	products := []*models.Product{{ID: uuid.New()}}
	suite.mockCacheSvc.On("GetProductListing", suite.ctx, "published:0").Return(products, nil).Once()

	got, err := suite.service.ListProducts(suite.ctx, filter)
	suite.NoError(err)
	suite.Equal(products, got)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "List")
}

func (suite *CatalogServiceTestSuite) TestListProducts_FilteredQueryBypassesCache() {
	brandID := uuid.New()
	filter := &models.ProductFilter{BrandID: &brandID, PublishedOnly: true}
	products := []*models.Product{{ID: uuid.New()}}
	suite.mockProductRepo.On("List", suite.ctx, filter).Return(products, nil).Once()

	got, err := suite.service.ListProducts(suite.ctx, filter)
	suite.NoError(err)
	suite.Equal(products, got)
	suite.mockCacheSvc.AssertNotCalled(suite.T(), "GetProductListing")
	suite.mockCacheSvc.AssertNotCalled(suite.T(), "SetProductListing")
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_Validation() {
	tests := []struct {
		name    string
		product *models.Product
	}{
		{"missing name", &models.Product{Slug: "kingston-8gb", BasePrice: 4500}},
		{"missing slug", &models.Product{Name: "Kingston 8GB", BasePrice: 4500}},
		{"zero price", &models.Product{Name: "Kingston 8GB", Slug: "kingston-8gb"}},
	}

	for _, tt := range tests {
		err := suite.service.CreateProduct(suite.ctx, tt.product)
		suite.Error(err, tt.name)
	}
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_AssignsIDAndInvalidatesListing() {
	product := &models.Product{Name: "Kingston 8GB", Slug: "kingston-8gb", BasePrice: 4500}
	suite.mockProductRepo.On("Create", suite.ctx, product).Return(nil).Once()
	suite.mockCacheSvc.On("InvalidateProductListing", suite.ctx).Return(nil).Once()

	err := suite.service.CreateProduct(suite.ctx, product)
	suite.NoError(err)
	suite.NotEqual(uuid.Nil, product.ID)
}

func (suite *CatalogServiceTestSuite) TestUpdateProduct_RequiresExistingProduct() {
	product := &models.Product{ID: uuid.New(), Name: "Kingston 8GB"}
	suite.mockProductRepo.On("GetByID", suite.ctx, product.ID).
		Return(nil, pgx.ErrNoRows).Once()

	err := suite.service.UpdateProduct(suite.ctx, product)
	suite.ErrorIs(err, pgx.ErrNoRows)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "Update")
}

func (suite *CatalogServiceTestSuite) TestUpdateProduct_InvalidatesCaches() {
	product := &models.Product{ID: uuid.New(), Name: "Kingston 8GB"}
	suite.mockProductRepo.On("GetByID", suite.ctx, product.ID).Return(product, nil).Once()
	suite.mockProductRepo.On("Update", suite.ctx, product).Return(nil).Once()
	suite.mockCacheSvc.On("DeleteProduct", suite.ctx, product.ID).Return(nil).Once()
	suite.mockCacheSvc.On("InvalidateProductListing", suite.ctx).Return(nil).Once()

	err := suite.service.UpdateProduct(suite.ctx, product)
	suite.NoError(err)
}

func (suite *CatalogServiceTestSuite) TestDeleteProduct_InvalidatesCaches() {
	productID := uuid.New()
	suite.mockProductRepo.On("Delete", suite.ctx, productID).Return(nil).Once()
	suite.mockCacheSvc.On("DeleteProduct", suite.ctx, productID).Return(nil).Once()
	suite.mockCacheSvc.On("InvalidateProductListing", suite.ctx).Return(nil).Once()

	err := suite.service.DeleteProduct(suite.ctx, productID)
	suite.NoError(err)
}
