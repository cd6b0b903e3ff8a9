package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pixelarium/backend/internal/i18n"
	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/repository"
	"github.com/pixelarium/backend/internal/utils"
)

type CatalogCacheMock struct {
	mock.Mock
}

func (m *CatalogCacheMock) GetProducts(ctx context.Context, key string) ([]models.Product, bool) {
	args := m.Called(ctx, key)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Bool(1)
}

func (m *CatalogCacheMock) Generation(ctx context.Context) int64 {
	return m.Called(ctx).Get(0).(int64)
}

func (m *CatalogCacheMock) SetProducts(ctx context.Context, key string, generation int64, products []models.Product) {
	m.Called(ctx, key, generation, products)
}

func (m *CatalogCacheMock) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

func (m *CatalogCacheMock) Close() error {
	return m.Called().Error(0)
}

type ProductServiceTestSuite struct {
	suite.Suite
	store   *repository.GormStore
	service *ProductService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.store = repository.NewGormStore(newTestDB(suite.T()))
	suite.service = NewProductService(suite.store, nil, nil)
}

func (suite *ProductServiceTestSuite) TestCreateProduct() {
	product, err := suite.service.CreateProduct(bg, withSale(productRequest("Console X", "500.00", 10), "450.00"))
	require.NoError(suite.T(), err)

	stored, err := suite.service.GetProduct(bg, product.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Console X", stored.Name)
	assert.True(suite.T(), stored.Price.Equal(dec("500.00")))
	require.True(suite.T(), stored.SalePrice.Valid)
	assert.True(suite.T(), stored.SalePrice.Decimal.Equal(dec("450.00")))
	assert.Equal(suite.T(), 10, stored.Stock)
}

func (suite *ProductServiceTestSuite) TestCreateProductRejections() {
	_, err := suite.service.CreateProduct(bg, productRequest("Existing", "10.00", 1))
	require.NoError(suite.T(), err)

	cases := []struct {
		name string
		req  *ProductRequest
		key  string
	}{
		{"duplicate name", productRequest("Existing", "20.00", 1), i18n.KeyProductNameTaken},
		{"negative price", productRequest("New", "-0.01", 1), i18n.KeyProductNegativePrice},
		{"negative stock", productRequest("New", "10.00", -1), i18n.KeyProductNegativeStock},
		{"sale equal to price", withSale(productRequest("New", "10.00", 1), "10.00"), i18n.KeyProductSaleNotBelowPrice},
		{"sale above price", withSale(productRequest("New", "10.00", 1), "12.00"), i18n.KeyProductSaleNotBelowPrice},
		{"negative sale", withSale(productRequest("New", "10.00", 1), "-1.00"), i18n.KeyProductNegativeSalePrice},
		{"sub-cent price", productRequest("New", "10.001", 1), i18n.KeyProductPriceScale},
		{"sub-cent sale price", withSale(productRequest("New", "10.00", 1), "9.995"), i18n.KeyProductPriceScale},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			_, err := suite.service.CreateProduct(bg, tc.req)
			domainErr := requireKind(suite.T(), err, ErrInvalidInput)
			assert.Equal(suite.T(), tc.key, domainErr.Key)
		})
	}

	// nothing but the first product was written
	_, total, err := suite.service.ListProducts(bg, utils.DefaultPagination())
	require.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 1, total)
}

func (suite *ProductServiceTestSuite) TestPricesAreStoredInWholeCents() {
	product, err := suite.service.CreateProduct(bg, withSale(productRequest("Cable", "10.000", 1), "9.50"))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "10.00", product.Price.StringFixed(2))

	_, err = suite.service.UpdateProduct(bg, product.ID, withSale(productRequest("Cable", "10.00", 1), "9.995"))
	domainErr := requireKind(suite.T(), err, ErrInvalidInput)
	assert.Equal(suite.T(), i18n.KeyProductPriceScale, domainErr.Key)

	stored, err := suite.service.GetProduct(bg, product.ID)
	require.NoError(suite.T(), err)
	require.True(suite.T(), stored.SalePrice.Valid)
	assert.True(suite.T(), stored.SalePrice.Decimal.Equal(dec("9.50")))
}

func (suite *ProductServiceTestSuite) TestCreateProductNameIsCaseSensitive() {
	_, err := suite.service.CreateProduct(bg, productRequest("Console X", "10.00", 1))
	require.NoError(suite.T(), err)

	_, err = suite.service.CreateProduct(bg, productRequest("console x", "10.00", 1))
	assert.NoError(suite.T(), err)
}

func (suite *ProductServiceTestSuite) TestCreateProductFieldValidation() {
	req := productRequest("", "10.00", 1)
	req.Price = nil
	req.Category = "XBOX"

	_, err := suite.service.CreateProduct(bg, req)
	domainErr := requireKind(suite.T(), err, ErrInvalidInput)

	fields := map[string]bool{}
	for _, d := range domainErr.Details {
		fields[d.Field] = true
	}
	assert.True(suite.T(), fields["name"])
	assert.True(suite.T(), fields["price"])
	assert.True(suite.T(), fields["category"])
}

func (suite *ProductServiceTestSuite) TestUpdateProduct() {
	product, err := suite.service.CreateProduct(bg, productRequest("Console X", "500.00", 10))
	require.NoError(suite.T(), err)
	_, err = suite.service.CreateProduct(bg, productRequest("Console Y", "300.00", 10))
	require.NoError(suite.T(), err)

	// keeping its own name is fine
	updated, err := suite.service.UpdateProduct(bg, product.ID, withSale(productRequest("Console X", "520.00", 8), "480.00"))
	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.Price.Equal(dec("520.00")))

	_, err = suite.service.UpdateProduct(bg, product.ID, productRequest("Console Y", "520.00", 8))
	requireKind(suite.T(), err, ErrInvalidInput)

	_, err = suite.service.UpdateProduct(bg, uuid.New(), productRequest("Console Z", "1.00", 1))
	requireKind(suite.T(), err, ErrNotFound)

	// clearing the sale price
	cleared, err := suite.service.UpdateProduct(bg, product.ID, productRequest("Console X", "520.00", 8))
	require.NoError(suite.T(), err)
	stored, err := suite.service.GetProduct(bg, cleared.ID)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), stored.SalePrice.Valid)
}

func (suite *ProductServiceTestSuite) TestDeleteProduct() {
	product, err := suite.service.CreateProduct(bg, productRequest("Cable", "9.99", 10))
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.service.DeleteProduct(bg, product.ID))
	_, err = suite.service.GetProduct(bg, product.ID)
	requireKind(suite.T(), err, ErrNotFound)

	err = suite.service.DeleteProduct(bg, product.ID)
	requireKind(suite.T(), err, ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestDeleteProductReferencedByOrder() {
	product, err := suite.service.CreateProduct(bg, productRequest("Cable", "9.99", 10))
	require.NoError(suite.T(), err)
	user, err := NewUserService(suite.store).CreateUser(bg, userRequest("ada", "ada@example.com"))
	require.NoError(suite.T(), err)
	_, err = NewOrderService(suite.store).CreateOrder(bg, &CreateOrderRequest{
		UserID: user.ID,
		Items:  []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(suite.T(), err)

	err = suite.service.DeleteProduct(bg, product.ID)
	requireKind(suite.T(), err, ErrConflict)

	_, err = suite.service.GetProduct(bg, product.ID)
	assert.NoError(suite.T(), err)
}

func (suite *ProductServiceTestSuite) TestQueries() {
	seed := []*ProductRequest{
		withSale(productRequest("Switch Pro Controller", "69.99", 5), "59.99"),
		productRequest("USB-C Cable", "9.99", 100),
		productRequest("Switch Case", "19.99", 20),
	}
	seed[2].Category = models.CategoryNintendoSwitch
	for _, req := range seed {
		_, err := suite.service.CreateProduct(bg, req)
		require.NoError(suite.T(), err)
	}

	byName, err := suite.service.SearchProductsByName(bg, "switch")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Switch Case", "Switch Pro Controller"}, productNames(byName))

	byPrice, err := suite.service.FindProductsByPrice(bg, dec("9.99"))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"USB-C Cable"}, productNames(byPrice))

	inRange, err := suite.service.FindProductsByPriceRange(bg, dec("9.99"), dec("19.99"))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Switch Case", "USB-C Cable"}, productNames(inRange))

	bySale, err := suite.service.FindProductsBySalePrice(bg, dec("59.99"))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Switch Pro Controller"}, productNames(bySale))

	offers, err := suite.service.FindSaleOffers(bg)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Switch Pro Controller"}, productNames(offers))

	byCategory, err := suite.service.FindProductsByCategory(bg, models.CategoryAccessories)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Switch Pro Controller", "USB-C Cable"}, productNames(byCategory))

	categoryPrice, err := suite.service.FindProductsByCategoryAndPrice(bg, models.CategoryNintendoSwitch, dec("19.99"))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Switch Case"}, productNames(categoryPrice))

	categoryRange, err := suite.service.FindProductsByCategoryAndPriceRange(bg, models.CategoryAccessories, dec("0"), dec("10"))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"USB-C Cable"}, productNames(categoryRange))

	empty, err := suite.service.FindProductsByCategory(bg, models.CategoryApple)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), empty)

	_, err = suite.service.FindProductsByCategory(bg, models.Category("XBOX"))
	requireKind(suite.T(), err, ErrInvalidInput)
}

func (suite *ProductServiceTestSuite) TestSearchEscapesWildcards() {
	_, err := suite.service.CreateProduct(bg, productRequest("100% Cotton Pouch", "5.00", 1))
	require.NoError(suite.T(), err)
	_, err = suite.service.CreateProduct(bg, productRequest("1000 mAh Battery", "5.00", 1))
	require.NoError(suite.T(), err)

	found, err := suite.service.SearchProductsByName(bg, "100%")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"100% Cotton Pouch"}, productNames(found))
}

func (suite *ProductServiceTestSuite) TestCatalogCache() {
	cache := new(CatalogCacheMock)
	service := NewProductService(suite.store, cache, nil)

	cache.On("Invalidate", mock.Anything).Return()
	product, err := service.CreateProduct(bg, withSale(productRequest("Console X", "500.00", 10), "450.00"))
	require.NoError(suite.T(), err)

	// miss loads from the database and fills the cache
	cache.On("GetProducts", mock.Anything, saleOffersCacheKey).Return(nil, false).Once()
	cache.On("Generation", mock.Anything).Return(int64(7)).Once()
	cache.On("SetProducts", mock.Anything, saleOffersCacheKey, int64(7), mock.MatchedBy(func(products []models.Product) bool {
		return len(products) == 1 && products[0].ID == product.ID
	})).Return().Once()

	offers, err := service.FindSaleOffers(bg)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), offers, 1)

	// hit never touches the database
	cached := []models.Product{{Name: "from cache"}}
	cache.On("GetProducts", mock.Anything, categoryCacheKey(models.CategoryPC)).Return(cached, true).Once()

	pc, err := service.FindProductsByCategory(bg, models.CategoryPC)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, pc)

	require.NoError(suite.T(), service.DeleteProduct(bg, product.ID))

	cache.AssertExpectations(suite.T())
	cache.AssertNumberOfCalls(suite.T(), "Invalidate", 2)
	cache.AssertNumberOfCalls(suite.T(), "Generation", 1)
}

func (suite *ProductServiceTestSuite) TestCatalogCacheGenerationReadBeforeLoad() {
	cache := new(CatalogCacheMock)
	service := NewProductService(suite.store, cache, nil)

	cache.On("Invalidate", mock.Anything).Return()
	_, err := service.CreateProduct(bg, withSale(productRequest("Console X", "500.00", 10), "450.00"))
	require.NoError(suite.T(), err)

	// the generation is read before the list is loaded, so a write that
	// commits in between leaves the cache holding an older generation
	cache.On("GetProducts", mock.Anything, saleOffersCacheKey).Return(nil, false).Once()
	cache.On("Generation", mock.Anything).Return(int64(3)).Once().Run(func(mock.Arguments) {
		_, err := service.CreateProduct(bg, withSale(productRequest("Console Y", "300.00", 1), "250.00"))
		require.NoError(suite.T(), err)
	})
	cache.On("SetProducts", mock.Anything, saleOffersCacheKey, int64(3), mock.Anything).Return().Once()

	offers, err := service.FindSaleOffers(bg)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), offers, 2)

	cache.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestFailedWriteDoesNotInvalidateCache() {
	cache := new(CatalogCacheMock)
	service := NewProductService(suite.store, cache, nil)

	_, err := service.CreateProduct(bg, productRequest("Broken", "-1", 1))
	require.Error(suite.T(), err)

	cache.AssertNotCalled(suite.T(), "Invalidate", mock.Anything)
}

func productNames(products []models.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func TestAllCatalogKeys(t *testing.T) {
	keys := allCatalogKeys()
	assert.Contains(t, keys, saleOffersCacheKey)
	assert.Contains(t, keys, "catalog:category:NINTENDO_SWITCH_2")
	assert.Len(t, keys, 1+len(models.Categories()))
}

func TestNoopCatalogCache(t *testing.T) {
	var cache CatalogCache = NoopCatalogCache{}
	cache.SetProducts(bg, saleOffersCacheKey, cache.Generation(bg), []models.Product{{Name: "x"}})

	products, ok := cache.GetProducts(bg, saleOffersCacheKey)
	assert.False(t, ok)
	assert.Nil(t, products)
	assert.NoError(t, cache.Close())
}

func TestCheckProductRulesOrder(t *testing.T) {
	// negative price is reported before the sale price checks
	req := withSale(productRequest("X", "-5", -1), "-10")
	store := repository.NewGormStore(newTestDB(t))

	err := store.WithinTx(bg, func(r repository.TxRepos) error {
		return checkProductRules(bg, r, req, nil)
	})
	domainErr := requireKind(t, err, ErrInvalidInput)
	assert.Equal(t, i18n.KeyProductNegativePrice, domainErr.Key)

	req = withSale(productRequest("X", "5", 1), "-1")
	err = store.WithinTx(bg, func(r repository.TxRepos) error {
		return checkProductRules(bg, r, req, nil)
	})
	domainErr = requireKind(t, err, ErrInvalidInput)
	assert.Equal(t, i18n.KeyProductNegativeSalePrice, domainErr.Key)
}
