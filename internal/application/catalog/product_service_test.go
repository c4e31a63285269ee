package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/shared"
)

func newProductService() (*ProductService, *MockProductRepository, *MockColorRepository, *MockBatchRepository, *MockEventPublisher) {
	productRepo := new(MockProductRepository)
	colorRepo := new(MockColorRepository)
	batchRepo := new(MockBatchRepository)
	service := NewProductService(productRepo, colorRepo, batchRepo)
	publisher := NewMockEventPublisher()
	service.SetEventPublisher(publisher)
	return service, productRepo, colorRepo, batchRepo, publisher
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	service, productRepo, _, _, publisher := newProductService()

	t.Run("success", func(t *testing.T) {
		productRepo.On("ExistsByCode", mock.Anything, "YARN-001").Return(false, nil).Once()
		productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil).Once()

		resp, err := service.CreateProduct(ctx, CreateProductRequest{
			Code:        "YARN-001",
			Name:        "Combed Cotton 32s",
			Unit:        "kg",
			Type:        string(catalog.ProductTypeRawMaterial),
			IsWhiteYarn: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "YARN-001", resp.Code)
		assert.True(t, resp.IsWhiteYarn)
		assert.Len(t, publisher.GetEventsByType(catalog.EventTypeProductCreated), 1)
	})

	t.Run("duplicate code rejected", func(t *testing.T) {
		productRepo.On("ExistsByCode", mock.Anything, "YARN-001").Return(true, nil).Once()

		resp, err := service.CreateProduct(ctx, CreateProductRequest{
			Code: "YARN-001",
			Name: "Combed Cotton 32s",
			Unit: "kg",
			Type: string(catalog.ProductTypeRawMaterial),
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		productRepo.On("ExistsByCode", mock.Anything, "YARN-002").Return(false, nil).Once()

		resp, err := service.CreateProduct(ctx, CreateProductRequest{
			Code: "YARN-002",
			Name: "Combed Cotton 40s",
			Unit: "kg",
			Type: "NOT_A_TYPE",
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	service, productRepo, _, batchRepo, _ := newProductService()

	product, err := catalog.NewProduct("YARN-001", "Combed Cotton 32s", "kg", catalog.ProductTypeRawMaterial)
	require.NoError(t, err)

	t.Run("refused while any batch under the product holds stock", func(t *testing.T) {
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
		batchRepo.On("SumStockByProduct", mock.Anything, product.ID).Return(decimal.NewFromInt(12), nil).Once()

		err := service.DeleteProduct(ctx, product.ID)

		assert.Error(t, err)
		productRepo.AssertNotCalled(t, "Delete", mock.Anything, product.ID)
	})

	t.Run("allowed once stock is gone", func(t *testing.T) {
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
		batchRepo.On("SumStockByProduct", mock.Anything, product.ID).Return(decimal.Zero, nil).Once()
		productRepo.On("Delete", mock.Anything, product.ID).Return(nil).Once()

		err := service.DeleteProduct(ctx, product.ID)

		assert.NoError(t, err)
	})
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()
	service, productRepo, _, _, _ := newProductService()

	product, err := catalog.NewProduct("YARN-001", "Combed Cotton 32s", "kg", catalog.ProductTypeRawMaterial)
	require.NoError(t, err)

	t.Run("defaults applied to empty filter", func(t *testing.T) {
		productRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20
		})).Return([]catalog.Product{*product}, nil).Once()
		productRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil).Once()

		result, err := service.ListProducts(ctx, ListFilter{})

		require.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, int64(1), result.Total)
		assert.Equal(t, 1, result.TotalPages)
	})
}

func TestProductService_CreateColor(t *testing.T) {
	ctx := context.Background()
	service, productRepo, colorRepo, _, _ := newProductService()

	product, err := catalog.NewProduct("YARN-001", "Combed Cotton 32s", "kg", catalog.ProductTypeRawMaterial)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
		colorRepo.On("ExistsByProductAndCode", mock.Anything, product.ID, "C001").Return(false, nil).Once()
		colorRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Color")).Return(nil).Once()

		resp, err := service.CreateColor(ctx, product.ID, CreateColorRequest{
			Code: "C001",
			Name: "Navy",
		})

		require.NoError(t, err)
		assert.Equal(t, "C001", resp.Code)
		assert.Equal(t, string(catalog.ColorStatusOnSale), resp.Status)
	})

	t.Run("duplicate code within product rejected", func(t *testing.T) {
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
		colorRepo.On("ExistsByProductAndCode", mock.Anything, product.ID, "C001").Return(true, nil).Once()

		resp, err := service.CreateColor(ctx, product.ID, CreateColorRequest{
			Code: "C001",
			Name: "Navy",
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("unknown product rejected", func(t *testing.T) {
		missing := uuid.New()
		productRepo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound).Once()

		resp, err := service.CreateColor(ctx, missing, CreateColorRequest{
			Code: "C002",
			Name: "Crimson",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, resp)
	})
}
