package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/inventory"
)

func newStockCheckService() (*StockCheckService, *MockStockCheckRepository, *MockAdjustmentOrderRepository, *MockBatchRepository, *MockColorRepository, *MockProductRepository) {
	checkRepo := new(MockStockCheckRepository)
	adjustmentRepo := new(MockAdjustmentOrderRepository)
	batchRepo := new(MockBatchRepository)
	colorRepo := new(MockColorRepository)
	productRepo := new(MockProductRepository)
	service := NewStockCheckService(checkRepo, adjustmentRepo, batchRepo, colorRepo, productRepo)
	return service, checkRepo, adjustmentRepo, batchRepo, colorRepo, productRepo
}

func TestStockCheckService_Create(t *testing.T) {
	ctx := context.Background()
	service, checkRepo, _, batchRepo, colorRepo, productRepo := newStockCheckService()

	product, err := catalog.NewProduct("YARN-001", "Combed Cotton 32s", "kg", catalog.ProductTypeRawMaterial)
	require.NoError(t, err)
	color, err := catalog.NewColor(product.ID, "C001", "Navy", "")
	require.NoError(t, err)
	batch, err := catalog.NewBatch(color.ID, "LOT-A", decimal.NewFromInt(80), catalog.BatchAttributes{})
	require.NoError(t, err)

	t.Run("snapshots system quantities", func(t *testing.T) {
		checkRepo.On("GenerateOrderNumber", mock.Anything).Return("PD20250405001", nil).Once()
		batchRepo.On("FindByIDs", mock.Anything, []uuid.UUID{batch.ID}).Return([]catalog.Batch{*batch}, nil).Once()
		colorRepo.On("FindByID", mock.Anything, color.ID).Return(color, nil).Once()
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil).Once()
		checkRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.StockCheck")).Return(nil).Once()

		resp, err := service.Create(ctx, CreateStockCheckRequest{
			Name:     "Q1 warehouse count",
			BatchIDs: []uuid.UUID{batch.ID},
		})

		require.NoError(t, err)
		assert.Equal(t, inventory.StockCheckStatusPlanned.String(), resp.Status)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].SystemQuantity.Equal(decimal.NewFromInt(80)))
		assert.Equal(t, "Combed Cotton 32s", resp.Items[0].ProductName)
		assert.Equal(t, "Navy", resp.Items[0].ColorName)
	})

	t.Run("missing batch rejected", func(t *testing.T) {
		missing := uuid.New()
		checkRepo.On("GenerateOrderNumber", mock.Anything).Return("PD20250405002", nil).Once()
		batchRepo.On("FindByIDs", mock.Anything, []uuid.UUID{missing}).Return([]catalog.Batch{}, nil).Once()

		resp, err := service.Create(ctx, CreateStockCheckRequest{
			Name:     "Q1 warehouse count",
			BatchIDs: []uuid.UUID{missing},
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestStockCheckService_GenerateAdjustment(t *testing.T) {
	ctx := context.Background()

	buildCompletedCheck := func(t *testing.T, surplusBatch, deficitBatch uuid.UUID) *inventory.StockCheck {
		t.Helper()
		check, err := inventory.NewStockCheck("PD20250405003", "Q1 warehouse count", "")
		require.NoError(t, err)
		surplus, err := check.AddItem(surplusBatch, "LOT-A", "Combed Cotton 32s", "Navy", decimal.NewFromInt(80))
		require.NoError(t, err)
		deficit, err := check.AddItem(deficitBatch, "LOT-B", "Combed Cotton 32s", "Crimson", decimal.NewFromInt(50))
		require.NoError(t, err)
		require.NoError(t, check.RecordCount(surplus.ID, decimal.NewFromInt(83)))
		require.NoError(t, check.RecordCount(deficit.ID, decimal.NewFromInt(44)))
		require.NoError(t, check.Complete())
		check.ClearDomainEvents()
		return check
	}

	t.Run("carries signed differences into a draft adjustment", func(t *testing.T) {
		service, checkRepo, adjustmentRepo, _, _, _ := newStockCheckService()
		surplusBatch := uuid.New()
		deficitBatch := uuid.New()
		check := buildCompletedCheck(t, surplusBatch, deficitBatch)

		checkRepo.On("FindByID", mock.Anything, check.ID).Return(check, nil).Once()
		adjustmentRepo.On("FindBySourceCheck", mock.Anything, check.ID).Return([]inventory.AdjustmentOrder{}, nil).Once()
		adjustmentRepo.On("GenerateOrderNumber", mock.Anything).Return("TZ20250405001", nil).Once()
		adjustmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.AdjustmentOrder")).Return(nil).Once()

		resp, err := service.GenerateAdjustment(ctx, check.ID)

		require.NoError(t, err)
		assert.Equal(t, inventory.AdjustmentOrderStatusDraft.String(), resp.Status)
		require.NotNil(t, resp.SourceCheckID)
		assert.Equal(t, check.ID, *resp.SourceCheckID)
		require.Len(t, resp.Items, 2)

		byBatch := map[uuid.UUID]decimal.Decimal{}
		for _, item := range resp.Items {
			byBatch[item.BatchID] = item.Quantity
		}
		assert.True(t, byBatch[surplusBatch].Equal(decimal.NewFromInt(3)))
		assert.True(t, byBatch[deficitBatch].Equal(decimal.NewFromInt(-6)))
	})

	t.Run("refused before completion", func(t *testing.T) {
		service, checkRepo, adjustmentRepo, _, _, _ := newStockCheckService()
		check, err := inventory.NewStockCheck("PD20250405004", "Q1 warehouse count", "")
		require.NoError(t, err)

		checkRepo.On("FindByID", mock.Anything, check.ID).Return(check, nil).Once()

		resp, err := service.GenerateAdjustment(ctx, check.ID)

		assert.Error(t, err)
		assert.Nil(t, resp)
		adjustmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("refused when no differences", func(t *testing.T) {
		service, checkRepo, adjustmentRepo, _, _, _ := newStockCheckService()
		check, err := inventory.NewStockCheck("PD20250405005", "Q1 warehouse count", "")
		require.NoError(t, err)
		item, err := check.AddItem(uuid.New(), "LOT-A", "", "", decimal.NewFromInt(80))
		require.NoError(t, err)
		require.NoError(t, check.RecordCount(item.ID, decimal.NewFromInt(80)))
		require.NoError(t, check.Complete())

		checkRepo.On("FindByID", mock.Anything, check.ID).Return(check, nil).Once()

		resp, err := service.GenerateAdjustment(ctx, check.ID)

		assert.Error(t, err)
		assert.Nil(t, resp)
		adjustmentRepo.AssertNotCalled(t, "GenerateOrderNumber", mock.Anything)
	})

	t.Run("refused when already generated", func(t *testing.T) {
		service, checkRepo, adjustmentRepo, _, _, _ := newStockCheckService()
		surplusBatch := uuid.New()
		deficitBatch := uuid.New()
		check := buildCompletedCheck(t, surplusBatch, deficitBatch)

		prior, err := inventory.NewAdjustmentOrder("TZ20250405002", inventory.AdjustmentTypeOther, "")
		require.NoError(t, err)

		checkRepo.On("FindByID", mock.Anything, check.ID).Return(check, nil).Once()
		adjustmentRepo.On("FindBySourceCheck", mock.Anything, check.ID).Return([]inventory.AdjustmentOrder{*prior}, nil).Once()

		resp, err := service.GenerateAdjustment(ctx, check.ID)

		assert.Error(t, err)
		assert.Nil(t, resp)
		adjustmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestStockCheckService_RecordCount(t *testing.T) {
	ctx := context.Background()
	service, checkRepo, _, _, _, _ := newStockCheckService()

	check, err := inventory.NewStockCheck("PD20250405006", "Q1 warehouse count", "")
	require.NoError(t, err)
	item, err := check.AddItem(uuid.New(), "LOT-A", "", "", decimal.NewFromInt(100))
	require.NoError(t, err)
	check.ClearDomainEvents()

	checkRepo.On("FindByID", mock.Anything, check.ID).Return(check, nil).Once()
	checkRepo.On("Save", mock.Anything, check).Return(nil).Once()

	resp, err := service.RecordCount(ctx, check.ID, item.ID, decimal.NewFromInt(97))

	require.NoError(t, err)
	// Counting the only item promotes the check straight into COUNTING
	assert.Equal(t, inventory.StockCheckStatusCounting.String(), resp.Status)
	assert.Equal(t, 1, resp.CountedItems)
	assert.True(t, resp.Items[0].Difference.Equal(decimal.NewFromInt(-3)))
}
