package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/shared"
	"github.com/yarntrade/backend/internal/domain/trade"
)

func newPurchaseOrderService() (*PurchaseOrderService, *MockPurchaseOrderRepository, *MockBatchRepository, *MockEventPublisher) {
	orderRepo := new(MockPurchaseOrderRepository)
	batchRepo := new(MockBatchRepository)
	colorRepo := new(MockColorRepository)
	scope := NewNoOpTransactionScope(orderRepo, new(MockSalesOrderRepository), new(MockDyeingOrderRepository), batchRepo, colorRepo)
	service := NewPurchaseOrderService(orderRepo, scope)
	publisher := NewMockEventPublisher()
	service.SetEventPublisher(publisher)
	return service, orderRepo, batchRepo, publisher
}

func purchaseRequest(draft bool) CreatePurchaseOrderRequest {
	return CreatePurchaseOrderRequest{
		SupplierID:   uuid.New(),
		SupplierName: "Jiangnan Mills",
		OrderDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []PurchaseOrderItemRequest{
			{
				ProductID:   uuid.New(),
				ProductName: "Combed Cotton 32s",
				ColorID:     uuid.New(),
				ColorName:   "Natural",
				BatchCode:   "LOT-2025-001",
				Quantity:    decimal.NewFromInt(100),
				UnitPrice:   decimal.NewFromInt(42),
			},
		},
		SaveAsDraft: draft,
	}
}

func TestPurchaseOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("draft does not touch the ledger", func(t *testing.T) {
		service, orderRepo, batchRepo, _ := newPurchaseOrderService()
		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("CG20250310001", nil).Once()
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil).Once()

		resp, err := service.Create(ctx, purchaseRequest(true))

		require.NoError(t, err)
		assert.Equal(t, "CG20250310001", resp.OrderNumber)
		assert.Equal(t, trade.PurchaseOrderStatusDraft.String(), resp.Status)
		batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		batchRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("direct creation stocks in and creates one batch per line", func(t *testing.T) {
		service, orderRepo, batchRepo, publisher := newPurchaseOrderService()
		req := purchaseRequest(false)

		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("CG20250310002", nil).Once()
		batchRepo.On("FindByColorAndCode", mock.Anything, req.Items[0].ColorID, "LOT-2025-001").Return(nil, shared.ErrNotFound).Once()
		batchRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *catalog.Batch) bool {
			return b.Code == "LOT-2025-001" && b.StockQuantity.Equal(decimal.NewFromInt(100))
		})).Return(nil).Once()
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil).Once()

		resp, err := service.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, trade.PurchaseOrderStatusStockedIn.String(), resp.Status)
		assert.NotNil(t, resp.StockedInAt)
		assert.Len(t, publisher.GetEventsByType(trade.EventTypePurchaseOrderStockedIn), 1)
		batchRepo.AssertExpectations(t)
	})

	t.Run("existing batch code increases the balance instead", func(t *testing.T) {
		service, orderRepo, batchRepo, _ := newPurchaseOrderService()
		req := purchaseRequest(false)

		existing, err := catalog.NewBatch(req.Items[0].ColorID, "LOT-2025-001", decimal.NewFromInt(30), catalog.BatchAttributes{})
		require.NoError(t, err)

		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("CG20250310003", nil).Once()
		batchRepo.On("FindByColorAndCode", mock.Anything, req.Items[0].ColorID, "LOT-2025-001").Return(existing, nil).Once()
		batchRepo.On("AdjustStock", mock.Anything, existing.ID, decimal.NewFromInt(100)).Return(nil).Once()
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil).Once()

		resp, err := service.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, trade.PurchaseOrderStatusStockedIn.String(), resp.Status)
		batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPurchaseOrderService_StockIn(t *testing.T) {
	ctx := context.Background()

	buildReviewedOrder := func(t *testing.T) *trade.PurchaseOrder {
		t.Helper()
		order, err := trade.NewPurchaseOrder("CG20250310004", uuid.New(), "Jiangnan Mills", time.Now())
		require.NoError(t, err)
		_, err = order.AddItem(uuid.New(), "Combed Cotton 32s", uuid.New(), "Natural", "LOT-A", decimal.NewFromInt(50), decimal.NewFromInt(40), 0)
		require.NoError(t, err)
		require.NoError(t, order.SubmitForReview())
		require.NoError(t, order.Approve())
		order.ClearDomainEvents()
		return order
	}

	t.Run("reviewed order stocks in once", func(t *testing.T) {
		service, orderRepo, batchRepo, publisher := newPurchaseOrderService()
		order := buildReviewedOrder(t)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()
		batchRepo.On("FindByColorAndCode", mock.Anything, order.Items[0].ColorID, "LOT-A").Return(nil, shared.ErrNotFound).Once()
		batchRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Batch")).Return(nil).Once()
		orderRepo.On("Save", mock.Anything, order).Return(nil).Once()

		resp, err := service.StockIn(ctx, order.ID)

		require.NoError(t, err)
		assert.Equal(t, trade.PurchaseOrderStatusStockedIn.String(), resp.Status)
		assert.Len(t, publisher.GetEventsByType(trade.EventTypePurchaseOrderStockedIn), 1)
	})

	t.Run("replay is refused before any ledger write", func(t *testing.T) {
		service, orderRepo, batchRepo, _ := newPurchaseOrderService()
		order := buildReviewedOrder(t)
		require.NoError(t, order.MarkStockedIn())
		order.ClearDomainEvents()

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()

		resp, err := service.StockIn(ctx, order.ID)

		assert.Error(t, err)
		assert.Nil(t, resp)
		batchRepo.AssertNotCalled(t, "FindByColorAndCode", mock.Anything, mock.Anything, mock.Anything)
		batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPurchaseOrderService_Delete(t *testing.T) {
	ctx := context.Background()
	service, orderRepo, _, _ := newPurchaseOrderService()

	t.Run("draft can be deleted", func(t *testing.T) {
		order, err := trade.NewPurchaseOrder("CG20250310005", uuid.New(), "Jiangnan Mills", time.Now())
		require.NoError(t, err)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()
		orderRepo.On("Delete", mock.Anything, order.ID).Return(nil).Once()

		assert.NoError(t, service.Delete(ctx, order.ID))
	})

	t.Run("submitted order cannot be deleted", func(t *testing.T) {
		order, err := trade.NewPurchaseOrder("CG20250310006", uuid.New(), "Jiangnan Mills", time.Now())
		require.NoError(t, err)
		_, err = order.AddItem(uuid.New(), "Combed Cotton 32s", uuid.New(), "Natural", "LOT-B", decimal.NewFromInt(10), decimal.NewFromInt(40), 0)
		require.NoError(t, err)
		require.NoError(t, order.SubmitForReview())

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()

		err = service.Delete(ctx, order.ID)

		assert.Error(t, err)
		orderRepo.AssertNotCalled(t, "Delete", mock.Anything, order.ID)
	})
}
