package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yarntrade/backend/internal/domain/inventory"
	"github.com/yarntrade/backend/internal/domain/shared"
)

func newAdjustmentService() (*AdjustmentService, *MockAdjustmentOrderRepository, *MockBatchRepository, *MockEventPublisher) {
	orderRepo := new(MockAdjustmentOrderRepository)
	batchRepo := new(MockBatchRepository)
	scope := NewNoOpTransactionScope(orderRepo, new(MockStockCheckRepository), batchRepo)
	service := NewAdjustmentService(orderRepo, scope)
	publisher := NewMockEventPublisher()
	service.SetEventPublisher(publisher)
	return service, orderRepo, batchRepo, publisher
}

func TestAdjustmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("deficit lines store negative deltas", func(t *testing.T) {
		service, orderRepo, _, _ := newAdjustmentService()
		batchID := uuid.New()

		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("TZ20250401001", nil).Once()
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.AdjustmentOrder")).Return(nil).Once()

		resp, err := service.Create(ctx, CreateAdjustmentRequest{
			Type:   string(inventory.AdjustmentTypeDeficit),
			Reason: "water damage",
			Items: []AdjustmentItemRequest{
				{BatchID: batchID, BatchCode: "LOT-A", Quantity: decimal.NewFromInt(6)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, inventory.AdjustmentOrderStatusDraft.String(), resp.Status)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].Quantity.Equal(decimal.NewFromInt(-6)))
		assert.True(t, resp.TotalQuantity.Equal(decimal.NewFromInt(6)))
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		service, orderRepo, _, _ := newAdjustmentService()
		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("TZ20250401002", nil).Once()

		resp, err := service.Create(ctx, CreateAdjustmentRequest{
			Type:  "SHRINK",
			Items: []AdjustmentItemRequest{{BatchID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestAdjustmentService_Complete(t *testing.T) {
	ctx := context.Background()

	buildDraft := func(t *testing.T, batchID uuid.UUID) *inventory.AdjustmentOrder {
		t.Helper()
		order, err := inventory.NewAdjustmentOrder("TZ20250401003", inventory.AdjustmentTypeDecrease, "damaged rolls")
		require.NoError(t, err)
		_, err = order.AddItem(batchID, "LOT-A", "", "", decimal.NewFromInt(4))
		require.NoError(t, err)
		order.ClearDomainEvents()
		return order
	}

	t.Run("applies every signed delta inside the scope", func(t *testing.T) {
		service, orderRepo, batchRepo, publisher := newAdjustmentService()
		batchID := uuid.New()
		order := buildDraft(t, batchID)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()
		batchRepo.On("AdjustStock", mock.Anything, batchID, decimal.NewFromInt(-4)).Return(nil).Once()
		orderRepo.On("Save", mock.Anything, order).Return(nil).Once()

		resp, err := service.Complete(ctx, order.ID)

		require.NoError(t, err)
		assert.Equal(t, inventory.AdjustmentOrderStatusCompleted.String(), resp.Status)
		assert.NotNil(t, resp.CompletedAt)
		assert.Len(t, publisher.GetEventsByType(inventory.EventTypeAdjustmentOrderCompleted), 1)
	})

	t.Run("completing again is a no-op for the ledger", func(t *testing.T) {
		service, orderRepo, batchRepo, publisher := newAdjustmentService()
		batchID := uuid.New()
		order := buildDraft(t, batchID)
		applied, err := order.Complete()
		require.NoError(t, err)
		require.True(t, applied)
		order.ClearDomainEvents()

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()

		resp, err := service.Complete(ctx, order.ID)

		require.NoError(t, err)
		assert.Equal(t, inventory.AdjustmentOrderStatusCompleted.String(), resp.Status)
		batchRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Empty(t, publisher.GetEventsByType(inventory.EventTypeAdjustmentOrderCompleted))
	})

	t.Run("insufficient stock aborts completion", func(t *testing.T) {
		service, orderRepo, batchRepo, _ := newAdjustmentService()
		batchID := uuid.New()
		order := buildDraft(t, batchID)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()
		batchRepo.On("AdjustStock", mock.Anything, batchID, decimal.NewFromInt(-4)).Return(shared.ErrInsufficientStock).Once()

		resp, err := service.Complete(ctx, order.ID)

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Nil(t, resp)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAdjustmentService_Delete(t *testing.T) {
	ctx := context.Background()
	service, orderRepo, _, _ := newAdjustmentService()

	t.Run("completed order cannot be deleted", func(t *testing.T) {
		order, err := inventory.NewAdjustmentOrder("TZ20250401004", inventory.AdjustmentTypeIncrease, "")
		require.NoError(t, err)
		_, err = order.AddItem(uuid.New(), "LOT-A", "", "", decimal.NewFromInt(2))
		require.NoError(t, err)
		_, err = order.Complete()
		require.NoError(t, err)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()

		err = service.Delete(ctx, order.ID)

		assert.Error(t, err)
		orderRepo.AssertNotCalled(t, "Delete", mock.Anything, order.ID)
	})
}
