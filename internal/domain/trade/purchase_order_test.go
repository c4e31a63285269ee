package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPurchaseOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder("CG20240601001", uuid.New(), "Hengfeng Mills", time.Now())
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func addPurchaseItem(t *testing.T, order *PurchaseOrder, batchCode string, qty, price int64) *PurchaseOrderItem {
	t.Helper()
	item, err := order.AddItem(uuid.New(), "Combed Cotton 32s", uuid.New(), "Navy", batchCode,
		decimal.NewFromInt(qty), decimal.NewFromInt(price), 0)
	require.NoError(t, err)
	return item
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("creates draft order", func(t *testing.T) {
		order, err := NewPurchaseOrder("CG20240601001", uuid.New(), "Hengfeng Mills", time.Now())

		require.NoError(t, err)
		assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
		assert.True(t, order.TotalAmount.IsZero())
		assert.Empty(t, order.Items)
	})

	t.Run("fails with empty order number", func(t *testing.T) {
		order, err := NewPurchaseOrder("", uuid.New(), "Hengfeng Mills", time.Now())

		require.Error(t, err)
		assert.Nil(t, order)
	})

	t.Run("fails with nil supplier", func(t *testing.T) {
		order, err := NewPurchaseOrder("CG20240601001", uuid.Nil, "Hengfeng Mills", time.Now())

		require.Error(t, err)
		assert.Nil(t, order)
	})
}

func TestPurchaseOrder_Items(t *testing.T) {
	t.Run("totals follow item amounts", func(t *testing.T) {
		order := createTestPurchaseOrder(t)

		addPurchaseItem(t, order, "B001", 100, 10)
		addPurchaseItem(t, order, "B002", 50, 20)

		// 100*10 + 50*20
		assert.Equal(t, decimal.NewFromInt(2000), order.TotalAmount)
		assert.Equal(t, decimal.NewFromInt(2000), order.UnpaidAmount)
		assert.Equal(t, 2, order.ItemCount())
	})

	t.Run("rejects duplicate batch code for the same color", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		colorID := uuid.New()

		_, err := order.AddItem(uuid.New(), "Combed Cotton 32s", colorID, "Navy", "B001",
			decimal.NewFromInt(100), decimal.NewFromInt(10), 0)
		require.NoError(t, err)

		_, err = order.AddItem(uuid.New(), "Combed Cotton 32s", colorID, "Navy", "B001",
			decimal.NewFromInt(50), decimal.NewFromInt(10), 0)
		require.Error(t, err)
	})

	t.Run("update recalculates totals", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		item := addPurchaseItem(t, order, "B001", 100, 10)

		err := order.UpdateItem(item.ID, decimal.NewFromInt(80), decimal.NewFromInt(12), 0)

		require.NoError(t, err)
		assert.Equal(t, decimal.NewFromInt(960), order.TotalAmount)
	})

	t.Run("remove recalculates totals", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		item := addPurchaseItem(t, order, "B001", 100, 10)
		addPurchaseItem(t, order, "B002", 50, 20)

		err := order.RemoveItem(item.ID)

		require.NoError(t, err)
		assert.Equal(t, decimal.NewFromInt(1000), order.TotalAmount)
	})

	t.Run("lines freeze once submitted for review", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		item := addPurchaseItem(t, order, "B001", 100, 10)
		require.NoError(t, order.SubmitForReview())

		_, err := order.AddItem(uuid.New(), "p", uuid.New(), "c", "B002", decimal.NewFromInt(1), decimal.NewFromInt(1), 0)
		assert.Error(t, err)
		assert.Error(t, order.UpdateItem(item.ID, decimal.NewFromInt(1), decimal.NewFromInt(1), 0))
		assert.Error(t, order.RemoveItem(item.ID))
		assert.False(t, order.CanDelete())
	})

	t.Run("cannot modify after stock-in", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		item := addPurchaseItem(t, order, "B001", 100, 10)
		require.NoError(t, order.SubmitForReview())
		require.NoError(t, order.Approve())
		require.NoError(t, order.MarkStockedIn())

		_, err := order.AddItem(uuid.New(), "p", uuid.New(), "c", "B002", decimal.NewFromInt(1), decimal.NewFromInt(1), 0)
		assert.Error(t, err)
		assert.Error(t, order.UpdateItem(item.ID, decimal.NewFromInt(1), decimal.NewFromInt(1), 0))
		assert.Error(t, order.RemoveItem(item.ID))
	})
}

func TestPurchaseOrder_Lifecycle(t *testing.T) {
	t.Run("full path to stocked in", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addPurchaseItem(t, order, "B001", 100, 10)

		require.NoError(t, order.SubmitForReview())
		assert.Equal(t, PurchaseOrderStatusPendingReview, order.Status)

		require.NoError(t, order.Approve())
		assert.Equal(t, PurchaseOrderStatusReviewed, order.Status)

		require.NoError(t, order.MarkStockedIn())
		assert.Equal(t, PurchaseOrderStatusStockedIn, order.Status)
		assert.NotNil(t, order.StockedInAt)
	})

	t.Run("cannot submit without items", func(t *testing.T) {
		order := createTestPurchaseOrder(t)

		assert.Error(t, order.SubmitForReview())
	})

	t.Run("stock-in fires only once", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addPurchaseItem(t, order, "B001", 100, 10)
		require.NoError(t, order.SubmitForReview())
		require.NoError(t, order.Approve())
		require.NoError(t, order.MarkStockedIn())
		order.ClearDomainEvents()

		err := order.MarkStockedIn()

		require.Error(t, err)
		assert.Empty(t, order.GetDomainEvents())
	})

	t.Run("cannot skip review", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addPurchaseItem(t, order, "B001", 100, 10)

		assert.Error(t, order.MarkStockedIn())
		assert.Error(t, order.Approve())
	})

	t.Run("stock-in emits event with unpaid balance", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addPurchaseItem(t, order, "B001", 100, 10)
		require.NoError(t, order.RecordPayment(decimal.NewFromInt(400)))
		require.NoError(t, order.SubmitForReview())
		require.NoError(t, order.Approve())
		order.ClearDomainEvents()

		require.NoError(t, order.MarkStockedIn())

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*PurchaseOrderStockedInEvent)
		require.True(t, ok)
		assert.Equal(t, decimal.NewFromInt(600), evt.UnpaidAmount)
	})
}

func TestPurchaseOrder_Void(t *testing.T) {
	t.Run("voidable before stock-in", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addPurchaseItem(t, order, "B001", 100, 10)
		require.NoError(t, order.SubmitForReview())

		err := order.Void("supplier out of stock")

		require.NoError(t, err)
		assert.Equal(t, PurchaseOrderStatusVoid, order.Status)
		assert.Equal(t, "supplier out of stock", order.VoidReason)
	})

	t.Run("not voidable after stock-in", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addPurchaseItem(t, order, "B001", 100, 10)
		require.NoError(t, order.SubmitForReview())
		require.NoError(t, order.Approve())
		require.NoError(t, order.MarkStockedIn())

		assert.Error(t, order.Void("too late"))
	})

	t.Run("requires a reason", func(t *testing.T) {
		order := createTestPurchaseOrder(t)

		assert.Error(t, order.Void(""))
	})
}

func TestPurchaseOrder_RecordPayment(t *testing.T) {
	order := createTestPurchaseOrder(t)
	addPurchaseItem(t, order, "B001", 100, 10)

	require.NoError(t, order.RecordPayment(decimal.NewFromInt(300)))
	assert.Equal(t, decimal.NewFromInt(700), order.UnpaidAmount)

	require.NoError(t, order.RecordPayment(decimal.NewFromInt(700)))
	assert.True(t, order.UnpaidAmount.IsZero())

	assert.Error(t, order.RecordPayment(decimal.NewFromInt(1)))
	assert.Error(t, order.RecordPayment(decimal.Zero))
}
