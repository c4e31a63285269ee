package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSalesOrder(t *testing.T) *SalesOrder {
	t.Helper()
	order, err := NewSalesOrder("XS20240601001", uuid.New(), "Ruixing Garments", time.Now())
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestNewSalesOrder(t *testing.T) {
	t.Run("creates draft order", func(t *testing.T) {
		order, err := NewSalesOrder("XS20240601001", uuid.New(), "Ruixing Garments", time.Now())

		require.NoError(t, err)
		assert.Equal(t, SalesOrderStatusDraft, order.Status)
		assert.True(t, order.TotalAmount.IsZero())
	})

	t.Run("fails with nil customer", func(t *testing.T) {
		order, err := NewSalesOrder("XS20240601001", uuid.Nil, "Ruixing Garments", time.Now())

		require.Error(t, err)
		assert.Nil(t, order)
	})
}

func TestSalesOrder_AddItem(t *testing.T) {
	t.Run("adds line and recalculates totals", func(t *testing.T) {
		order := createTestSalesOrder(t)

		_, err := order.AddItem(uuid.New(), "Combed Cotton 32s", "Navy", "B001",
			decimal.NewFromInt(40), decimal.NewFromInt(35), 0)

		require.NoError(t, err)
		assert.Equal(t, decimal.NewFromInt(1400), order.TotalAmount)
		assert.Equal(t, decimal.NewFromInt(1400), order.UnreceivedAmount)
	})

	t.Run("merges duplicate batch lines by summing quantities", func(t *testing.T) {
		order := createTestSalesOrder(t)
		batchID := uuid.New()

		_, err := order.AddItem(batchID, "Combed Cotton 32s", "Navy", "B001",
			decimal.NewFromInt(40), decimal.NewFromInt(35), 2)
		require.NoError(t, err)

		merged, err := order.AddItem(batchID, "Combed Cotton 32s", "Navy", "B001",
			decimal.NewFromInt(10), decimal.NewFromInt(35), 1)
		require.NoError(t, err)

		assert.Equal(t, 1, order.ItemCount())
		assert.Equal(t, decimal.NewFromInt(50), merged.Quantity)
		assert.Equal(t, 3, merged.PieceCount)
		assert.Equal(t, decimal.NewFromInt(1750), order.TotalAmount)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order := createTestSalesOrder(t)

		_, err := order.AddItem(uuid.New(), "p", "c", "B001", decimal.Zero, decimal.NewFromInt(35), 0)

		require.Error(t, err)
	})

	t.Run("lines freeze once submitted for review", func(t *testing.T) {
		order := createTestSalesOrder(t)
		item, err := order.AddItem(uuid.New(), "p", "c", "B001", decimal.NewFromInt(40), decimal.NewFromInt(35), 0)
		require.NoError(t, err)
		require.NoError(t, order.SubmitForReview())

		_, err = order.AddItem(uuid.New(), "p", "c", "B002", decimal.NewFromInt(10), decimal.NewFromInt(35), 0)
		assert.Error(t, err)
		assert.Error(t, order.UpdateItem(item.ID, decimal.NewFromInt(1), decimal.NewFromInt(35), 0))
		assert.Error(t, order.RemoveItem(item.ID))
		assert.False(t, order.CanDelete())
	})
}

func TestSalesOrder_Lifecycle(t *testing.T) {
	t.Run("full path to stocked out", func(t *testing.T) {
		order := createTestSalesOrder(t)
		_, err := order.AddItem(uuid.New(), "p", "c", "B001", decimal.NewFromInt(40), decimal.NewFromInt(35), 0)
		require.NoError(t, err)

		require.NoError(t, order.SubmitForReview())
		require.NoError(t, order.Approve())
		require.NoError(t, order.MarkStockedOut())

		assert.Equal(t, SalesOrderStatusStockedOut, order.Status)
		assert.NotNil(t, order.StockedOutAt)
	})

	t.Run("stock-out fires only once", func(t *testing.T) {
		order := createTestSalesOrder(t)
		_, err := order.AddItem(uuid.New(), "p", "c", "B001", decimal.NewFromInt(40), decimal.NewFromInt(35), 0)
		require.NoError(t, err)
		require.NoError(t, order.SubmitForReview())
		require.NoError(t, order.Approve())
		require.NoError(t, order.MarkStockedOut())
		order.ClearDomainEvents()

		require.Error(t, order.MarkStockedOut())
		assert.Empty(t, order.GetDomainEvents())
	})

	t.Run("voidable until stocked out", func(t *testing.T) {
		order := createTestSalesOrder(t)
		_, err := order.AddItem(uuid.New(), "p", "c", "B001", decimal.NewFromInt(40), decimal.NewFromInt(35), 0)
		require.NoError(t, err)
		require.NoError(t, order.SubmitForReview())
		require.NoError(t, order.Approve())

		require.NoError(t, order.Void("customer backed out"))
		assert.Equal(t, SalesOrderStatusVoid, order.Status)
	})

	t.Run("not voidable after stock-out", func(t *testing.T) {
		order := createTestSalesOrder(t)
		_, err := order.AddItem(uuid.New(), "p", "c", "B001", decimal.NewFromInt(40), decimal.NewFromInt(35), 0)
		require.NoError(t, err)
		require.NoError(t, order.SubmitForReview())
		require.NoError(t, order.Approve())
		require.NoError(t, order.MarkStockedOut())

		assert.Error(t, order.Void("too late"))
	})
}

func TestSalesOrder_RecordReceipt(t *testing.T) {
	order := createTestSalesOrder(t)
	_, err := order.AddItem(uuid.New(), "p", "c", "B001", decimal.NewFromInt(40), decimal.NewFromInt(35), 0)
	require.NoError(t, err)

	require.NoError(t, order.RecordReceipt(decimal.NewFromInt(1000)))
	assert.Equal(t, decimal.NewFromInt(400), order.UnreceivedAmount)

	assert.Error(t, order.RecordReceipt(decimal.NewFromInt(500)))
}
