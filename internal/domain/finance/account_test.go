package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccountReceivable(t *testing.T) {
	t.Run("creates outstanding account", func(t *testing.T) {
		ar, err := NewAccountReceivable(uuid.New(), "XS20240601001", uuid.New(), "Ruixing Garments",
			decimal.NewFromInt(1400), decimal.NewFromInt(400))

		require.NoError(t, err)
		assert.Equal(t, AccountStatusOutstanding, ar.Status)
		assert.Equal(t, decimal.NewFromInt(1000), ar.UnpaidAmount)
	})

	t.Run("fully paid at creation settles immediately", func(t *testing.T) {
		ar, err := NewAccountReceivable(uuid.New(), "XS20240601001", uuid.New(), "Ruixing Garments",
			decimal.NewFromInt(1400), decimal.NewFromInt(1400))

		require.NoError(t, err)
		assert.True(t, ar.IsSettled())
		assert.NotNil(t, ar.SettledAt)
	})

	t.Run("rejects paid above principal", func(t *testing.T) {
		_, err := NewAccountReceivable(uuid.New(), "XS20240601001", uuid.New(), "Ruixing Garments",
			decimal.NewFromInt(100), decimal.NewFromInt(200))

		require.Error(t, err)
	})

	t.Run("rejects non-positive principal", func(t *testing.T) {
		_, err := NewAccountReceivable(uuid.New(), "XS20240601001", uuid.New(), "Ruixing Garments",
			decimal.Zero, decimal.Zero)

		require.Error(t, err)
	})
}

func TestAccountReceivable_RecordReceipt(t *testing.T) {
	newAR := func(t *testing.T) *AccountReceivable {
		t.Helper()
		ar, err := NewAccountReceivable(uuid.New(), "XS20240601001", uuid.New(), "Ruixing Garments",
			decimal.NewFromInt(1000), decimal.Zero)
		require.NoError(t, err)
		return ar
	}

	t.Run("partial receipt stays outstanding", func(t *testing.T) {
		ar := newAR(t)

		record, err := ar.RecordReceipt(decimal.NewFromInt(300), "bank transfer", "")

		require.NoError(t, err)
		assert.Equal(t, decimal.NewFromInt(300), record.Amount)
		assert.Equal(t, decimal.NewFromInt(700), ar.UnpaidAmount)
		assert.False(t, ar.IsSettled())
		assert.Len(t, ar.Records, 1)
	})

	t.Run("final receipt flips to settled and emits event", func(t *testing.T) {
		ar := newAR(t)
		_, err := ar.RecordReceipt(decimal.NewFromInt(300), "", "")
		require.NoError(t, err)

		_, err = ar.RecordReceipt(decimal.NewFromInt(700), "", "")

		require.NoError(t, err)
		assert.True(t, ar.IsSettled())
		events := ar.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeAccountReceivableSettled, events[0].EventType())
	})

	t.Run("rejects receipt above the unpaid balance", func(t *testing.T) {
		ar := newAR(t)

		_, err := ar.RecordReceipt(decimal.NewFromInt(1001), "", "")

		require.Error(t, err)
	})

	t.Run("settled account refuses further receipts", func(t *testing.T) {
		ar := newAR(t)
		_, err := ar.RecordReceipt(decimal.NewFromInt(1000), "", "")
		require.NoError(t, err)

		_, err = ar.RecordReceipt(decimal.NewFromInt(1), "", "")
		require.Error(t, err)
	})
}

func TestAccountPayable_RecordPayment(t *testing.T) {
	ap, err := NewAccountPayable(uuid.New(), "CG20240601001", uuid.New(), "Hengfeng Mills",
		decimal.NewFromInt(2000), decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, decimal.NewFromInt(1500), ap.UnpaidAmount)

	_, err = ap.RecordPayment(decimal.NewFromInt(1500), "bank transfer", "final settlement")
	require.NoError(t, err)

	assert.True(t, ap.IsSettled())
	assert.True(t, ap.UnpaidAmount.IsZero())
	events := ap.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeAccountPayableSettled, events[0].EventType())
}
