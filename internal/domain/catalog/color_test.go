package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColor(t *testing.T) {
	productID := uuid.New()

	t.Run("creates color on sale", func(t *testing.T) {
		color, err := NewColor(productID, "C-01", "Navy", "#1A2B5C")

		require.NoError(t, err)
		assert.Equal(t, productID, color.ProductID)
		assert.Equal(t, "C-01", color.Code)
		assert.Equal(t, ColorStatusOnSale, color.Status)
		assert.True(t, color.IsOnSale())
	})

	t.Run("fails with nil product ID", func(t *testing.T) {
		color, err := NewColor(uuid.Nil, "C-01", "Navy", "")

		require.Error(t, err)
		assert.Nil(t, color)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		color, err := NewColor(productID, "C-01", "", "")

		require.Error(t, err)
		assert.Nil(t, color)
	})
}

func TestColor_StatusTransitions(t *testing.T) {
	t.Run("discontinue and reinstate", func(t *testing.T) {
		color, err := NewColor(uuid.New(), "C-01", "Navy", "")
		require.NoError(t, err)

		require.NoError(t, color.Discontinue())
		assert.Equal(t, ColorStatusDiscontinued, color.Status)
		assert.False(t, color.IsOnSale())

		require.NoError(t, color.Reinstate())
		assert.True(t, color.IsOnSale())
	})

	t.Run("discontinuing twice fails", func(t *testing.T) {
		color, err := NewColor(uuid.New(), "C-01", "Navy", "")
		require.NoError(t, err)
		require.NoError(t, color.Discontinue())

		assert.Error(t, color.Discontinue())
	})

	t.Run("reinstating an on-sale color fails", func(t *testing.T) {
		color, err := NewColor(uuid.New(), "C-01", "Navy", "")
		require.NoError(t, err)

		assert.Error(t, color.Reinstate())
	})
}
