package persistence

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/shared"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps the in-memory database shared across
	// goroutines and serializes concurrent writes
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&catalog.Product{}, &catalog.Color{}, &catalog.Batch{})
	require.NoError(t, err)

	return db
}

func mustCreateBatch(t *testing.T, repo *GormBatchRepository, colorID uuid.UUID, code string, quantity int64) *catalog.Batch {
	t.Helper()
	batch, err := catalog.NewBatch(colorID, code, decimal.NewFromInt(quantity), catalog.BatchAttributes{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), batch))
	return batch
}

func TestGormBatchRepository_AdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("applies signed deltas", func(t *testing.T) {
		repo := NewGormBatchRepository(setupCatalogTestDB(t))
		batch := mustCreateBatch(t, repo, uuid.New(), "B-001", 10)

		require.NoError(t, repo.AdjustStock(ctx, batch.ID, decimal.NewFromInt(-6)))
		require.NoError(t, repo.AdjustStock(ctx, batch.ID, decimal.NewFromInt(3)))

		found, err := repo.FindByID(ctx, batch.ID)
		require.NoError(t, err)
		assert.True(t, found.StockQuantity.Equal(decimal.NewFromInt(7)),
			"expected stock 7, got %s", found.StockQuantity)
	})

	t.Run("rejects a delta that would drive the balance negative", func(t *testing.T) {
		repo := NewGormBatchRepository(setupCatalogTestDB(t))
		batch := mustCreateBatch(t, repo, uuid.New(), "B-002", 5)

		err := repo.AdjustStock(ctx, batch.ID, decimal.NewFromInt(-6))
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		found, err := repo.FindByID(ctx, batch.ID)
		require.NoError(t, err)
		assert.True(t, found.StockQuantity.Equal(decimal.NewFromInt(5)),
			"balance must be untouched after a rejected delta")
	})

	t.Run("returns not found for an unknown batch", func(t *testing.T) {
		repo := NewGormBatchRepository(setupCatalogTestDB(t))

		err := repo.AdjustStock(ctx, uuid.New(), decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("concurrent decrements never oversell", func(t *testing.T) {
		repo := NewGormBatchRepository(setupCatalogTestDB(t))
		batch := mustCreateBatch(t, repo, uuid.New(), "B-003", 10)

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = repo.AdjustStock(ctx, batch.ID, decimal.NewFromInt(-6))
			}(i)
		}
		wg.Wait()

		failures := 0
		for _, err := range results {
			if err != nil {
				assert.ErrorIs(t, err, shared.ErrInsufficientStock)
				failures++
			}
		}
		assert.Equal(t, 1, failures, "exactly one of two racing decrements must be rejected")

		found, err := repo.FindByID(ctx, batch.ID)
		require.NoError(t, err)
		assert.True(t, found.StockQuantity.Equal(decimal.NewFromInt(4)),
			"expected stock 4 after one successful decrement, got %s", found.StockQuantity)
	})
}

func TestGormBatchRepository_NextDyedBatchSequence(t *testing.T) {
	ctx := context.Background()
	repo := NewGormBatchRepository(setupCatalogTestDB(t))
	colorID := uuid.New()

	t.Run("starts at one with no prior dyed batches", func(t *testing.T) {
		seq, err := repo.NextDyedBatchSequence(ctx, colorID, "GREY-001")
		require.NoError(t, err)
		assert.Equal(t, 1, seq)
	})

	t.Run("continues past the highest existing sequence", func(t *testing.T) {
		mustCreateBatch(t, repo, colorID, "GREY-001-NAVY-1", 100)
		mustCreateBatch(t, repo, colorID, "GREY-001-NAVY-3", 100)

		seq, err := repo.NextDyedBatchSequence(ctx, colorID, "GREY-001")
		require.NoError(t, err)
		assert.Equal(t, 4, seq)
	})

	t.Run("ignores batches of other colors", func(t *testing.T) {
		otherRepo := NewGormBatchRepository(setupCatalogTestDB(t))
		mustCreateBatch(t, otherRepo, uuid.New(), "GREY-001-NAVY-9", 100)

		seq, err := otherRepo.NextDyedBatchSequence(ctx, uuid.New(), "GREY-001")
		require.NoError(t, err)
		assert.Equal(t, 1, seq)
	})
}

func TestGormBatchRepository_SumStockByColor(t *testing.T) {
	ctx := context.Background()
	repo := NewGormBatchRepository(setupCatalogTestDB(t))
	colorID := uuid.New()

	t.Run("returns zero with no batches", func(t *testing.T) {
		total, err := repo.SumStockByColor(ctx, colorID)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("sums balances across batches", func(t *testing.T) {
		mustCreateBatch(t, repo, colorID, "B-100", 10)
		mustCreateBatch(t, repo, colorID, "B-101", 5)
		mustCreateBatch(t, repo, uuid.New(), "B-102", 99)

		total, err := repo.SumStockByColor(ctx, colorID)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(15)), "expected 15, got %s", total)
	})
}

func TestGormBatchRepository_SumStockByProduct(t *testing.T) {
	ctx := context.Background()
	db := setupCatalogTestDB(t)
	repo := NewGormBatchRepository(db)
	colorRepo := NewGormColorRepository(db)
	productID := uuid.New()

	makeColor := func(t *testing.T, pid uuid.UUID, code string) *catalog.Color {
		t.Helper()
		color, err := catalog.NewColor(pid, code, "Navy "+code, "")
		require.NoError(t, err)
		require.NoError(t, colorRepo.Save(ctx, color))
		return color
	}

	t.Run("returns zero with no batches", func(t *testing.T) {
		total, err := repo.SumStockByProduct(ctx, productID)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("counts stock on every colorway of the product", func(t *testing.T) {
		first := makeColor(t, productID, "C-000")
		mustCreateBatch(t, repo, first.ID, "L-000", 50)
		for i := 1; i < 25; i++ {
			makeColor(t, productID, fmt.Sprintf("C-%03d", i))
		}
		last := makeColor(t, productID, "C-025")
		mustCreateBatch(t, repo, last.ID, "L-025", 7)

		other := makeColor(t, uuid.New(), "C-OTHER")
		mustCreateBatch(t, repo, other.ID, "L-OTHER", 99)

		total, err := repo.SumStockByProduct(ctx, productID)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(57)), "expected 57, got %s", total)
	})
}

func TestGormBatchRepository_FindWithStock(t *testing.T) {
	ctx := context.Background()
	repo := NewGormBatchRepository(setupCatalogTestDB(t))
	colorID := uuid.New()

	full := mustCreateBatch(t, repo, colorID, "B-200", 10)
	empty := mustCreateBatch(t, repo, colorID, "B-201", 3)
	require.NoError(t, repo.AdjustStock(ctx, empty.ID, decimal.NewFromInt(-3)))

	batches, err := repo.FindWithStock(ctx, colorID)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, full.ID, batches[0].ID)
}

func TestGormBatchRepository_FindByColor_Search(t *testing.T) {
	ctx := context.Background()
	repo := NewGormBatchRepository(setupCatalogTestDB(t))
	colorID := uuid.New()

	match := mustCreateBatch(t, repo, colorID, "LOT-Alpha", 10)
	mustCreateBatch(t, repo, colorID, "LOT-BETA", 5)

	filter := shared.DefaultFilter()
	filter.Search = "lot-a"

	batches, err := repo.FindByColor(ctx, colorID, filter)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, match.ID, batches[0].ID)
}
