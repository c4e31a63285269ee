package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its unique code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByType finds all products of a given type
	FindByType(ctx context.Context, productType ProductType, filter shared.Filter) ([]Product, error)

	// FindWhiteYarns finds all products flagged as white yarn
	FindWhiteYarns(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a product code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// ColorRepository defines the interface for colorway persistence
type ColorRepository interface {
	// FindByID finds a color by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Color, error)

	// FindByProductAndCode finds a color by its code within a product
	FindByProductAndCode(ctx context.Context, productID uuid.UUID, code string) (*Color, error)

	// FindByProduct finds all colors of a product
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Color, error)

	// FindOnSaleByProduct finds colors of a product that are on sale
	FindOnSaleByProduct(ctx context.Context, productID uuid.UUID) ([]Color, error)

	// Save creates or updates a color
	Save(ctx context.Context, color *Color) error

	// Delete deletes a color
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByProduct counts colors of a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// ExistsByProductAndCode checks if a color code exists within a product
	ExistsByProductAndCode(ctx context.Context, productID uuid.UUID, code string) (bool, error)
}

// BatchRepository defines the interface for batch persistence.
//
// Stock on a batch is mutated two ways and they must not be mixed:
//   - AdjustStock applies a relative delta as a single conditional UPDATE
//     so concurrent order completions serialize at the database. This is
//     the only path order fulfillment may use.
//   - Save persists the whole aggregate and is reserved for attribute
//     edits and for absolute overrides coming out of an inventory check,
//     where the caller already holds the row inside a transaction.
type BatchRepository interface {
	// FindByID finds a batch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)

	// FindByColorAndCode finds a batch by its code within a color
	FindByColorAndCode(ctx context.Context, colorID uuid.UUID, code string) (*Batch, error)

	// FindByColor finds all batches of a color
	FindByColor(ctx context.Context, colorID uuid.UUID, filter shared.Filter) ([]Batch, error)

	// FindByIDs finds multiple batches by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Batch, error)

	// FindWithStock finds batches of a color that still hold stock
	FindWithStock(ctx context.Context, colorID uuid.UUID) ([]Batch, error)

	// Save creates or updates a batch
	Save(ctx context.Context, batch *Batch) error

	// Delete deletes a batch
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustStock applies a signed delta to a batch balance atomically.
	// The update is conditional on the resulting balance staying
	// non-negative; a delta that would drive it below zero returns
	// shared.ErrInsufficientStock and leaves the row untouched.
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// SumStockByColor sums the live balance across all batches of a color
	SumStockByColor(ctx context.Context, colorID uuid.UUID) (decimal.Decimal, error)

	// SumStockByProduct sums the live balance across every batch of
	// every colorway under a product
	SumStockByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)

	// CountByColor counts batches of a color
	CountByColor(ctx context.Context, colorID uuid.UUID) (int64, error)

	// ExistsByColorAndCode checks if a batch code exists within a color
	ExistsByColorAndCode(ctx context.Context, colorID uuid.UUID, code string) (bool, error)

	// NextDyedBatchSequence returns the next sequence number for dyed
	// batch codes derived from the given source batch code prefix.
	NextDyedBatchSequence(ctx context.Context, colorID uuid.UUID, prefix string) (int, error)
}

// BatchFilter extends shared.Filter with batch-specific filters
type BatchFilter struct {
	shared.Filter
	ColorID     *uuid.UUID
	HasStock    bool
	SupplierID  *uuid.UUID
	MinQuantity *decimal.Decimal
}
