package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// AdjustmentOrderRepository defines the interface for adjustment order persistence
type AdjustmentOrderRepository interface {
	// FindByID finds an adjustment order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*AdjustmentOrder, error)

	// FindByOrderNumber finds an adjustment order by its number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*AdjustmentOrder, error)

	// FindAll finds adjustment orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]AdjustmentOrder, error)

	// FindByStatus finds adjustment orders in a status
	FindByStatus(ctx context.Context, status AdjustmentOrderStatus, filter shared.Filter) ([]AdjustmentOrder, error)

	// FindBySourceCheck finds adjustment orders generated from a stock check
	FindBySourceCheck(ctx context.Context, checkID uuid.UUID) ([]AdjustmentOrder, error)

	// Save creates or updates an adjustment order with its items
	Save(ctx context.Context, order *AdjustmentOrder) error

	// Delete deletes an adjustment order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts adjustment orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateOrderNumber generates the next TZ-prefixed per-day order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// StockCheckRepository defines the interface for stock check persistence
type StockCheckRepository interface {
	// FindByID finds a stock check with its items
	FindByID(ctx context.Context, id uuid.UUID) (*StockCheck, error)

	// FindByOrderNumber finds a stock check by its number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*StockCheck, error)

	// FindAll finds stock checks matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockCheck, error)

	// FindByStatus finds stock checks in a status
	FindByStatus(ctx context.Context, status StockCheckStatus, filter shared.Filter) ([]StockCheck, error)

	// Save creates or updates a stock check with its items
	Save(ctx context.Context, check *StockCheck) error

	// Delete deletes a stock check and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts stock checks matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateOrderNumber generates the next PD-prefixed per-day order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}
