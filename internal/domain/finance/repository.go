package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// AccountReceivableRepository defines the interface for receivable persistence
type AccountReceivableRepository interface {
	// FindByID finds a receivable with its receipt records
	FindByID(ctx context.Context, id uuid.UUID) (*AccountReceivable, error)

	// FindBySourceOrder finds the receivable raised for an order
	FindBySourceOrder(ctx context.Context, orderID uuid.UUID) (*AccountReceivable, error)

	// FindByCustomer finds receivables for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]AccountReceivable, error)

	// FindOutstanding finds receivables not yet settled
	FindOutstanding(ctx context.Context, filter shared.Filter) ([]AccountReceivable, error)

	// FindAll finds receivables matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]AccountReceivable, error)

	// Save creates or updates a receivable with its records
	Save(ctx context.Context, ar *AccountReceivable) error

	// Count counts receivables matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumOutstandingByCustomer sums the unpaid balance across a customer's accounts
	SumOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}

// AccountPayableRepository defines the interface for payable persistence
type AccountPayableRepository interface {
	// FindByID finds a payable with its payment records
	FindByID(ctx context.Context, id uuid.UUID) (*AccountPayable, error)

	// FindBySourceOrder finds the payable raised for an order
	FindBySourceOrder(ctx context.Context, orderID uuid.UUID) (*AccountPayable, error)

	// FindBySupplier finds payables for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]AccountPayable, error)

	// FindOutstanding finds payables not yet settled
	FindOutstanding(ctx context.Context, filter shared.Filter) ([]AccountPayable, error)

	// FindAll finds payables matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]AccountPayable, error)

	// Save creates or updates a payable with its records
	Save(ctx context.Context, ap *AccountPayable) error

	// Count counts payables matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumOutstandingBySupplier sums the unpaid balance across a supplier's accounts
	SumOutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error)
}
