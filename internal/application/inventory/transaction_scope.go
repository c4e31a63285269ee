package inventory

import (
	"context"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories an
// adjustment completion touches. All repository operations within one
// Execute share a database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory and batch
// repositories within a transaction. Completing an adjustment order
// transitions the order and applies its signed deltas to the batch
// ledger; the two must land together.
type TransactionalRepositories interface {
	// AdjustmentOrderRepo returns the adjustment order repository scoped to the current transaction
	AdjustmentOrderRepo() inventory.AdjustmentOrderRepository
	// StockCheckRepo returns the stock check repository scoped to the current transaction
	StockCheckRepo() inventory.StockCheckRepository
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() catalog.BatchRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	adjustmentOrderRepo inventory.AdjustmentOrderRepository
	stockCheckRepo      inventory.StockCheckRepository
	batchRepo           catalog.BatchRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	adjustmentOrderRepo inventory.AdjustmentOrderRepository,
	stockCheckRepo inventory.StockCheckRepository,
	batchRepo catalog.BatchRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		adjustmentOrderRepo: adjustmentOrderRepo,
		stockCheckRepo:      stockCheckRepo,
		batchRepo:           batchRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AdjustmentOrderRepo returns the adjustment order repository.
func (s *NoOpTransactionScope) AdjustmentOrderRepo() inventory.AdjustmentOrderRepository {
	return s.adjustmentOrderRepo
}

// StockCheckRepo returns the stock check repository.
func (s *NoOpTransactionScope) StockCheckRepo() inventory.StockCheckRepository {
	return s.stockCheckRepo
}

// BatchRepo returns the batch repository.
func (s *NoOpTransactionScope) BatchRepo() catalog.BatchRepository {
	return s.batchRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
