package trade

import (
	"context"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories an
// order fulfillment touches. When a function is executed within a scope,
// all repository operations share one database transaction and commit or
// roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the trade and catalog
// repositories within a transaction. Order fulfillment crosses aggregate
// boundaries on purpose: the order status transition and the batch ledger
// writes it implies must land together or not at all.
type TransactionalRepositories interface {
	// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction
	PurchaseOrderRepo() trade.PurchaseOrderRepository
	// SalesOrderRepo returns the sales order repository scoped to the current transaction
	SalesOrderRepo() trade.SalesOrderRepository
	// DyeingOrderRepo returns the dyeing order repository scoped to the current transaction
	DyeingOrderRepo() trade.DyeingOrderRepository
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() catalog.BatchRepository
	// ColorRepo returns the color repository scoped to the current transaction
	ColorRepo() catalog.ColorRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	purchaseOrderRepo trade.PurchaseOrderRepository
	salesOrderRepo    trade.SalesOrderRepository
	dyeingOrderRepo   trade.DyeingOrderRepository
	batchRepo         catalog.BatchRepository
	colorRepo         catalog.ColorRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	purchaseOrderRepo trade.PurchaseOrderRepository,
	salesOrderRepo trade.SalesOrderRepository,
	dyeingOrderRepo trade.DyeingOrderRepository,
	batchRepo catalog.BatchRepository,
	colorRepo catalog.ColorRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		purchaseOrderRepo: purchaseOrderRepo,
		salesOrderRepo:    salesOrderRepo,
		dyeingOrderRepo:   dyeingOrderRepo,
		batchRepo:         batchRepo,
		colorRepo:         colorRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PurchaseOrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return s.purchaseOrderRepo
}

// SalesOrderRepo returns the sales order repository.
func (s *NoOpTransactionScope) SalesOrderRepo() trade.SalesOrderRepository {
	return s.salesOrderRepo
}

// DyeingOrderRepo returns the dyeing order repository.
func (s *NoOpTransactionScope) DyeingOrderRepo() trade.DyeingOrderRepository {
	return s.dyeingOrderRepo
}

// BatchRepo returns the batch repository.
func (s *NoOpTransactionScope) BatchRepo() catalog.BatchRepository {
	return s.batchRepo
}

// ColorRepo returns the color repository.
func (s *NoOpTransactionScope) ColorRepo() catalog.ColorRepository {
	return s.colorRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
