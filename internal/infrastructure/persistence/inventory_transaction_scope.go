package persistence

import (
	"context"

	"gorm.io/gorm"

	appInventory "github.com/yarntrade/backend/internal/application/inventory"
	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/inventory"
)

// GormInventoryTransactionScope implements the inventory TransactionScope
// using a GORM transaction, so adjustment completion and the batch deltas it
// applies commit or roll back together.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appInventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormInventoryTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormInventoryTransactionalRepositories provides transaction-scoped repositories
type gormInventoryTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormInventoryTransactionalRepositories) AdjustmentOrderRepo() inventory.AdjustmentOrderRepository {
	return NewGormAdjustmentOrderRepository(r.tx)
}

func (r *gormInventoryTransactionalRepositories) StockCheckRepo() inventory.StockCheckRepository {
	return NewGormStockCheckRepository(r.tx)
}

func (r *gormInventoryTransactionalRepositories) BatchRepo() catalog.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

var _ appInventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appInventory.TransactionalRepositories = (*gormInventoryTransactionalRepositories)(nil)
