package persistence

import (
	"context"

	"gorm.io/gorm"

	appTrade "github.com/yarntrade/backend/internal/application/trade"
	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/trade"
)

// GormTradeTransactionScope implements the trade TransactionScope using a
// GORM transaction. All repositories handed to the callback share the same
// transaction, so the order status flip and the batch mutations it triggers
// commit or roll back together.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos appTrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTradeTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTradeTransactionalRepositories provides transaction-scoped repositories
type gormTradeTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTradeTransactionalRepositories) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormTradeTransactionalRepositories) SalesOrderRepo() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

func (r *gormTradeTransactionalRepositories) DyeingOrderRepo() trade.DyeingOrderRepository {
	return NewGormDyeingOrderRepository(r.tx)
}

func (r *gormTradeTransactionalRepositories) BatchRepo() catalog.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

func (r *gormTradeTransactionalRepositories) ColorRepo() catalog.ColorRepository {
	return NewGormColorRepository(r.tx)
}

var _ appTrade.TransactionScope = (*GormTradeTransactionScope)(nil)
var _ appTrade.TransactionalRepositories = (*gormTradeTransactionalRepositories)(nil)
