package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds a purchase order by its number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindAll finds purchase orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByStatus finds purchase orders in a status
	FindByStatus(ctx context.Context, status PurchaseOrderStatus, filter shared.Filter) ([]PurchaseOrder, error)

	// FindBySupplier finds purchase orders for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByDateRange finds purchase orders within a date range
	FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order with its items
	Save(ctx context.Context, order *PurchaseOrder) error

	// Delete deletes a purchase order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts purchase orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateOrderNumber generates the next CG-prefixed per-day order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	// FindByID finds a sales order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindByOrderNumber finds a sales order by its number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)

	// FindAll finds sales orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)

	// FindByStatus finds sales orders in a status
	FindByStatus(ctx context.Context, status SalesOrderStatus, filter shared.Filter) ([]SalesOrder, error)

	// FindByCustomer finds sales orders for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)

	// FindByBatch finds sales orders containing lines for a batch
	FindByBatch(ctx context.Context, batchID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)

	// Save creates or updates a sales order with its items
	Save(ctx context.Context, order *SalesOrder) error

	// Delete deletes a sales order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts sales orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateOrderNumber generates the next XS-prefixed per-day order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// DyeingOrderRepository defines the interface for dyeing order persistence
type DyeingOrderRepository interface {
	// FindByID finds a dyeing order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*DyeingOrder, error)

	// FindByOrderNumber finds a dyeing order by its number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*DyeingOrder, error)

	// FindAll finds dyeing orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]DyeingOrder, error)

	// FindByStatus finds dyeing orders in a status
	FindByStatus(ctx context.Context, status DyeingOrderStatus, filter shared.Filter) ([]DyeingOrder, error)

	// FindByGreyBatch finds dyeing orders consuming a grey batch
	FindByGreyBatch(ctx context.Context, greyBatchID uuid.UUID, filter shared.Filter) ([]DyeingOrder, error)

	// FindByFactory finds dyeing orders placed with a factory
	FindByFactory(ctx context.Context, factoryID uuid.UUID, filter shared.Filter) ([]DyeingOrder, error)

	// Save creates or updates a dyeing order with its items
	Save(ctx context.Context, order *DyeingOrder) error

	// Delete deletes a dyeing order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts dyeing orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateOrderNumber generates the next JG-prefixed per-day order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}
