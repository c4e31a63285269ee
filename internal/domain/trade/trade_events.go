package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypePurchaseOrder = "PurchaseOrder"
	AggregateTypeSalesOrder    = "SalesOrder"
	AggregateTypeDyeingOrder   = "DyeingOrder"
)

// Event type constants
const (
	EventTypePurchaseOrderCreated   = "PurchaseOrderCreated"
	EventTypePurchaseOrderStockedIn = "PurchaseOrderStockedIn"
	EventTypePurchaseOrderVoided    = "PurchaseOrderVoided"
	EventTypeSalesOrderCreated      = "SalesOrderCreated"
	EventTypeSalesOrderStockedOut   = "SalesOrderStockedOut"
	EventTypeSalesOrderVoided       = "SalesOrderVoided"
	EventTypeDyeingOrderCreated     = "DyeingOrderCreated"
	EventTypeDyeingOrderCompleted   = "DyeingOrderCompleted"
	EventTypeDyeingOrderStockedIn   = "DyeingOrderStockedIn"
)

// PurchaseOrderCreatedEvent is raised when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	SupplierID  uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(o *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		SupplierID:      o.SupplierID,
	}
}

// PurchaseOrderStockedInEvent is raised when the order's batches enter stock.
// The finance layer subscribes to it to raise a payable for any unpaid balance.
type PurchaseOrderStockedInEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	UnpaidAmount decimal.Decimal `json:"unpaid_amount"`
}

// NewPurchaseOrderStockedInEvent creates a new PurchaseOrderStockedInEvent
func NewPurchaseOrderStockedInEvent(o *PurchaseOrder) *PurchaseOrderStockedInEvent {
	return &PurchaseOrderStockedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderStockedIn, AggregateTypePurchaseOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		SupplierID:      o.SupplierID,
		SupplierName:    o.SupplierName,
		TotalAmount:     o.TotalAmount,
		PaidAmount:      o.PaidAmount,
		UnpaidAmount:    o.UnpaidAmount,
	}
}

// PurchaseOrderVoidedEvent is raised when a purchase order is voided
type PurchaseOrderVoidedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason"`
}

// NewPurchaseOrderVoidedEvent creates a new PurchaseOrderVoidedEvent
func NewPurchaseOrderVoidedEvent(o *PurchaseOrder, reason string) *PurchaseOrderVoidedEvent {
	return &PurchaseOrderVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderVoided, AggregateTypePurchaseOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		Reason:          reason,
	}
}

// SalesOrderCreatedEvent is raised when a sales order is created
type SalesOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
}

// NewSalesOrderCreatedEvent creates a new SalesOrderCreatedEvent
func NewSalesOrderCreatedEvent(o *SalesOrder) *SalesOrderCreatedEvent {
	return &SalesOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCreated, AggregateTypeSalesOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
	}
}

// SalesOrderStockedOutEvent is raised when the order's batches have been
// decreased. The finance layer subscribes to it to raise a receivable for
// any unreceived balance.
type SalesOrderStockedOutEvent struct {
	shared.BaseDomainEvent
	OrderID          uuid.UUID       `json:"order_id"`
	OrderNumber      string          `json:"order_number"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	ReceivedAmount   decimal.Decimal `json:"received_amount"`
	UnreceivedAmount decimal.Decimal `json:"unreceived_amount"`
}

// NewSalesOrderStockedOutEvent creates a new SalesOrderStockedOutEvent
func NewSalesOrderStockedOutEvent(o *SalesOrder) *SalesOrderStockedOutEvent {
	return &SalesOrderStockedOutEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeSalesOrderStockedOut, AggregateTypeSalesOrder, o.ID),
		OrderID:          o.ID,
		OrderNumber:      o.OrderNumber,
		CustomerID:       o.CustomerID,
		CustomerName:     o.CustomerName,
		TotalAmount:      o.TotalAmount,
		ReceivedAmount:   o.ReceivedAmount,
		UnreceivedAmount: o.UnreceivedAmount,
	}
}

// SalesOrderVoidedEvent is raised when a sales order is voided
type SalesOrderVoidedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason"`
}

// NewSalesOrderVoidedEvent creates a new SalesOrderVoidedEvent
func NewSalesOrderVoidedEvent(o *SalesOrder, reason string) *SalesOrderVoidedEvent {
	return &SalesOrderVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderVoided, AggregateTypeSalesOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		Reason:          reason,
	}
}

// DyeingOrderCreatedEvent is raised when a dyeing order is created
type DyeingOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	GreyBatchID uuid.UUID `json:"grey_batch_id"`
	FactoryID   uuid.UUID `json:"factory_id"`
}

// NewDyeingOrderCreatedEvent creates a new DyeingOrderCreatedEvent
func NewDyeingOrderCreatedEvent(o *DyeingOrder) *DyeingOrderCreatedEvent {
	return &DyeingOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDyeingOrderCreated, AggregateTypeDyeingOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		GreyBatchID:     o.GreyBatchID,
		FactoryID:       o.FactoryID,
	}
}

// DyeingOrderCompletedEvent is raised when the factory finishes processing
type DyeingOrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewDyeingOrderCompletedEvent creates a new DyeingOrderCompletedEvent
func NewDyeingOrderCompletedEvent(o *DyeingOrder) *DyeingOrderCompletedEvent {
	return &DyeingOrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDyeingOrderCompleted, AggregateTypeDyeingOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		TotalAmount:     o.TotalAmount,
	}
}

// DyeingOrderStockedInEvent is raised when the dyed batches enter stock
type DyeingOrderStockedInEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	FactoryID     uuid.UUID       `json:"factory_id"`
	FactoryName   string          `json:"factory_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// NewDyeingOrderStockedInEvent creates a new DyeingOrderStockedInEvent
func NewDyeingOrderStockedInEvent(o *DyeingOrder) *DyeingOrderStockedInEvent {
	return &DyeingOrderStockedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDyeingOrderStockedIn, AggregateTypeDyeingOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		FactoryID:       o.FactoryID,
		FactoryName:     o.FactoryName,
		TotalAmount:     o.TotalAmount,
		TotalQuantity:   o.TotalQuantity,
	}
}
