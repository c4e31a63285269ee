package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeAdjustmentOrder = "AdjustmentOrder"
	AggregateTypeStockCheck      = "StockCheck"
)

// Event type constants
const (
	EventTypeAdjustmentOrderCreated   = "AdjustmentOrderCreated"
	EventTypeAdjustmentOrderCompleted = "AdjustmentOrderCompleted"
	EventTypeStockCheckCreated        = "StockCheckCreated"
	EventTypeStockCheckCompleted      = "StockCheckCompleted"
)

// AdjustmentOrderCreatedEvent is raised when an adjustment order is created
type AdjustmentOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID      `json:"order_id"`
	OrderNumber string         `json:"order_number"`
	Type        AdjustmentType `json:"type"`
}

// NewAdjustmentOrderCreatedEvent creates a new AdjustmentOrderCreatedEvent
func NewAdjustmentOrderCreatedEvent(o *AdjustmentOrder) *AdjustmentOrderCreatedEvent {
	return &AdjustmentOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdjustmentOrderCreated, AggregateTypeAdjustmentOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		Type:            o.Type,
	}
}

// AdjustmentOrderCompletedEvent is raised when the order's deltas hit the ledger
type AdjustmentOrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	Type          AdjustmentType  `json:"type"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// NewAdjustmentOrderCompletedEvent creates a new AdjustmentOrderCompletedEvent
func NewAdjustmentOrderCompletedEvent(o *AdjustmentOrder) *AdjustmentOrderCompletedEvent {
	return &AdjustmentOrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdjustmentOrderCompleted, AggregateTypeAdjustmentOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		Type:            o.Type,
		TotalQuantity:   o.TotalQuantity,
	}
}

// StockCheckCreatedEvent is raised when a physical count is planned
type StockCheckCreatedEvent struct {
	shared.BaseDomainEvent
	CheckID     uuid.UUID `json:"check_id"`
	OrderNumber string    `json:"order_number"`
	Name        string    `json:"name"`
}

// NewStockCheckCreatedEvent creates a new StockCheckCreatedEvent
func NewStockCheckCreatedEvent(c *StockCheck) *StockCheckCreatedEvent {
	return &StockCheckCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCheckCreated, AggregateTypeStockCheck, c.ID),
		CheckID:         c.ID,
		OrderNumber:     c.OrderNumber,
		Name:            c.Name,
	}
}

// StockCheckCompletedEvent is raised when a physical count finishes
type StockCheckCompletedEvent struct {
	shared.BaseDomainEvent
	CheckID      uuid.UUID       `json:"check_id"`
	OrderNumber  string          `json:"order_number"`
	SurplusTotal decimal.Decimal `json:"surplus_total"`
	DeficitTotal decimal.Decimal `json:"deficit_total"`
}

// NewStockCheckCompletedEvent creates a new StockCheckCompletedEvent
func NewStockCheckCompletedEvent(c *StockCheck) *StockCheckCompletedEvent {
	return &StockCheckCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCheckCompleted, AggregateTypeStockCheck, c.ID),
		CheckID:         c.ID,
		OrderNumber:     c.OrderNumber,
		SurplusTotal:    c.SurplusTotal,
		DeficitTotal:    c.DeficitTotal,
	}
}
