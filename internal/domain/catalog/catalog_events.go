package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeProduct = "Product"
	AggregateTypeColor   = "Color"
	AggregateTypeBatch   = "Batch"
)

// Event type constants
const (
	EventTypeProductCreated      = "ProductCreated"
	EventTypeColorCreated        = "ColorCreated"
	EventTypeBatchCreated        = "BatchCreated"
	EventTypeBatchStockIncreased = "BatchStockIncreased"
	EventTypeBatchStockDecreased = "BatchStockDecreased"
	EventTypeBatchStockSet       = "BatchStockSet"
)

// ProductCreatedEvent is raised when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	IsWhiteYarn bool      `json:"is_white_yarn"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Code:            p.Code,
		Name:            p.Name,
		IsWhiteYarn:     p.IsWhiteYarn,
	}
}

// ColorCreatedEvent is raised when a colorway is created
type ColorCreatedEvent struct {
	shared.BaseDomainEvent
	ColorID   uuid.UUID `json:"color_id"`
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
}

// NewColorCreatedEvent creates a new ColorCreatedEvent
func NewColorCreatedEvent(c *Color) *ColorCreatedEvent {
	return &ColorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeColorCreated, AggregateTypeColor, c.ID),
		ColorID:         c.ID,
		ProductID:       c.ProductID,
		Code:            c.Code,
		Name:            c.Name,
	}
}

// BatchCreatedEvent is raised when a new production lot enters stock
type BatchCreatedEvent struct {
	shared.BaseDomainEvent
	BatchID         uuid.UUID       `json:"batch_id"`
	ColorID         uuid.UUID       `json:"color_id"`
	Code            string          `json:"code"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
}

// NewBatchCreatedEvent creates a new BatchCreatedEvent
func NewBatchCreatedEvent(b *Batch) *BatchCreatedEvent {
	return &BatchCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchCreated, AggregateTypeBatch, b.ID),
		BatchID:         b.ID,
		ColorID:         b.ColorID,
		Code:            b.Code,
		InitialQuantity: b.InitialQuantity,
	}
}

// BatchStockIncreasedEvent is raised when batch stock goes up
type BatchStockIncreasedEvent struct {
	shared.BaseDomainEvent
	BatchID  uuid.UUID       `json:"batch_id"`
	ColorID  uuid.UUID       `json:"color_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Balance  decimal.Decimal `json:"balance"`
}

// NewBatchStockIncreasedEvent creates a new BatchStockIncreasedEvent
func NewBatchStockIncreasedEvent(b *Batch, quantity decimal.Decimal) *BatchStockIncreasedEvent {
	return &BatchStockIncreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchStockIncreased, AggregateTypeBatch, b.ID),
		BatchID:         b.ID,
		ColorID:         b.ColorID,
		Quantity:        quantity,
		Balance:         b.StockQuantity,
	}
}

// BatchStockDecreasedEvent is raised when batch stock goes down
type BatchStockDecreasedEvent struct {
	shared.BaseDomainEvent
	BatchID  uuid.UUID       `json:"batch_id"`
	ColorID  uuid.UUID       `json:"color_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Balance  decimal.Decimal `json:"balance"`
}

// NewBatchStockDecreasedEvent creates a new BatchStockDecreasedEvent
func NewBatchStockDecreasedEvent(b *Batch, quantity decimal.Decimal) *BatchStockDecreasedEvent {
	return &BatchStockDecreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchStockDecreased, AggregateTypeBatch, b.ID),
		BatchID:         b.ID,
		ColorID:         b.ColorID,
		Quantity:        quantity,
		Balance:         b.StockQuantity,
	}
}

// BatchStockSetEvent is raised when batch stock is overridden to an absolute value
type BatchStockSetEvent struct {
	shared.BaseDomainEvent
	BatchID     uuid.UUID       `json:"batch_id"`
	ColorID     uuid.UUID       `json:"color_id"`
	OldQuantity decimal.Decimal `json:"old_quantity"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// NewBatchStockSetEvent creates a new BatchStockSetEvent
func NewBatchStockSetEvent(b *Batch, oldQty, newQty decimal.Decimal) *BatchStockSetEvent {
	return &BatchStockSetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchStockSet, AggregateTypeBatch, b.ID),
		BatchID:         b.ID,
		ColorID:         b.ColorID,
		OldQuantity:     oldQty,
		NewQuantity:     newQty,
	}
}
