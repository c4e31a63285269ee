package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// Batch represents a production lot (dye lot) of a colorway. It is the
// ledger's unit of account: StockQuantity is the live balance mutated by
// purchase stock-in, sales stock-out, dyeing output and adjustments, and
// must never be observable below zero. InitialQuantity is a permanent
// audit snapshot taken at creation.
type Batch struct {
	shared.BaseAggregateRoot
	ColorID         uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_batch_color_code,priority:1"`
	Code            string          `gorm:"type:varchar(80);not null;uniqueIndex:idx_batch_color_code,priority:2"`
	ProductionDate  *time.Time      `gorm:"index"`
	SupplierID      *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierName    string          `gorm:"type:varchar(200)"`
	PurchasePrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	InitialQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockLocation   string          `gorm:"type:varchar(100)"`
	Remark          string          `gorm:"type:varchar(500)"`

	// Dual-unit snapshot fields
	PieceCount  int             `gorm:"not null;default:0"`
	LooseWeight decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "batches"
}

// BatchAttributes carries the optional metadata supplied when a batch is created
type BatchAttributes struct {
	ProductionDate *time.Time
	SupplierID     *uuid.UUID
	SupplierName   string
	PurchasePrice  decimal.Decimal
	StockLocation  string
	Remark         string
	PieceCount     int
	LooseWeight    decimal.Decimal
}

// NewBatch creates a new batch with its full initial quantity in stock
func NewBatch(colorID uuid.UUID, code string, initialQuantity decimal.Decimal, attrs BatchAttributes) (*Batch, error) {
	if colorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Batch code cannot be empty")
	}
	if initialQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity cannot be negative")
	}
	if attrs.PurchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}

	batch := &Batch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ColorID:           colorID,
		Code:              code,
		ProductionDate:    attrs.ProductionDate,
		SupplierID:        attrs.SupplierID,
		SupplierName:      attrs.SupplierName,
		PurchasePrice:     attrs.PurchasePrice,
		StockQuantity:     initialQuantity,
		InitialQuantity:   initialQuantity,
		StockLocation:     attrs.StockLocation,
		Remark:            attrs.Remark,
		PieceCount:        attrs.PieceCount,
		LooseWeight:       attrs.LooseWeight,
	}

	batch.AddDomainEvent(NewBatchCreatedEvent(batch))

	return batch, nil
}

// Increase adds stock to the batch (purchase receiving, positive adjustment)
func (b *Batch) Increase(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidAmount
	}

	b.StockQuantity = b.StockQuantity.Add(amount)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchStockIncreasedEvent(b, amount))

	return nil
}

// Decrease removes stock from the batch (sales shipping, negative adjustment).
// A decrease that would drive the balance negative is rejected, never clamped
// or silently skipped.
func (b *Batch) Decrease(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidAmount
	}
	if b.StockQuantity.LessThan(amount) {
		return shared.ErrInsufficientStock
	}

	b.StockQuantity = b.StockQuantity.Sub(amount)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchStockDecreasedEvent(b, amount))

	return nil
}

// SetStock overrides the stock balance to an absolute value (administrative
// correction after a physical count)
func (b *Batch) SetStock(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	old := b.StockQuantity
	b.StockQuantity = quantity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchStockSetEvent(b, old, quantity))

	return nil
}

// CanFulfill returns true if the batch can cover the requested quantity
func (b *Batch) CanFulfill(quantity decimal.Decimal) bool {
	return b.StockQuantity.GreaterThanOrEqual(quantity)
}

// HasStock returns true if the batch has stock on hand
func (b *Batch) HasStock() bool {
	return b.StockQuantity.GreaterThan(decimal.Zero)
}

// ConsumedQuantity returns how much of the initial quantity has left the batch
func (b *Batch) ConsumedQuantity() decimal.Decimal {
	consumed := b.InitialQuantity.Sub(b.StockQuantity)
	if consumed.IsNegative() {
		return decimal.Zero
	}
	return consumed
}

// UpdateAttributes updates the descriptive batch metadata. Quantities are
// not touched here; they only move through Increase/Decrease/SetStock.
func (b *Batch) UpdateAttributes(attrs BatchAttributes) error {
	if attrs.PurchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}

	b.ProductionDate = attrs.ProductionDate
	b.SupplierID = attrs.SupplierID
	b.SupplierName = attrs.SupplierName
	b.PurchasePrice = attrs.PurchasePrice
	b.StockLocation = attrs.StockLocation
	b.Remark = attrs.Remark
	b.PieceCount = attrs.PieceCount
	b.LooseWeight = attrs.LooseWeight
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}
