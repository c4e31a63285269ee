package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// DyeingOrderStatus represents the status of a dyeing order
type DyeingOrderStatus string

const (
	DyeingOrderStatusPendingShipment DyeingOrderStatus = "PENDING_SHIPMENT"
	DyeingOrderStatusProcessing      DyeingOrderStatus = "PROCESSING"
	DyeingOrderStatusCompleted       DyeingOrderStatus = "COMPLETED"
	DyeingOrderStatusStockedIn       DyeingOrderStatus = "STOCKED_IN"
	DyeingOrderStatusCancelled       DyeingOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid DyeingOrderStatus
func (s DyeingOrderStatus) IsValid() bool {
	switch s {
	case DyeingOrderStatusPendingShipment, DyeingOrderStatusProcessing, DyeingOrderStatusCompleted,
		DyeingOrderStatusStockedIn, DyeingOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DyeingOrderStatus
func (s DyeingOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DyeingOrderStatus) CanTransitionTo(target DyeingOrderStatus) bool {
	switch s {
	case DyeingOrderStatusPendingShipment:
		return target == DyeingOrderStatusProcessing || target == DyeingOrderStatusCancelled
	case DyeingOrderStatusProcessing:
		return target == DyeingOrderStatusCompleted || target == DyeingOrderStatusCancelled
	case DyeingOrderStatusCompleted:
		return target == DyeingOrderStatusStockedIn
	case DyeingOrderStatusStockedIn, DyeingOrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// CanModify returns true if items may still be edited in this status
func (s DyeingOrderStatus) CanModify() bool {
	return s == DyeingOrderStatusPendingShipment || s == DyeingOrderStatusProcessing
}

// DyeingOrderItem represents one target colorway of the dyeing output.
// TargetColorID is nil until the color is resolved or created at stock-in.
type DyeingOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	TargetColorID    *uuid.UUID      `gorm:"type:uuid;index"`
	TargetColorCode  string          `gorm:"type:varchar(50);not null"`
	TargetColorName  string          `gorm:"type:varchar(100);not null"`
	TargetColorValue string          `gorm:"type:varchar(20)"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DyeingOrderItem) TableName() string {
	return "dyeing_order_items"
}

// NewDyeingOrderItem creates a new dyeing order item
func NewDyeingOrderItem(orderID uuid.UUID, targetColorID *uuid.UUID, colorCode, colorName, colorValue string, quantity decimal.Decimal) (*DyeingOrderItem, error) {
	if colorCode == "" {
		return nil, shared.NewDomainError("INVALID_COLOR_CODE", "Target color code cannot be empty")
	}
	if colorName == "" {
		return nil, shared.NewDomainError("INVALID_COLOR_NAME", "Target color name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	return &DyeingOrderItem{
		ID:               uuid.New(),
		OrderID:          orderID,
		TargetColorID:    targetColorID,
		TargetColorCode:  colorCode,
		TargetColorName:  colorName,
		TargetColorValue: colorValue,
		Quantity:         quantity,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// DyeingOrder represents an outsourced dyeing job: a white-yarn batch is
// sent to a factory and comes back as one new dyed batch per target color.
// The grey batch is referenced for traceability but its balance is not
// decremented; what was shipped physically left the books at purchase time.
type DyeingOrder struct {
	shared.BaseAggregateRoot
	OrderNumber            string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	ProductID              uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductName            string            `gorm:"type:varchar(200);not null"`
	GreyBatchID            uuid.UUID         `gorm:"type:uuid;not null;index"`
	GreyBatchCode          string            `gorm:"type:varchar(80);not null"`
	FactoryID              uuid.UUID         `gorm:"type:uuid;not null;index"`
	FactoryName            string            `gorm:"type:varchar(200);not null"`
	ProcessingPrice        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Items                  []DyeingOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	TotalQuantity          decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount            decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"` // TotalQuantity * ProcessingPrice
	Status                 DyeingOrderStatus `gorm:"type:varchar(20);not null;default:'PENDING_SHIPMENT'"`
	ExpectedCompletionDate *time.Time
	ActualCompletionDate   *time.Time
	Remark                 string `gorm:"type:text"`
	StockedInAt            *time.Time
	CancelledAt            *time.Time
	CancelReason           string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DyeingOrder) TableName() string {
	return "dyeing_orders"
}

// NewDyeingOrder creates a new dyeing order awaiting shipment to the factory
func NewDyeingOrder(orderNumber string, productID uuid.UUID, productName string, greyBatchID uuid.UUID, greyBatchCode string, factoryID uuid.UUID, factoryName string, processingPrice decimal.Decimal) (*DyeingOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if greyBatchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Grey batch ID cannot be empty")
	}
	if greyBatchCode == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_CODE", "Grey batch code cannot be empty")
	}
	if factoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FACTORY", "Factory ID cannot be empty")
	}
	if factoryName == "" {
		return nil, shared.NewDomainError("INVALID_FACTORY_NAME", "Factory name cannot be empty")
	}
	if processingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Processing price cannot be negative")
	}

	order := &DyeingOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		ProductID:         productID,
		ProductName:       productName,
		GreyBatchID:       greyBatchID,
		GreyBatchCode:     greyBatchCode,
		FactoryID:         factoryID,
		FactoryName:       factoryName,
		ProcessingPrice:   processingPrice,
		Items:             make([]DyeingOrderItem, 0),
		TotalQuantity:     decimal.Zero,
		TotalAmount:       decimal.Zero,
		Status:            DyeingOrderStatusPendingShipment,
	}

	order.AddDomainEvent(NewDyeingOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a target colorway to the order
func (o *DyeingOrder) AddItem(targetColorID *uuid.UUID, colorCode, colorName, colorValue string, quantity decimal.Decimal) (*DyeingOrderItem, error) {
	if !o.Status.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add items to order in %s status", o.Status))
	}

	for _, item := range o.Items {
		if item.TargetColorCode == colorCode {
			return nil, shared.NewDomainError("DUPLICATE_COLOR", "Target color already exists in order")
		}
	}

	item, err := NewDyeingOrderItem(o.ID, targetColorID, colorCode, colorName, colorValue, quantity)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return item, nil
}

// UpdateItemQuantity updates the output quantity of a target colorway
func (o *DyeingOrder) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if !o.Status.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot update items in order in %s status", o.Status))
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			o.Items[idx].Quantity = quantity
			o.Items[idx].UpdatedAt = time.Now()
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes a target colorway from the order
func (o *DyeingOrder) RemoveItem(itemID uuid.UUID) error {
	if !o.Status.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot remove items from order in %s status", o.Status))
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// UpdateProcessingPrice updates the per-unit processing price and
// recalculates the total amount
func (o *DyeingOrder) UpdateProcessingPrice(price decimal.Decimal) error {
	if !o.Status.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot update price of order in %s status", o.Status))
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Processing price cannot be negative")
	}

	o.ProcessingPrice = price
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetExpectedCompletionDate sets the date the factory promised
func (o *DyeingOrder) SetExpectedCompletionDate(date time.Time) {
	o.ExpectedCompletionDate = &date
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// SetRemark sets the order remark
func (o *DyeingOrder) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Ship marks the grey yarn as sent to the factory
func (o *DyeingOrder) Ship() error {
	if !o.Status.CanTransitionTo(DyeingOrderStatusProcessing) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot ship order without items")
	}

	o.Status = DyeingOrderStatusProcessing
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Complete marks processing finished, capturing the actual completion date.
// A zero date records the current time.
func (o *DyeingOrder) Complete(actualDate time.Time) error {
	if !o.Status.CanTransitionTo(DyeingOrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete order in %s status", o.Status))
	}

	if actualDate.IsZero() {
		actualDate = time.Now()
	}

	o.Status = DyeingOrderStatusCompleted
	o.ActualCompletionDate = &actualDate
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewDyeingOrderCompletedEvent(o))

	return nil
}

// MarkStockedIn records that every target colorway has been materialized as
// a new dyed batch. Only legal from COMPLETED, and only once.
func (o *DyeingOrder) MarkStockedIn() error {
	if !o.Status.CanTransitionTo(DyeingOrderStatusStockedIn) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot stock in order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = DyeingOrderStatusStockedIn
	o.StockedInAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewDyeingOrderStockedInEvent(o))

	return nil
}

// Cancel cancels the order before processing has finished
func (o *DyeingOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(DyeingOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = DyeingOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// IsStockedIn returns true if the dyed output has entered stock
func (o *DyeingOrder) IsStockedIn() bool {
	return o.Status == DyeingOrderStatusStockedIn
}

// IsTerminal returns true if the order is in a terminal state
func (o *DyeingOrder) IsTerminal() bool {
	return o.Status == DyeingOrderStatusStockedIn || o.Status == DyeingOrderStatusCancelled
}

// ItemCount returns the number of target colorways
func (o *DyeingOrder) ItemCount() int {
	return len(o.Items)
}

// GetItem returns an item by its ID
func (o *DyeingOrder) GetItem(itemID uuid.UUID) *DyeingOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

func (o *DyeingOrder) recalculateTotals() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Quantity)
	}
	o.TotalQuantity = total
	o.TotalAmount = total.Mul(o.ProcessingPrice)
}
