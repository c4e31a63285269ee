package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// AdjustmentType classifies why stock is being corrected. The type fixes
// the sign of every line except OTHER, which carries a caller-signed delta.
type AdjustmentType string

const (
	AdjustmentTypeIncrease AdjustmentType = "INCREASE"
	AdjustmentTypeDecrease AdjustmentType = "DECREASE"
	AdjustmentTypeSurplus  AdjustmentType = "SURPLUS"
	AdjustmentTypeDeficit  AdjustmentType = "DEFICIT"
	AdjustmentTypeLoss     AdjustmentType = "LOSS"
	AdjustmentTypeOther    AdjustmentType = "OTHER"
)

// IsValid checks if the type is a valid AdjustmentType
func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentTypeIncrease, AdjustmentTypeDecrease, AdjustmentTypeSurplus,
		AdjustmentTypeDeficit, AdjustmentTypeLoss, AdjustmentTypeOther:
		return true
	}
	return false
}

// String returns the string representation of AdjustmentType
func (t AdjustmentType) String() string {
	return string(t)
}

// ResolveDelta turns an entered quantity into the signed ledger delta for
// this adjustment type. For all types except OTHER the quantity is a
// positive magnitude; OTHER passes the caller's sign through unchanged.
func (t AdjustmentType) ResolveDelta(quantity decimal.Decimal) (decimal.Decimal, error) {
	switch t {
	case AdjustmentTypeIncrease, AdjustmentTypeSurplus:
		if quantity.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		return quantity, nil
	case AdjustmentTypeDecrease, AdjustmentTypeDeficit, AdjustmentTypeLoss:
		if quantity.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		return quantity.Neg(), nil
	case AdjustmentTypeOther:
		if quantity.IsZero() {
			return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
		}
		return quantity, nil
	}
	return decimal.Zero, shared.NewDomainError("INVALID_TYPE", "Invalid adjustment type")
}

// AdjustmentOrderStatus represents the status of an adjustment order
type AdjustmentOrderStatus string

const (
	AdjustmentOrderStatusDraft     AdjustmentOrderStatus = "DRAFT"
	AdjustmentOrderStatusCompleted AdjustmentOrderStatus = "COMPLETED"
)

// IsValid checks if the status is a valid AdjustmentOrderStatus
func (s AdjustmentOrderStatus) IsValid() bool {
	return s == AdjustmentOrderStatusDraft || s == AdjustmentOrderStatusCompleted
}

// String returns the string representation of AdjustmentOrderStatus
func (s AdjustmentOrderStatus) String() string {
	return string(s)
}

// AdjustmentOrderItem holds one batch correction. Quantity is stored
// already signed, resolved from the order type at entry time.
type AdjustmentOrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchCode   string          `gorm:"type:varchar(80);not null"`
	ProductName string          `gorm:"type:varchar(200)"`
	ColorName   string          `gorm:"type:varchar(100)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"` // signed ledger delta
	Remark      string          `gorm:"type:varchar(500)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AdjustmentOrderItem) TableName() string {
	return "adjustment_order_items"
}

// AdjustmentOrder represents a manual stock correction. Completing it
// applies every line's signed quantity to its batch; completion of an
// already-completed order is a no-op so the deltas can never be replayed.
type AdjustmentOrder struct {
	shared.BaseAggregateRoot
	OrderNumber   string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type          AdjustmentType        `gorm:"type:varchar(20);not null"`
	Reason        string                `gorm:"type:varchar(500)"`
	Items         []AdjustmentOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	TotalQuantity decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"` // sum of absolute quantities
	Status        AdjustmentOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	SourceCheckID *uuid.UUID            `gorm:"type:uuid;index"` // set when generated from a stock check
	CompletedAt   *time.Time
}

// TableName returns the table name for GORM
func (AdjustmentOrder) TableName() string {
	return "adjustment_orders"
}

// NewAdjustmentOrder creates a new adjustment order in draft
func NewAdjustmentOrder(orderNumber string, adjType AdjustmentType, reason string) (*AdjustmentOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if !adjType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid adjustment type")
	}

	order := &AdjustmentOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		Type:              adjType,
		Reason:            reason,
		Items:             make([]AdjustmentOrderItem, 0),
		TotalQuantity:     decimal.Zero,
		Status:            AdjustmentOrderStatusDraft,
	}

	order.AddDomainEvent(NewAdjustmentOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a correction line. The quantity is resolved to a signed
// delta by the order type. A line for a batch already in the order merges
// into the existing line by summing deltas.
func (o *AdjustmentOrder) AddItem(batchID uuid.UUID, batchCode, productName, colorName string, quantity decimal.Decimal) (*AdjustmentOrderItem, error) {
	if o.Status != AdjustmentOrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a completed order")
	}
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}

	delta, err := o.Type.ResolveDelta(quantity)
	if err != nil {
		return nil, err
	}

	for idx := range o.Items {
		if o.Items[idx].BatchID == batchID {
			merged := o.Items[idx].Quantity.Add(delta)
			if merged.IsZero() {
				return nil, shared.NewDomainError("INVALID_QUANTITY", "Merged quantity cannot be zero")
			}
			o.Items[idx].Quantity = merged
			o.Items[idx].UpdatedAt = time.Now()
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return &o.Items[idx], nil
		}
	}

	now := time.Now()
	item := AdjustmentOrderItem{
		ID:          uuid.New(),
		OrderID:     o.ID,
		BatchID:     batchID,
		BatchCode:   batchCode,
		ProductName: productName,
		ColorName:   colorName,
		Quantity:    delta,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	o.Items = append(o.Items, item)
	o.recalculateTotal()
	o.UpdatedAt = now
	o.IncrementVersion()

	return &o.Items[len(o.Items)-1], nil
}

// RemoveItem removes a correction line
func (o *AdjustmentOrder) RemoveItem(itemID uuid.UUID) error {
	if o.Status != AdjustmentOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a completed order")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// LinkSourceCheck records the stock check this adjustment was generated from
func (o *AdjustmentOrder) LinkSourceCheck(checkID uuid.UUID) error {
	if o.Status != AdjustmentOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot link a completed order")
	}
	if checkID == uuid.Nil {
		return shared.NewDomainError("INVALID_CHECK", "Check ID cannot be empty")
	}

	o.SourceCheckID = &checkID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Complete marks the order completed. Completing an already-completed
// order is a no-op: it returns nil and raises no event. The returned flag
// tells the caller whether the line deltas should be applied to the ledger.
func (o *AdjustmentOrder) Complete() (applied bool, err error) {
	if o.Status == AdjustmentOrderStatusCompleted {
		return false, nil
	}
	if len(o.Items) == 0 {
		return false, shared.NewDomainError("NO_ITEMS", "Cannot complete order without items")
	}

	now := time.Now()
	o.Status = AdjustmentOrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewAdjustmentOrderCompletedEvent(o))

	return true, nil
}

// IsCompleted returns true if the order has been completed
func (o *AdjustmentOrder) IsCompleted() bool {
	return o.Status == AdjustmentOrderStatusCompleted
}

// CanDelete returns true if the order may be deleted outright
func (o *AdjustmentOrder) CanDelete() bool {
	return o.Status == AdjustmentOrderStatusDraft
}

// ItemCount returns the number of correction lines
func (o *AdjustmentOrder) ItemCount() int {
	return len(o.Items)
}

// GetItem returns an item by its ID
func (o *AdjustmentOrder) GetItem(itemID uuid.UUID) *AdjustmentOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

func (o *AdjustmentOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Quantity.Abs())
	}
	o.TotalQuantity = total
}
