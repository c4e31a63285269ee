package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// SalesOrderStatus represents the status of a sales order
type SalesOrderStatus string

const (
	SalesOrderStatusDraft         SalesOrderStatus = "DRAFT"
	SalesOrderStatusPendingReview SalesOrderStatus = "PENDING_REVIEW"
	SalesOrderStatusReviewed      SalesOrderStatus = "REVIEWED"
	SalesOrderStatusStockedOut    SalesOrderStatus = "STOCKED_OUT"
	SalesOrderStatusVoid          SalesOrderStatus = "VOID"
)

// IsValid checks if the status is a valid SalesOrderStatus
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderStatusDraft, SalesOrderStatusPendingReview, SalesOrderStatusReviewed,
		SalesOrderStatusStockedOut, SalesOrderStatusVoid:
		return true
	}
	return false
}

// String returns the string representation of SalesOrderStatus
func (s SalesOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s SalesOrderStatus) CanTransitionTo(target SalesOrderStatus) bool {
	switch s {
	case SalesOrderStatusDraft:
		return target == SalesOrderStatusPendingReview || target == SalesOrderStatusVoid
	case SalesOrderStatusPendingReview:
		return target == SalesOrderStatusReviewed || target == SalesOrderStatusVoid
	case SalesOrderStatusReviewed:
		return target == SalesOrderStatusStockedOut || target == SalesOrderStatusVoid
	case SalesOrderStatusStockedOut, SalesOrderStatusVoid:
		return false // Terminal states
	}
	return false
}

// CanModify returns true if items may still be edited in this status.
// Line edits are a drafting activity; submitting for review freezes
// the order.
func (s SalesOrderStatus) CanModify() bool {
	return s == SalesOrderStatusDraft
}

// SalesOrderItem represents a line in a sales order. Unlike purchase lines
// it references an existing batch, whose balance is decreased at stock-out.
type SalesOrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ColorName   string          `gorm:"type:varchar(100);not null"`
	BatchCode   string          `gorm:"type:varchar(80);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice
	PieceCount  int             `gorm:"not null;default:0"`
	Remark      string          `gorm:"type:varchar(500)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// NewSalesOrderItem creates a new sales order item
func NewSalesOrderItem(orderID, batchID uuid.UUID, productName, colorName, batchCode string, quantity, unitPrice decimal.Decimal, pieceCount int) (*SalesOrderItem, error) {
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &SalesOrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		BatchID:     batchID,
		ProductName: productName,
		ColorName:   colorName,
		BatchCode:   batchCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
		PieceCount:  pieceCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update updates the line quantity and price and recalculates the amount
func (i *SalesOrderItem) Update(quantity, unitPrice decimal.Decimal, pieceCount int) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	i.Quantity = quantity
	i.UnitPrice = unitPrice
	i.Amount = quantity.Mul(unitPrice)
	i.PieceCount = pieceCount
	i.UpdatedAt = time.Now()

	return nil
}

// SalesOrder represents a customer sale. Stocking out decreases each line's
// batch balance; all lines succeed or the whole operation is rolled back.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber      string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerName     string           `gorm:"type:varchar(200);not null"`
	OrderDate        time.Time        `gorm:"not null;index"`
	Items            []SalesOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedAmount   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	UnreceivedAmount decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status           SalesOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Remark           string           `gorm:"type:text"`
	StockedOutAt     *time.Time
	VoidedAt         *time.Time
	VoidReason       string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new sales order in draft
func NewSalesOrder(orderNumber string, customerID uuid.UUID, customerName string, orderDate time.Time) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		OrderDate:         orderDate,
		Items:             make([]SalesOrderItem, 0),
		TotalAmount:       decimal.Zero,
		ReceivedAmount:    decimal.Zero,
		UnreceivedAmount:  decimal.Zero,
		Status:            SalesOrderStatusDraft,
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a line referencing an existing batch. Duplicate batch lines
// are merged at entry time by summing quantities.
func (o *SalesOrder) AddItem(batchID uuid.UUID, productName, colorName, batchCode string, quantity, unitPrice decimal.Decimal, pieceCount int) (*SalesOrderItem, error) {
	if !o.Status.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add items to order in %s status", o.Status))
	}

	for idx := range o.Items {
		if o.Items[idx].BatchID == batchID {
			merged := o.Items[idx].Quantity.Add(quantity)
			if err := o.Items[idx].Update(merged, unitPrice, o.Items[idx].PieceCount+pieceCount); err != nil {
				return nil, err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return &o.Items[idx], nil
		}
	}

	item, err := NewSalesOrderItem(o.ID, batchID, productName, colorName, batchCode, quantity, unitPrice, pieceCount)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return item, nil
}

// UpdateItem updates an existing line
func (o *SalesOrder) UpdateItem(itemID uuid.UUID, quantity, unitPrice decimal.Decimal, pieceCount int) error {
	if !o.Status.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot update items in order in %s status", o.Status))
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].Update(quantity, unitPrice, pieceCount); err != nil {
				return err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes a line from the order
func (o *SalesOrder) RemoveItem(itemID uuid.UUID) error {
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

// RecordReceipt records an amount received from the customer
func (o *SalesOrder) RecordReceipt(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidAmount
	}
	if o.ReceivedAmount.Add(amount).GreaterThan(o.TotalAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Received amount cannot exceed total amount")
	}

	o.ReceivedAmount = o.ReceivedAmount.Add(amount)
	o.UnreceivedAmount = o.TotalAmount.Sub(o.ReceivedAmount)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetRemark sets the order remark
func (o *SalesOrder) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// SubmitForReview moves the order from DRAFT to PENDING_REVIEW
func (o *SalesOrder) SubmitForReview() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusPendingReview) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot submit order without items")
	}

	o.Status = SalesOrderStatusPendingReview
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Approve moves the order from PENDING_REVIEW to REVIEWED
func (o *SalesOrder) Approve() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusReviewed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve order in %s status", o.Status))
	}

	o.Status = SalesOrderStatusReviewed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkStockedOut records that all line batches have been decreased. The
// status machine refuses a second transition, keeping the ledger mutation
// from being replayed.
func (o *SalesOrder) MarkStockedOut() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusStockedOut) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot stock out order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot stock out order without items")
	}

	now := time.Now()
	o.Status = SalesOrderStatusStockedOut
	o.StockedOutAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderStockedOutEvent(o))

	return nil
}

// Void cancels the order. Orders already stocked out cannot be voided.
func (o *SalesOrder) Void(reason string) error {
	if !o.Status.CanTransitionTo(SalesOrderStatusVoid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot void order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Void reason is required")
	}

	now := time.Now()
	o.Status = SalesOrderStatusVoid
	o.VoidedAt = &now
	o.VoidReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderVoidedEvent(o, reason))

	return nil
}

// CanDelete returns true if the order may be deleted outright
func (o *SalesOrder) CanDelete() bool {
	return o.Status.CanModify()
}

// IsStockedOut returns true if the order has stocked out
func (o *SalesOrder) IsStockedOut() bool {
	return o.Status == SalesOrderStatusStockedOut
}

// IsTerminal returns true if the order is in a terminal state
func (o *SalesOrder) IsTerminal() bool {
	return o.Status == SalesOrderStatusStockedOut || o.Status == SalesOrderStatusVoid
}

// ItemCount returns the number of lines in the order
func (o *SalesOrder) ItemCount() int {
	return len(o.Items)
}

// GetItem returns an item by its ID
func (o *SalesOrder) GetItem(itemID uuid.UUID) *SalesOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// TotalQuantity returns the quantity across all lines
func (o *SalesOrder) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Quantity)
	}
	return total
}

func (o *SalesOrder) recalculateTotals() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
	o.UnreceivedAmount = o.TotalAmount.Sub(o.ReceivedAmount)
}
