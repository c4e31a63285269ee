package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft         PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusPendingReview PurchaseOrderStatus = "PENDING_REVIEW"
	PurchaseOrderStatusReviewed      PurchaseOrderStatus = "REVIEWED"
	PurchaseOrderStatusStockedIn     PurchaseOrderStatus = "STOCKED_IN"
	PurchaseOrderStatusVoid          PurchaseOrderStatus = "VOID"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusPendingReview, PurchaseOrderStatusReviewed,
		PurchaseOrderStatusStockedIn, PurchaseOrderStatusVoid:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusPendingReview || target == PurchaseOrderStatusVoid
	case PurchaseOrderStatusPendingReview:
		return target == PurchaseOrderStatusReviewed || target == PurchaseOrderStatusVoid
	case PurchaseOrderStatusReviewed:
		return target == PurchaseOrderStatusStockedIn || target == PurchaseOrderStatusVoid
	case PurchaseOrderStatusStockedIn, PurchaseOrderStatusVoid:
		return false // Terminal states
	}
	return false
}

// CanModify returns true if items may still be edited in this status.
// Line edits are a drafting activity; submitting for review freezes
// the order.
func (s PurchaseOrderStatus) CanModify() bool {
	return s == PurchaseOrderStatusDraft
}

// PurchaseOrderItem represents a line item in a purchase order. Each line
// materializes as a brand-new batch when the order stocks in.
type PurchaseOrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ColorID     uuid.UUID       `gorm:"type:uuid;not null"`
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
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates a new purchase order item
func NewPurchaseOrderItem(orderID, productID uuid.UUID, productName string, colorID uuid.UUID, colorName, batchCode string, quantity, unitPrice decimal.Decimal, pieceCount int) (*PurchaseOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if colorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color ID cannot be empty")
	}
	if batchCode == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_CODE", "Batch code cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ColorID:     colorID,
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

// Update updates the item quantity and price and recalculates the amount
func (i *PurchaseOrderItem) Update(quantity, unitPrice decimal.Decimal, pieceCount int) error {
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

// PurchaseOrder represents a supplier purchase. Stocking in creates one new
// batch per line; the transition out of REVIEWED is the only point where the
// ledger is touched, so it fires at most once per order.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName string              `gorm:"type:varchar(200);not null"`
	OrderDate    time.Time           `gorm:"not null;index"`
	Items        []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount   decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	UnpaidAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Remark       string              `gorm:"type:text"`
	StockedInAt  *time.Time
	VoidedAt     *time.Time
	VoidReason   string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in draft
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, supplierName string, orderDate time.Time) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		OrderDate:         orderDate,
		Items:             make([]PurchaseOrderItem, 0),
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		UnpaidAmount:      decimal.Zero,
		Status:            PurchaseOrderStatusDraft,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a new line to the order. Allowed until the order stocks in.
func (o *PurchaseOrder) AddItem(productID uuid.UUID, productName string, colorID uuid.UUID, colorName, batchCode string, quantity, unitPrice decimal.Decimal, pieceCount int) (*PurchaseOrderItem, error) {
	if !o.Status.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add items to order in %s status", o.Status))
	}

	// A duplicate batch code within the same color would collide at stock-in
	for _, item := range o.Items {
		if item.ColorID == colorID && item.BatchCode == batchCode {
			return nil, shared.NewDomainError("DUPLICATE_BATCH", "Batch code already exists in order for this color")
		}
	}

	item, err := NewPurchaseOrderItem(o.ID, productID, productName, colorID, colorName, batchCode, quantity, unitPrice, pieceCount)
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
func (o *PurchaseOrder) UpdateItem(itemID uuid.UUID, quantity, unitPrice decimal.Decimal, pieceCount int) error {
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
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
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

// RecordPayment records an amount paid to the supplier against this order
func (o *PurchaseOrder) RecordPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidAmount
	}
	if o.PaidAmount.Add(amount).GreaterThan(o.TotalAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot exceed total amount")
	}

	o.PaidAmount = o.PaidAmount.Add(amount)
	o.UnpaidAmount = o.TotalAmount.Sub(o.PaidAmount)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetRemark sets the order remark
func (o *PurchaseOrder) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// SubmitForReview moves the order from DRAFT to PENDING_REVIEW
func (o *PurchaseOrder) SubmitForReview() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusPendingReview) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot submit order without items")
	}

	o.Status = PurchaseOrderStatusPendingReview
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Approve moves the order from PENDING_REVIEW to REVIEWED
func (o *PurchaseOrder) Approve() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusReviewed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve order in %s status", o.Status))
	}

	o.Status = PurchaseOrderStatusReviewed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkStockedIn records that all lines have been materialized as batches.
// Guarded by the status machine so the ledger mutation cannot be replayed:
// an order already in STOCKED_IN refuses the transition.
func (o *PurchaseOrder) MarkStockedIn() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusStockedIn) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot stock in order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot stock in order without items")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusStockedIn
	o.StockedInAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderStockedInEvent(o))

	return nil
}

// Void cancels the order. Orders already stocked in cannot be voided since
// the created batches may have been consumed downstream.
func (o *PurchaseOrder) Void(reason string) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusVoid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot void order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Void reason is required")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusVoid
	o.VoidedAt = &now
	o.VoidReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderVoidedEvent(o, reason))

	return nil
}

// CanDelete returns true if the order may be deleted outright
func (o *PurchaseOrder) CanDelete() bool {
	return o.Status.CanModify()
}

// IsStockedIn returns true if the order has stocked in
func (o *PurchaseOrder) IsStockedIn() bool {
	return o.Status == PurchaseOrderStatusStockedIn
}

// IsTerminal returns true if the order is in a terminal state
func (o *PurchaseOrder) IsTerminal() bool {
	return o.Status == PurchaseOrderStatusStockedIn || o.Status == PurchaseOrderStatusVoid
}

// ItemCount returns the number of lines in the order
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}

// GetItem returns an item by its ID
func (o *PurchaseOrder) GetItem(itemID uuid.UUID) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// TotalQuantity returns the quantity across all lines
func (o *PurchaseOrder) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Quantity)
	}
	return total
}

func (o *PurchaseOrder) recalculateTotals() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
	o.UnpaidAmount = o.TotalAmount.Sub(o.PaidAmount)
}
