package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// StockCheckStatus represents the status of a physical count
type StockCheckStatus string

const (
	StockCheckStatusPlanned   StockCheckStatus = "PLANNED"
	StockCheckStatusCounting  StockCheckStatus = "COUNTING"
	StockCheckStatusCompleted StockCheckStatus = "COMPLETED"
	StockCheckStatusCancelled StockCheckStatus = "CANCELLED"
)

// IsValid checks if the status is a valid StockCheckStatus
func (s StockCheckStatus) IsValid() bool {
	switch s {
	case StockCheckStatusPlanned, StockCheckStatusCounting, StockCheckStatusCompleted, StockCheckStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of StockCheckStatus
func (s StockCheckStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s StockCheckStatus) CanTransitionTo(target StockCheckStatus) bool {
	switch s {
	case StockCheckStatusPlanned:
		return target == StockCheckStatusCounting || target == StockCheckStatusCompleted || target == StockCheckStatusCancelled
	case StockCheckStatusCounting:
		return target == StockCheckStatusCompleted || target == StockCheckStatusCancelled
	case StockCheckStatusCompleted, StockCheckStatusCancelled:
		return false // Terminal states
	}
	return false
}

// StockCheckItem is one batch under count. SystemQuantity is the book
// balance snapshotted when the check was drawn up; ActualQuantity stays
// nil until the operator counts the batch.
type StockCheckItem struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key"`
	CheckID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	BatchID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	BatchCode      string           `gorm:"type:varchar(80);not null"`
	ProductName    string           `gorm:"type:varchar(200)"`
	ColorName      string           `gorm:"type:varchar(100)"`
	SystemQuantity decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	ActualQuantity *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Difference     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"` // actual - system
	Remark         string           `gorm:"type:varchar(500)"`
	CreatedAt      time.Time        `gorm:"not null"`
	UpdatedAt      time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockCheckItem) TableName() string {
	return "stock_check_items"
}

// IsCounted returns true if the operator has entered an actual quantity
func (i *StockCheckItem) IsCounted() bool {
	return i.ActualQuantity != nil
}

// StockCheck represents a physical inventory count. Completing it never
// touches the ledger directly; differences are carried into a separately
// generated adjustment order.
type StockCheck struct {
	shared.BaseAggregateRoot
	OrderNumber    string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string           `gorm:"type:varchar(200);not null"`
	StockLocation  string           `gorm:"type:varchar(100)"`
	Items          []StockCheckItem `gorm:"foreignKey:CheckID;references:ID"`
	Status         StockCheckStatus `gorm:"type:varchar(20);not null;default:'PLANNED'"`
	TotalItems     int              `gorm:"not null;default:0"`
	CountedItems   int              `gorm:"not null;default:0"`
	SurplusTotal   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"` // sum of positive differences
	DeficitTotal   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"` // absolute sum of negative differences
	Remark         string           `gorm:"type:text"`
	CompletedAt    *time.Time
	CancelledAt    *time.Time
}

// TableName returns the table name for GORM
func (StockCheck) TableName() string {
	return "stock_checks"
}

// NewStockCheck creates a new planned count
func NewStockCheck(orderNumber, name, stockLocation string) (*StockCheck, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Check name cannot be empty")
	}

	check := &StockCheck{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		Name:              name,
		StockLocation:     stockLocation,
		Items:             make([]StockCheckItem, 0),
		Status:            StockCheckStatusPlanned,
		SurplusTotal:      decimal.Zero,
		DeficitTotal:      decimal.Zero,
	}

	check.AddDomainEvent(NewStockCheckCreatedEvent(check))

	return check, nil
}

// AddItem registers a batch for counting, snapshotting its book balance
func (c *StockCheck) AddItem(batchID uuid.UUID, batchCode, productName, colorName string, systemQuantity decimal.Decimal) (*StockCheckItem, error) {
	if c.Status != StockCheckStatusPlanned {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add items to check in %s status", c.Status))
	}
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	if systemQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "System quantity cannot be negative")
	}

	for _, item := range c.Items {
		if item.BatchID == batchID {
			return nil, shared.NewDomainError("DUPLICATE_BATCH", "Batch already registered in check")
		}
	}

	now := time.Now()
	item := StockCheckItem{
		ID:             uuid.New(),
		CheckID:        c.ID,
		BatchID:        batchID,
		BatchCode:      batchCode,
		ProductName:    productName,
		ColorName:      colorName,
		SystemQuantity: systemQuantity,
		Difference:     decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	c.Items = append(c.Items, item)
	c.recalculate()
	c.UpdatedAt = now
	c.IncrementVersion()

	return &c.Items[len(c.Items)-1], nil
}

// StartCounting explicitly moves the check from PLANNED to COUNTING
func (c *StockCheck) StartCounting() error {
	if !c.Status.CanTransitionTo(StockCheckStatusCounting) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start counting a check in %s status", c.Status))
	}
	if len(c.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot start counting without items")
	}

	c.Status = StockCheckStatusCounting
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// RecordCount enters the counted quantity for one batch and recomputes
// the item difference and the check aggregates. A fully counted check
// still in PLANNED is promoted to COUNTING.
func (c *StockCheck) RecordCount(itemID uuid.UUID, actualQuantity decimal.Decimal) error {
	if c.Status != StockCheckStatusPlanned && c.Status != StockCheckStatusCounting {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record counts on a check in %s status", c.Status))
	}
	if actualQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Actual quantity cannot be negative")
	}

	var found bool
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			qty := actualQuantity
			c.Items[idx].ActualQuantity = &qty
			c.Items[idx].Difference = actualQuantity.Sub(c.Items[idx].SystemQuantity)
			c.Items[idx].UpdatedAt = time.Now()
			found = true
			break
		}
	}
	if !found {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Check item not found")
	}

	c.recalculate()

	if c.Status == StockCheckStatusPlanned && c.CountedItems == c.TotalItems {
		c.Status = StockCheckStatusCounting
	}

	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Complete finishes the count. Every item must have been counted.
func (c *StockCheck) Complete() error {
	if !c.Status.CanTransitionTo(StockCheckStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete check in %s status", c.Status))
	}
	if len(c.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot complete check without items")
	}
	if c.CountedItems < c.TotalItems {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Check has %d of %d items counted", c.CountedItems, c.TotalItems))
	}

	now := time.Now()
	c.Status = StockCheckStatusCompleted
	c.CompletedAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewStockCheckCompletedEvent(c))

	return nil
}

// Cancel abandons the count
func (c *StockCheck) Cancel() error {
	if !c.Status.CanTransitionTo(StockCheckStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel check in %s status", c.Status))
	}

	now := time.Now()
	c.Status = StockCheckStatusCancelled
	c.CancelledAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	return nil
}

// HasDifferences returns true if any counted item deviates from the book
func (c *StockCheck) HasDifferences() bool {
	for _, item := range c.Items {
		if item.IsCounted() && !item.Difference.IsZero() {
			return true
		}
	}
	return false
}

// DifferenceItems returns the counted items whose actual deviates from the book
func (c *StockCheck) DifferenceItems() []StockCheckItem {
	items := make([]StockCheckItem, 0)
	for _, item := range c.Items {
		if item.IsCounted() && !item.Difference.IsZero() {
			items = append(items, item)
		}
	}
	return items
}

// IsCompleted returns true if the count has been completed
func (c *StockCheck) IsCompleted() bool {
	return c.Status == StockCheckStatusCompleted
}

// Progress returns counted and total item numbers
func (c *StockCheck) Progress() (counted, total int) {
	return c.CountedItems, c.TotalItems
}

// GetItem returns an item by its ID
func (c *StockCheck) GetItem(itemID uuid.UUID) *StockCheckItem {
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			return &c.Items[idx]
		}
	}
	return nil
}

func (c *StockCheck) recalculate() {
	c.TotalItems = len(c.Items)

	counted := 0
	surplus := decimal.Zero
	deficit := decimal.Zero
	for _, item := range c.Items {
		if !item.IsCounted() {
			continue
		}
		counted++
		if item.Difference.GreaterThan(decimal.Zero) {
			surplus = surplus.Add(item.Difference)
		} else if item.Difference.LessThan(decimal.Zero) {
			deficit = deficit.Add(item.Difference.Abs())
		}
	}

	c.CountedItems = counted
	c.SurplusTotal = surplus
	c.DeficitTotal = deficit
}
