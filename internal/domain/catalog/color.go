package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// ColorStatus represents the sales status of a colorway
type ColorStatus string

const (
	ColorStatusOnSale       ColorStatus = "ON_SALE"
	ColorStatusDiscontinued ColorStatus = "DISCONTINUED"
)

// IsValid checks if the status is a valid ColorStatus
func (s ColorStatus) IsValid() bool {
	return s == ColorStatusOnSale || s == ColorStatusDiscontinued
}

// Color represents a named colorway of a product. It groups the batches
// (production lots) carrying live stock.
type Color struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_color_product_code,priority:1"`
	Code        string      `gorm:"type:varchar(50);not null;uniqueIndex:idx_color_product_code,priority:2"`
	Name        string      `gorm:"type:varchar(100);not null"`
	ColorValue  string      `gorm:"type:varchar(20)"` // HEX display value
	Description string      `gorm:"type:varchar(500)"`
	Status      ColorStatus `gorm:"type:varchar(20);not null;default:'ON_SALE'"`
}

// TableName returns the table name for GORM
func (Color) TableName() string {
	return "colors"
}

// NewColor creates a new colorway under a product
func NewColor(productID uuid.UUID, code, name, colorValue string) (*Color, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Color code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Color name cannot be empty")
	}

	color := &Color{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Code:              code,
		Name:              name,
		ColorValue:        colorValue,
		Status:            ColorStatusOnSale,
	}

	color.AddDomainEvent(NewColorCreatedEvent(color))

	return color, nil
}

// Update updates the mutable color attributes
func (c *Color) Update(name, colorValue, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Color name cannot be empty")
	}

	c.Name = name
	c.ColorValue = colorValue
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Discontinue takes the colorway off sale; existing batches keep their stock
func (c *Color) Discontinue() error {
	if c.Status == ColorStatusDiscontinued {
		return shared.NewDomainError("INVALID_STATE", "Color is already discontinued")
	}

	c.Status = ColorStatusDiscontinued
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Reinstate puts a discontinued colorway back on sale
func (c *Color) Reinstate() error {
	if c.Status == ColorStatusOnSale {
		return shared.NewDomainError("INVALID_STATE", "Color is already on sale")
	}

	c.Status = ColorStatusOnSale
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsOnSale returns true if the colorway can be sold
func (c *Color) IsOnSale() bool {
	return c.Status == ColorStatusOnSale
}
