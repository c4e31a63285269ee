package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// ProductType classifies a product within the textile workflow
type ProductType string

const (
	ProductTypeRawMaterial  ProductType = "RAW_MATERIAL"
	ProductTypeSemiFinished ProductType = "SEMI_FINISHED"
	ProductTypeFinished     ProductType = "FINISHED"
)

// IsValid checks if the type is a valid ProductType
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeRawMaterial, ProductTypeSemiFinished, ProductTypeFinished:
		return true
	}
	return false
}

// Product represents a yarn/fabric product. It is the root of the
// product -> color -> batch hierarchy; colors (and their batches) are
// cascade-deleted together with the product.
type Product struct {
	shared.BaseAggregateRoot
	Code          string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string      `gorm:"type:varchar(200);not null"`
	Specification string      `gorm:"type:varchar(200)"`
	Composition   string      `gorm:"type:varchar(200)"`
	YarnCount     string      `gorm:"type:varchar(50)"`
	Unit          string      `gorm:"type:varchar(20);not null"`
	Type          ProductType `gorm:"type:varchar(20);not null"`
	IsWhiteYarn   bool        `gorm:"not null;default:false"`
	Description   string      `gorm:"type:varchar(500)"`

	// Dual-unit support: products sold by weight may also track piece counts
	AuxiliaryUnit  string          `gorm:"type:varchar(20)"`
	UnitWeight     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	EnableDualUnit bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name, unit string, productType ProductType) (*Product, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Product unit cannot be empty")
	}
	if !productType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid product type")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Unit:              unit,
		Type:              productType,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the mutable product attributes
func (p *Product) Update(name, specification, composition, yarnCount, unit, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Product unit cannot be empty")
	}

	p.Name = name
	p.Specification = specification
	p.Composition = composition
	p.YarnCount = yarnCount
	p.Unit = unit
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MarkWhiteYarn marks the product as undyed base material usable as
// grey stock for dyeing orders
func (p *Product) MarkWhiteYarn(isWhiteYarn bool) {
	p.IsWhiteYarn = isWhiteYarn
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// EnableDualUnits enables piece-count tracking alongside the weight unit
func (p *Product) EnableDualUnits(auxiliaryUnit string, unitWeight decimal.Decimal) error {
	if auxiliaryUnit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Auxiliary unit cannot be empty")
	}
	if unitWeight.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_WEIGHT", "Unit weight must be positive")
	}

	p.AuxiliaryUnit = auxiliaryUnit
	p.UnitWeight = unitWeight
	p.EnableDualUnit = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}
