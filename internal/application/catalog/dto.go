package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/catalog"
)

// CreateProductRequest is the request to create a product
type CreateProductRequest struct {
	Code          string `json:"code" binding:"required,max=50"`
	Name          string `json:"name" binding:"required,max=200"`
	Unit          string `json:"unit" binding:"required,max=20"`
	Type          string `json:"type" binding:"required"`
	Specification string `json:"specification" binding:"max=200"`
	Composition   string `json:"composition" binding:"max=200"`
	YarnCount     string `json:"yarn_count" binding:"max=50"`
	Description   string `json:"description" binding:"max=500"`
	IsWhiteYarn   bool   `json:"is_white_yarn"`
}

// UpdateProductRequest is the request to update a product
type UpdateProductRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	Unit          string `json:"unit" binding:"required,max=20"`
	Specification string `json:"specification" binding:"max=200"`
	Composition   string `json:"composition" binding:"max=200"`
	YarnCount     string `json:"yarn_count" binding:"max=50"`
	Description   string `json:"description" binding:"max=500"`
	IsWhiteYarn   *bool  `json:"is_white_yarn"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Unit          string    `json:"unit"`
	Type          string    `json:"type"`
	Specification string    `json:"specification,omitempty"`
	Composition   string    `json:"composition,omitempty"`
	YarnCount     string    `json:"yarn_count,omitempty"`
	Description   string    `json:"description,omitempty"`
	IsWhiteYarn   bool      `json:"is_white_yarn"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToProductResponse maps a product aggregate to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Unit:          p.Unit,
		Type:          string(p.Type),
		Specification: p.Specification,
		Composition:   p.Composition,
		YarnCount:     p.YarnCount,
		Description:   p.Description,
		IsWhiteYarn:   p.IsWhiteYarn,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// CreateColorRequest is the request to create a colorway under a product
type CreateColorRequest struct {
	Code       string `json:"code" binding:"required,max=50"`
	Name       string `json:"name" binding:"required,max=100"`
	ColorValue string `json:"color_value" binding:"max=20"`
}

// ColorResponse is the API representation of a colorway
type ColorResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	ColorValue string    `json:"color_value,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToColorResponse maps a color aggregate to its API representation
func ToColorResponse(c *catalog.Color) ColorResponse {
	return ColorResponse{
		ID:         c.ID,
		ProductID:  c.ProductID,
		Code:       c.Code,
		Name:       c.Name,
		ColorValue: c.ColorValue,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt,
	}
}

// CreateBatchRequest is the request to create a batch under a colorway
type CreateBatchRequest struct {
	Code            string          `json:"code" binding:"required,max=80"`
	InitialQuantity decimal.Decimal `json:"initial_quantity" binding:"required"`
	ProductionDate  *time.Time      `json:"production_date"`
	SupplierID      *uuid.UUID      `json:"supplier_id"`
	SupplierName    string          `json:"supplier_name" binding:"max=200"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	StockLocation   string          `json:"stock_location" binding:"max=100"`
	Remark          string          `json:"remark" binding:"max=500"`
	PieceCount      int             `json:"piece_count"`
}

// StockMutationRequest is the request body for increase/decrease operations
type StockMutationRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// StockOverrideRequest is the request body for an absolute stock override
type StockOverrideRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// BatchResponse is the API representation of a batch
type BatchResponse struct {
	ID              uuid.UUID       `json:"id"`
	ColorID         uuid.UUID       `json:"color_id"`
	Code            string          `json:"code"`
	ProductionDate  *time.Time      `json:"production_date,omitempty"`
	SupplierID      *uuid.UUID      `json:"supplier_id,omitempty"`
	SupplierName    string          `json:"supplier_name,omitempty"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	StockQuantity   decimal.Decimal `json:"stock_quantity"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	StockLocation   string          `json:"stock_location,omitempty"`
	Remark          string          `json:"remark,omitempty"`
	PieceCount      int             `json:"piece_count"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToBatchResponse maps a batch aggregate to its API representation
func ToBatchResponse(b *catalog.Batch) BatchResponse {
	return BatchResponse{
		ID:              b.ID,
		ColorID:         b.ColorID,
		Code:            b.Code,
		ProductionDate:  b.ProductionDate,
		SupplierID:      b.SupplierID,
		SupplierName:    b.SupplierName,
		PurchasePrice:   b.PurchasePrice,
		StockQuantity:   b.StockQuantity,
		InitialQuantity: b.InitialQuantity,
		StockLocation:   b.StockLocation,
		Remark:          b.Remark,
		PieceCount:      b.PieceCount,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ListFilter carries pagination and search parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}
