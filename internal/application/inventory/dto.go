package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/inventory"
)

// AdjustmentItemRequest is one correction line of an adjustment request.
// For all types except OTHER the quantity is a positive magnitude; OTHER
// takes a signed quantity.
type AdjustmentItemRequest struct {
	BatchID     uuid.UUID       `json:"batch_id" binding:"required"`
	BatchCode   string          `json:"batch_code" binding:"max=80"`
	ProductName string          `json:"product_name" binding:"max=200"`
	ColorName   string          `json:"color_name" binding:"max=100"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateAdjustmentRequest is the request to create an adjustment order
type CreateAdjustmentRequest struct {
	Type   string                  `json:"type" binding:"required"`
	Reason string                  `json:"reason" binding:"max=500"`
	Items  []AdjustmentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// AdjustmentItemResponse is the API representation of a correction line
type AdjustmentItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	BatchID     uuid.UUID       `json:"batch_id"`
	BatchCode   string          `json:"batch_code"`
	ProductName string          `json:"product_name,omitempty"`
	ColorName   string          `json:"color_name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// AdjustmentResponse is the API representation of an adjustment order
type AdjustmentResponse struct {
	ID            uuid.UUID                `json:"id"`
	OrderNumber   string                   `json:"order_number"`
	Type          string                   `json:"type"`
	Reason        string                   `json:"reason,omitempty"`
	Items         []AdjustmentItemResponse `json:"items"`
	TotalQuantity decimal.Decimal          `json:"total_quantity"`
	Status        string                   `json:"status"`
	SourceCheckID *uuid.UUID               `json:"source_check_id,omitempty"`
	CompletedAt   *time.Time               `json:"completed_at,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// ToAdjustmentResponse maps an adjustment order to its API representation
func ToAdjustmentResponse(o *inventory.AdjustmentOrder) AdjustmentResponse {
	items := make([]AdjustmentItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = AdjustmentItemResponse{
			ID:          item.ID,
			BatchID:     item.BatchID,
			BatchCode:   item.BatchCode,
			ProductName: item.ProductName,
			ColorName:   item.ColorName,
			Quantity:    item.Quantity,
		}
	}
	return AdjustmentResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Type:          o.Type.String(),
		Reason:        o.Reason,
		Items:         items,
		TotalQuantity: o.TotalQuantity,
		Status:        o.Status.String(),
		SourceCheckID: o.SourceCheckID,
		CompletedAt:   o.CompletedAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// CreateStockCheckRequest is the request to plan a stock check
type CreateStockCheckRequest struct {
	Name          string      `json:"name" binding:"required,max=200"`
	StockLocation string      `json:"stock_location" binding:"max=100"`
	BatchIDs      []uuid.UUID `json:"batch_ids" binding:"required,min=1"`
	Remark        string      `json:"remark" binding:"max=2000"`
}

// RecordCountRequest records the actual quantity counted for one item
type RecordCountRequest struct {
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
}

// StockCheckItemResponse is the API representation of a check line
type StockCheckItemResponse struct {
	ID             uuid.UUID        `json:"id"`
	BatchID        uuid.UUID        `json:"batch_id"`
	BatchCode      string           `json:"batch_code"`
	ProductName    string           `json:"product_name,omitempty"`
	ColorName      string           `json:"color_name,omitempty"`
	SystemQuantity decimal.Decimal  `json:"system_quantity"`
	ActualQuantity *decimal.Decimal `json:"actual_quantity,omitempty"`
	Difference     decimal.Decimal  `json:"difference"`
	Counted        bool             `json:"counted"`
}

// StockCheckResponse is the API representation of a stock check
type StockCheckResponse struct {
	ID            uuid.UUID                `json:"id"`
	OrderNumber   string                   `json:"order_number"`
	Name          string                   `json:"name"`
	StockLocation string                   `json:"stock_location,omitempty"`
	Items         []StockCheckItemResponse `json:"items"`
	Status        string                   `json:"status"`
	TotalItems    int                      `json:"total_items"`
	CountedItems  int                      `json:"counted_items"`
	SurplusTotal  decimal.Decimal          `json:"surplus_total"`
	DeficitTotal  decimal.Decimal          `json:"deficit_total"`
	Remark        string                   `json:"remark,omitempty"`
	CompletedAt   *time.Time               `json:"completed_at,omitempty"`
	CancelledAt   *time.Time               `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// ToStockCheckResponse maps a stock check to its API representation
func ToStockCheckResponse(c *inventory.StockCheck) StockCheckResponse {
	items := make([]StockCheckItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = StockCheckItemResponse{
			ID:             item.ID,
			BatchID:        item.BatchID,
			BatchCode:      item.BatchCode,
			ProductName:    item.ProductName,
			ColorName:      item.ColorName,
			SystemQuantity: item.SystemQuantity,
			ActualQuantity: item.ActualQuantity,
			Difference:     item.Difference,
			Counted:        item.IsCounted(),
		}
	}
	return StockCheckResponse{
		ID:            c.ID,
		OrderNumber:   c.OrderNumber,
		Name:          c.Name,
		StockLocation: c.StockLocation,
		Items:         items,
		Status:        c.Status.String(),
		TotalItems:    c.TotalItems,
		CountedItems:  c.CountedItems,
		SurplusTotal:  c.SurplusTotal,
		DeficitTotal:  c.DeficitTotal,
		Remark:        c.Remark,
		CompletedAt:   c.CompletedAt,
		CancelledAt:   c.CancelledAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ListFilter carries pagination and search parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}
