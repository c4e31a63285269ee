package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/trade"
)

// PurchaseOrderItemRequest is one line of a purchase order request
type PurchaseOrderItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"required,max=200"`
	ColorID     uuid.UUID       `json:"color_id" binding:"required"`
	ColorName   string          `json:"color_name" binding:"required,max=100"`
	BatchCode   string          `json:"batch_code" binding:"required,max=80"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	PieceCount  int             `json:"piece_count"`
}

// CreatePurchaseOrderRequest is the request to create a purchase order.
// Unless SaveAsDraft is set, the order is reviewed and stocked in as part
// of creation.
type CreatePurchaseOrderRequest struct {
	SupplierID   uuid.UUID                  `json:"supplier_id" binding:"required"`
	SupplierName string                     `json:"supplier_name" binding:"required,max=200"`
	OrderDate    time.Time                  `json:"order_date" binding:"required"`
	Items        []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Remark       string                     `json:"remark" binding:"max=2000"`
	SaveAsDraft  bool                       `json:"save_as_draft"`
}

// PurchaseOrderItemResponse is the API representation of a purchase line
type PurchaseOrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ColorID     uuid.UUID       `json:"color_id"`
	ColorName   string          `json:"color_name"`
	BatchCode   string          `json:"batch_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	PieceCount  int             `json:"piece_count"`
}

// PurchaseOrderResponse is the API representation of a purchase order
type PurchaseOrderResponse struct {
	ID           uuid.UUID                   `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	SupplierID   uuid.UUID                   `json:"supplier_id"`
	SupplierName string                      `json:"supplier_name"`
	OrderDate    time.Time                   `json:"order_date"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	PaidAmount   decimal.Decimal             `json:"paid_amount"`
	UnpaidAmount decimal.Decimal             `json:"unpaid_amount"`
	Status       string                      `json:"status"`
	Remark       string                      `json:"remark,omitempty"`
	StockedInAt  *time.Time                  `json:"stocked_in_at,omitempty"`
	VoidedAt     *time.Time                  `json:"voided_at,omitempty"`
	VoidReason   string                      `json:"void_reason,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// ToPurchaseOrderResponse maps a purchase order to its API representation
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = PurchaseOrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ColorID:     item.ColorID,
			ColorName:   item.ColorName,
			BatchCode:   item.BatchCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			PieceCount:  item.PieceCount,
		}
	}
	return PurchaseOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierID:   o.SupplierID,
		SupplierName: o.SupplierName,
		OrderDate:    o.OrderDate,
		Items:        items,
		TotalAmount:  o.TotalAmount,
		PaidAmount:   o.PaidAmount,
		UnpaidAmount: o.UnpaidAmount,
		Status:       o.Status.String(),
		Remark:       o.Remark,
		StockedInAt:  o.StockedInAt,
		VoidedAt:     o.VoidedAt,
		VoidReason:   o.VoidReason,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// SalesOrderItemRequest is one line of a sales order request
type SalesOrderItemRequest struct {
	BatchID     uuid.UUID       `json:"batch_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"required,max=200"`
	ColorName   string          `json:"color_name" binding:"required,max=100"`
	BatchCode   string          `json:"batch_code" binding:"required,max=80"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	PieceCount  int             `json:"piece_count"`
}

// CreateSalesOrderRequest is the request to create a sales order. Unless
// SaveAsDraft is set, the order is reviewed and stocked out as part of
// creation.
type CreateSalesOrderRequest struct {
	CustomerID   uuid.UUID               `json:"customer_id" binding:"required"`
	CustomerName string                  `json:"customer_name" binding:"required,max=200"`
	OrderDate    time.Time               `json:"order_date" binding:"required"`
	Items        []SalesOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Remark       string                  `json:"remark" binding:"max=2000"`
	SaveAsDraft  bool                    `json:"save_as_draft"`
}

// SalesOrderItemResponse is the API representation of a sales line
type SalesOrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	BatchID     uuid.UUID       `json:"batch_id"`
	ProductName string          `json:"product_name"`
	ColorName   string          `json:"color_name"`
	BatchCode   string          `json:"batch_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	PieceCount  int             `json:"piece_count"`
}

// SalesOrderResponse is the API representation of a sales order
type SalesOrderResponse struct {
	ID               uuid.UUID                `json:"id"`
	OrderNumber      string                   `json:"order_number"`
	CustomerID       uuid.UUID                `json:"customer_id"`
	CustomerName     string                   `json:"customer_name"`
	OrderDate        time.Time                `json:"order_date"`
	Items            []SalesOrderItemResponse `json:"items"`
	TotalAmount      decimal.Decimal          `json:"total_amount"`
	ReceivedAmount   decimal.Decimal          `json:"received_amount"`
	UnreceivedAmount decimal.Decimal          `json:"unreceived_amount"`
	Status           string                   `json:"status"`
	Remark           string                   `json:"remark,omitempty"`
	StockedOutAt     *time.Time               `json:"stocked_out_at,omitempty"`
	VoidedAt         *time.Time               `json:"voided_at,omitempty"`
	VoidReason       string                   `json:"void_reason,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// ToSalesOrderResponse maps a sales order to its API representation
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	items := make([]SalesOrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = SalesOrderItemResponse{
			ID:          item.ID,
			BatchID:     item.BatchID,
			ProductName: item.ProductName,
			ColorName:   item.ColorName,
			BatchCode:   item.BatchCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			PieceCount:  item.PieceCount,
		}
	}
	return SalesOrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		CustomerID:       o.CustomerID,
		CustomerName:     o.CustomerName,
		OrderDate:        o.OrderDate,
		Items:            items,
		TotalAmount:      o.TotalAmount,
		ReceivedAmount:   o.ReceivedAmount,
		UnreceivedAmount: o.UnreceivedAmount,
		Status:           o.Status.String(),
		Remark:           o.Remark,
		StockedOutAt:     o.StockedOutAt,
		VoidedAt:         o.VoidedAt,
		VoidReason:       o.VoidReason,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// DyeingOrderItemRequest is one target colorway of a dyeing order request
type DyeingOrderItemRequest struct {
	TargetColorID    *uuid.UUID      `json:"target_color_id"`
	TargetColorCode  string          `json:"target_color_code" binding:"required,max=50"`
	TargetColorName  string          `json:"target_color_name" binding:"required,max=100"`
	TargetColorValue string          `json:"target_color_value" binding:"max=20"`
	Quantity         decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateDyeingOrderRequest is the request to create a dyeing order
type CreateDyeingOrderRequest struct {
	ProductID              uuid.UUID                `json:"product_id" binding:"required"`
	ProductName            string                   `json:"product_name" binding:"required,max=200"`
	GreyBatchID            uuid.UUID                `json:"grey_batch_id" binding:"required"`
	FactoryID              uuid.UUID                `json:"factory_id" binding:"required"`
	FactoryName            string                   `json:"factory_name" binding:"required,max=200"`
	ProcessingPrice        decimal.Decimal          `json:"processing_price" binding:"required"`
	Items                  []DyeingOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ExpectedCompletionDate *time.Time               `json:"expected_completion_date"`
	Remark                 string                   `json:"remark" binding:"max=2000"`
}

// DyeingOrderItemResponse is the API representation of a dyeing target line
type DyeingOrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	TargetColorID    *uuid.UUID      `json:"target_color_id,omitempty"`
	TargetColorCode  string          `json:"target_color_code"`
	TargetColorName  string          `json:"target_color_name"`
	TargetColorValue string          `json:"target_color_value,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
}

// DyeingOrderResponse is the API representation of a dyeing order
type DyeingOrderResponse struct {
	ID                     uuid.UUID                 `json:"id"`
	OrderNumber            string                    `json:"order_number"`
	ProductID              uuid.UUID                 `json:"product_id"`
	ProductName            string                    `json:"product_name"`
	GreyBatchID            uuid.UUID                 `json:"grey_batch_id"`
	GreyBatchCode          string                    `json:"grey_batch_code"`
	FactoryID              uuid.UUID                 `json:"factory_id"`
	FactoryName            string                    `json:"factory_name"`
	ProcessingPrice        decimal.Decimal           `json:"processing_price"`
	Items                  []DyeingOrderItemResponse `json:"items"`
	TotalQuantity          decimal.Decimal           `json:"total_quantity"`
	TotalAmount            decimal.Decimal           `json:"total_amount"`
	Status                 string                    `json:"status"`
	ExpectedCompletionDate *time.Time                `json:"expected_completion_date,omitempty"`
	ActualCompletionDate   *time.Time                `json:"actual_completion_date,omitempty"`
	Remark                 string                    `json:"remark,omitempty"`
	StockedInAt            *time.Time                `json:"stocked_in_at,omitempty"`
	CancelledAt            *time.Time                `json:"cancelled_at,omitempty"`
	CancelReason           string                    `json:"cancel_reason,omitempty"`
	CreatedAt              time.Time                 `json:"created_at"`
	UpdatedAt              time.Time                 `json:"updated_at"`
}

// ToDyeingOrderResponse maps a dyeing order to its API representation
func ToDyeingOrderResponse(o *trade.DyeingOrder) DyeingOrderResponse {
	items := make([]DyeingOrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = DyeingOrderItemResponse{
			ID:               item.ID,
			TargetColorID:    item.TargetColorID,
			TargetColorCode:  item.TargetColorCode,
			TargetColorName:  item.TargetColorName,
			TargetColorValue: item.TargetColorValue,
			Quantity:         item.Quantity,
		}
	}
	return DyeingOrderResponse{
		ID:                     o.ID,
		OrderNumber:            o.OrderNumber,
		ProductID:              o.ProductID,
		ProductName:            o.ProductName,
		GreyBatchID:            o.GreyBatchID,
		GreyBatchCode:          o.GreyBatchCode,
		FactoryID:              o.FactoryID,
		FactoryName:            o.FactoryName,
		ProcessingPrice:        o.ProcessingPrice,
		Items:                  items,
		TotalQuantity:          o.TotalQuantity,
		TotalAmount:            o.TotalAmount,
		Status:                 o.Status.String(),
		ExpectedCompletionDate: o.ExpectedCompletionDate,
		ActualCompletionDate:   o.ActualCompletionDate,
		Remark:                 o.Remark,
		StockedInAt:            o.StockedInAt,
		CancelledAt:            o.CancelledAt,
		CancelReason:           o.CancelReason,
		CreatedAt:              o.CreatedAt,
		UpdatedAt:              o.UpdatedAt,
	}
}

// OrderListFilter carries pagination and search parameters for order lists
type OrderListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ItemUpdateRequest updates one line of a draft order
type ItemUpdateRequest struct {
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
	PieceCount int             `json:"piece_count"`
}

// PaymentRequest records a payment or receipt against an order
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// VoidRequest carries the reason an order is voided or cancelled
type VoidRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
