package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/finance"
)

// RecordReceiptRequest registers a payment received against a receivable
type RecordReceiptRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method"`
	Remark string          `json:"remark"`
}

// RecordPaymentRequest registers a payment made against a payable
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method"`
	Remark string          `json:"remark"`
}

// ReceiptRecordResponse is the API representation of a receipt record
type ReceiptRecordResponse struct {
	ID         uuid.UUID       `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method,omitempty"`
	ReceivedAt time.Time       `json:"received_at"`
	Remark     string          `json:"remark,omitempty"`
}

// PaymentRecordResponse is the API representation of a payment record
type PaymentRecordResponse struct {
	ID     uuid.UUID       `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method,omitempty"`
	PaidAt time.Time       `json:"paid_at"`
	Remark string          `json:"remark,omitempty"`
}

// ReceivableResponse is the API representation of an account receivable
type ReceivableResponse struct {
	ID              uuid.UUID               `json:"id"`
	SourceOrderID   uuid.UUID               `json:"source_order_id"`
	SourceOrderNo   string                  `json:"source_order_no"`
	CustomerID      uuid.UUID               `json:"customer_id"`
	CustomerName    string                  `json:"customer_name"`
	PrincipalAmount decimal.Decimal         `json:"principal_amount"`
	PaidAmount      decimal.Decimal         `json:"paid_amount"`
	UnpaidAmount    decimal.Decimal         `json:"unpaid_amount"`
	Status          string                  `json:"status"`
	Records         []ReceiptRecordResponse `json:"records"`
	SettledAt       *time.Time              `json:"settled_at,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// PayableResponse is the API representation of an account payable
type PayableResponse struct {
	ID              uuid.UUID               `json:"id"`
	SourceOrderID   uuid.UUID               `json:"source_order_id"`
	SourceOrderNo   string                  `json:"source_order_no"`
	SupplierID      uuid.UUID               `json:"supplier_id"`
	SupplierName    string                  `json:"supplier_name"`
	PrincipalAmount decimal.Decimal         `json:"principal_amount"`
	PaidAmount      decimal.Decimal         `json:"paid_amount"`
	UnpaidAmount    decimal.Decimal         `json:"unpaid_amount"`
	Status          string                  `json:"status"`
	Records         []PaymentRecordResponse `json:"records"`
	SettledAt       *time.Time              `json:"settled_at,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// ToReceivableResponse maps a receivable to its API representation
func ToReceivableResponse(ar *finance.AccountReceivable) ReceivableResponse {
	records := make([]ReceiptRecordResponse, len(ar.Records))
	for i, record := range ar.Records {
		records[i] = ReceiptRecordResponse{
			ID:         record.ID,
			Amount:     record.Amount,
			Method:     record.Method,
			ReceivedAt: record.ReceivedAt,
			Remark:     record.Remark,
		}
	}
	return ReceivableResponse{
		ID:              ar.ID,
		SourceOrderID:   ar.SourceOrderID,
		SourceOrderNo:   ar.SourceOrderNo,
		CustomerID:      ar.CustomerID,
		CustomerName:    ar.CustomerName,
		PrincipalAmount: ar.PrincipalAmount,
		PaidAmount:      ar.PaidAmount,
		UnpaidAmount:    ar.UnpaidAmount,
		Status:          ar.Status.String(),
		Records:         records,
		SettledAt:       ar.SettledAt,
		CreatedAt:       ar.CreatedAt,
		UpdatedAt:       ar.UpdatedAt,
	}
}

// ToPayableResponse maps a payable to its API representation
func ToPayableResponse(ap *finance.AccountPayable) PayableResponse {
	records := make([]PaymentRecordResponse, len(ap.Records))
	for i, record := range ap.Records {
		records[i] = PaymentRecordResponse{
			ID:     record.ID,
			Amount: record.Amount,
			Method: record.Method,
			PaidAt: record.PaidAt,
			Remark: record.Remark,
		}
	}
	return PayableResponse{
		ID:              ap.ID,
		SourceOrderID:   ap.SourceOrderID,
		SourceOrderNo:   ap.SourceOrderNo,
		SupplierID:      ap.SupplierID,
		SupplierName:    ap.SupplierName,
		PrincipalAmount: ap.PrincipalAmount,
		PaidAmount:      ap.PaidAmount,
		UnpaidAmount:    ap.UnpaidAmount,
		Status:          ap.Status.String(),
		Records:         records,
		SettledAt:       ap.SettledAt,
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}
}

// ListFilter carries list query parameters for accounts
type ListFilter struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	Search      string `form:"search"`
	Status      string `form:"status"`
	Outstanding bool   `form:"outstanding"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir"`
}
