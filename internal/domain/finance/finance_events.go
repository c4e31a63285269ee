package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

const (
	AggregateTypeAccountReceivable = "AccountReceivable"
	AggregateTypeAccountPayable    = "AccountPayable"
)

const (
	EventTypeAccountReceivableSettled = "AccountReceivableSettled"
	EventTypeAccountPayableSettled    = "AccountPayableSettled"
)

// AccountReceivableSettledEvent is raised when a receivable is fully paid
type AccountReceivableSettledEvent struct {
	shared.BaseDomainEvent
	ReceivableID  uuid.UUID       `json:"receivable_id"`
	SourceOrderNo string          `json:"source_order_no"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	Principal     decimal.Decimal `json:"principal"`
}

// NewAccountReceivableSettledEvent creates a new AccountReceivableSettledEvent
func NewAccountReceivableSettledEvent(ar *AccountReceivable) *AccountReceivableSettledEvent {
	return &AccountReceivableSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountReceivableSettled, AggregateTypeAccountReceivable, ar.ID),
		ReceivableID:    ar.ID,
		SourceOrderNo:   ar.SourceOrderNo,
		CustomerID:      ar.CustomerID,
		Principal:       ar.PrincipalAmount,
	}
}

// AccountPayableSettledEvent is raised when a payable is fully paid
type AccountPayableSettledEvent struct {
	shared.BaseDomainEvent
	PayableID     uuid.UUID       `json:"payable_id"`
	SourceOrderNo string          `json:"source_order_no"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	Principal     decimal.Decimal `json:"principal"`
}

// NewAccountPayableSettledEvent creates a new AccountPayableSettledEvent
func NewAccountPayableSettledEvent(ap *AccountPayable) *AccountPayableSettledEvent {
	return &AccountPayableSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountPayableSettled, AggregateTypeAccountPayable, ap.ID),
		PayableID:       ap.ID,
		SourceOrderNo:   ap.SourceOrderNo,
		SupplierID:      ap.SupplierID,
		Principal:       ap.PrincipalAmount,
	}
}
