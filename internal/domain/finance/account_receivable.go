package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// AccountStatus represents the settlement state of a receivable or payable
type AccountStatus string

const (
	AccountStatusOutstanding AccountStatus = "OUTSTANDING"
	AccountStatusSettled     AccountStatus = "SETTLED"
)

// IsValid checks if the status is a valid AccountStatus
func (s AccountStatus) IsValid() bool {
	return s == AccountStatusOutstanding || s == AccountStatusSettled
}

// String returns the string representation of AccountStatus
func (s AccountStatus) String() string {
	return string(s)
}

// ReceiptRecord is one payment received against a receivable
type ReceiptRecord struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceivableID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method       string          `gorm:"type:varchar(50)"`
	ReceivedAt   time.Time       `gorm:"not null"`
	Remark       string          `gorm:"type:varchar(500)"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceiptRecord) TableName() string {
	return "receipt_records"
}

// AccountReceivable tracks money owed by a customer for a stocked-out
// sales order. UnpaidAmount = PrincipalAmount - PaidAmount; the status
// flips to SETTLED when it reaches zero.
type AccountReceivable struct {
	shared.BaseAggregateRoot
	SourceOrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	SourceOrderNo   string          `gorm:"type:varchar(50);not null"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName    string          `gorm:"type:varchar(200);not null"`
	PrincipalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnpaidAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status          AccountStatus   `gorm:"type:varchar(20);not null;default:'OUTSTANDING'"`
	Records         []ReceiptRecord `gorm:"foreignKey:ReceivableID;references:ID"`
	SettledAt       *time.Time
}

// TableName returns the table name for GORM
func (AccountReceivable) TableName() string {
	return "account_receivables"
}

// NewAccountReceivable creates a receivable for an order's unpaid balance.
// Any amount already received at order time counts toward settlement.
func NewAccountReceivable(sourceOrderID uuid.UUID, sourceOrderNo string, customerID uuid.UUID, customerName string, principal, alreadyPaid decimal.Decimal) (*AccountReceivable, error) {
	if sourceOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Source order ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Principal amount must be positive")
	}
	if alreadyPaid.IsNegative() || alreadyPaid.GreaterThan(principal) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Paid amount must be between zero and the principal")
	}

	ar := &AccountReceivable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SourceOrderID:     sourceOrderID,
		SourceOrderNo:     sourceOrderNo,
		CustomerID:        customerID,
		CustomerName:      customerName,
		PrincipalAmount:   principal,
		PaidAmount:        alreadyPaid,
		UnpaidAmount:      principal.Sub(alreadyPaid),
		Status:            AccountStatusOutstanding,
		Records:           make([]ReceiptRecord, 0),
	}

	if ar.UnpaidAmount.LessThanOrEqual(decimal.Zero) {
		now := time.Now()
		ar.Status = AccountStatusSettled
		ar.SettledAt = &now
	}

	return ar, nil
}

// RecordReceipt registers a payment received and settles the account when
// the unpaid balance reaches zero
func (ar *AccountReceivable) RecordReceipt(amount decimal.Decimal, method, remark string) (*ReceiptRecord, error) {
	if ar.Status == AccountStatusSettled {
		return nil, shared.NewDomainError("INVALID_STATE", "Account is already settled")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidAmount
	}
	if amount.GreaterThan(ar.UnpaidAmount) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Receipt exceeds the unpaid balance")
	}

	now := time.Now()
	record := ReceiptRecord{
		ID:           uuid.New(),
		ReceivableID: ar.ID,
		Amount:       amount,
		Method:       method,
		ReceivedAt:   now,
		Remark:       remark,
		CreatedAt:    now,
	}

	ar.Records = append(ar.Records, record)
	ar.PaidAmount = ar.PaidAmount.Add(amount)
	ar.UnpaidAmount = ar.PrincipalAmount.Sub(ar.PaidAmount)

	if ar.UnpaidAmount.LessThanOrEqual(decimal.Zero) {
		ar.Status = AccountStatusSettled
		ar.SettledAt = &now
		ar.AddDomainEvent(NewAccountReceivableSettledEvent(ar))
	}

	ar.UpdatedAt = now
	ar.IncrementVersion()

	return &ar.Records[len(ar.Records)-1], nil
}

// IsSettled returns true if nothing remains unpaid
func (ar *AccountReceivable) IsSettled() bool {
	return ar.Status == AccountStatusSettled
}
