package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/shared"
)

// PaymentRecord is one payment made against a payable
type PaymentRecord struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	PayableID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method    string          `gorm:"type:varchar(50)"`
	PaidAt    time.Time       `gorm:"not null"`
	Remark    string          `gorm:"type:varchar(500)"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentRecord) TableName() string {
	return "payment_records"
}

// AccountPayable tracks money owed to a supplier or dyeing factory for a
// stocked-in order, mirroring AccountReceivable on the purchasing side.
type AccountPayable struct {
	shared.BaseAggregateRoot
	SourceOrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	SourceOrderNo   string          `gorm:"type:varchar(50);not null"`
	SupplierID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierName    string          `gorm:"type:varchar(200);not null"`
	PrincipalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnpaidAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status          AccountStatus   `gorm:"type:varchar(20);not null;default:'OUTSTANDING'"`
	Records         []PaymentRecord `gorm:"foreignKey:PayableID;references:ID"`
	SettledAt       *time.Time
}

// TableName returns the table name for GORM
func (AccountPayable) TableName() string {
	return "account_payables"
}

// NewAccountPayable creates a payable for an order's unpaid balance
func NewAccountPayable(sourceOrderID uuid.UUID, sourceOrderNo string, supplierID uuid.UUID, supplierName string, principal, alreadyPaid decimal.Decimal) (*AccountPayable, error) {
	if sourceOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Source order ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Principal amount must be positive")
	}
	if alreadyPaid.IsNegative() || alreadyPaid.GreaterThan(principal) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Paid amount must be between zero and the principal")
	}

	ap := &AccountPayable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SourceOrderID:     sourceOrderID,
		SourceOrderNo:     sourceOrderNo,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		PrincipalAmount:   principal,
		PaidAmount:        alreadyPaid,
		UnpaidAmount:      principal.Sub(alreadyPaid),
		Status:            AccountStatusOutstanding,
		Records:           make([]PaymentRecord, 0),
	}

	if ap.UnpaidAmount.LessThanOrEqual(decimal.Zero) {
		now := time.Now()
		ap.Status = AccountStatusSettled
		ap.SettledAt = &now
	}

	return ap, nil
}

// RecordPayment registers a payment made and settles the account when the
// unpaid balance reaches zero
func (ap *AccountPayable) RecordPayment(amount decimal.Decimal, method, remark string) (*PaymentRecord, error) {
	if ap.Status == AccountStatusSettled {
		return nil, shared.NewDomainError("INVALID_STATE", "Account is already settled")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidAmount
	}
	if amount.GreaterThan(ap.UnpaidAmount) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment exceeds the unpaid balance")
	}

	now := time.Now()
	record := PaymentRecord{
		ID:        uuid.New(),
		PayableID: ap.ID,
		Amount:    amount,
		Method:    method,
		PaidAt:    now,
		Remark:    remark,
		CreatedAt: now,
	}

	ap.Records = append(ap.Records, record)
	ap.PaidAmount = ap.PaidAmount.Add(amount)
	ap.UnpaidAmount = ap.PrincipalAmount.Sub(ap.PaidAmount)

	if ap.UnpaidAmount.LessThanOrEqual(decimal.Zero) {
		ap.Status = AccountStatusSettled
		ap.SettledAt = &now
		ap.AddDomainEvent(NewAccountPayableSettledEvent(ap))
	}

	ap.UpdatedAt = now
	ap.IncrementVersion()

	return &ap.Records[len(ap.Records)-1], nil
}

// IsSettled returns true if nothing remains unpaid
func (ap *AccountPayable) IsSettled() bool {
	return ap.Status == AccountStatusSettled
}
