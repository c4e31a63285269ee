package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/finance"
	"github.com/yarntrade/backend/internal/domain/shared"
)

// AccountService provides operations over receivables and payables
type AccountService struct {
	receivableRepo finance.AccountReceivableRepository
	payableRepo    finance.AccountPayableRepository
	eventPublisher shared.EventPublisher
}

// NewAccountService creates a new account service
func NewAccountService(
	receivableRepo finance.AccountReceivableRepository,
	payableRepo finance.AccountPayableRepository,
) *AccountService {
	return &AccountService{
		receivableRepo: receivableRepo,
		payableRepo:    payableRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *AccountService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *AccountService) publishDomainEvents(ctx context.Context, aggregate interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}

// GetReceivable retrieves a receivable with its receipt records
func (s *AccountService) GetReceivable(ctx context.Context, id uuid.UUID) (*ReceivableResponse, error) {
	ar, err := s.receivableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToReceivableResponse(ar)
	return &resp, nil
}

// ListReceivables lists receivables matching the filter. Setting
// Outstanding restricts the result to unsettled accounts.
func (s *AccountService) ListReceivables(ctx context.Context, filter ListFilter) (*shared.Paginated[ReceivableResponse], error) {
	domainFilter := toDomainFilter(filter)

	var (
		receivables []finance.AccountReceivable
		err         error
	)
	if filter.Outstanding {
		receivables, err = s.receivableRepo.FindOutstanding(ctx, domainFilter)
	} else {
		receivables, err = s.receivableRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.receivableRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ReceivableResponse, len(receivables))
	for i := range receivables {
		items[i] = ToReceivableResponse(&receivables[i])
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// RecordReceipt registers a payment received against a receivable
func (s *AccountService) RecordReceipt(ctx context.Context, id uuid.UUID, req RecordReceiptRequest) (*ReceivableResponse, error) {
	ar, err := s.receivableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := ar.RecordReceipt(req.Amount, req.Method, req.Remark); err != nil {
		return nil, err
	}

	if err := s.receivableRepo.Save(ctx, ar); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, ar)

	resp := ToReceivableResponse(ar)
	return &resp, nil
}

// CustomerOutstanding sums the unpaid balance across a customer's accounts
func (s *AccountService) CustomerOutstanding(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return s.receivableRepo.SumOutstandingByCustomer(ctx, customerID)
}

// GetPayable retrieves a payable with its payment records
func (s *AccountService) GetPayable(ctx context.Context, id uuid.UUID) (*PayableResponse, error) {
	ap, err := s.payableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPayableResponse(ap)
	return &resp, nil
}

// ListPayables lists payables matching the filter. Setting Outstanding
// restricts the result to unsettled accounts.
func (s *AccountService) ListPayables(ctx context.Context, filter ListFilter) (*shared.Paginated[PayableResponse], error) {
	domainFilter := toDomainFilter(filter)

	var (
		payables []finance.AccountPayable
		err      error
	)
	if filter.Outstanding {
		payables, err = s.payableRepo.FindOutstanding(ctx, domainFilter)
	} else {
		payables, err = s.payableRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.payableRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]PayableResponse, len(payables))
	for i := range payables {
		items[i] = ToPayableResponse(&payables[i])
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// RecordPayment registers a payment made against a payable
func (s *AccountService) RecordPayment(ctx context.Context, id uuid.UUID, req RecordPaymentRequest) (*PayableResponse, error) {
	ap, err := s.payableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := ap.RecordPayment(req.Amount, req.Method, req.Remark); err != nil {
		return nil, err
	}

	if err := s.payableRepo.Save(ctx, ap); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, ap)

	resp := ToPayableResponse(ap)
	return &resp, nil
}

// SupplierOutstanding sums the unpaid balance across a supplier's accounts
func (s *AccountService) SupplierOutstanding(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	return s.payableRepo.SumOutstandingBySupplier(ctx, supplierID)
}

// toDomainFilter normalizes a list filter into a repository filter
func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
