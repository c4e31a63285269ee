package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/inventory"
	"github.com/yarntrade/backend/internal/domain/shared"
)

// StockCheckService handles physical inventory counts. A check snapshots
// system quantities when planned, collects actual counts, and once
// completed can generate a draft adjustment order carrying its
// differences. Completing the check itself never touches the ledger.
type StockCheckService struct {
	checkRepo      inventory.StockCheckRepository
	adjustmentRepo inventory.AdjustmentOrderRepository
	batchRepo      catalog.BatchRepository
	colorRepo      catalog.ColorRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewStockCheckService creates a new stock check service
func NewStockCheckService(
	checkRepo inventory.StockCheckRepository,
	adjustmentRepo inventory.AdjustmentOrderRepository,
	batchRepo catalog.BatchRepository,
	colorRepo catalog.ColorRepository,
	productRepo catalog.ProductRepository,
) *StockCheckService {
	return &StockCheckService{
		checkRepo:      checkRepo,
		adjustmentRepo: adjustmentRepo,
		batchRepo:      batchRepo,
		colorRepo:      colorRepo,
		productRepo:    productRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *StockCheckService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *StockCheckService) publishDomainEvents(ctx context.Context, aggregate interface {
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

// Create plans a stock check over the given batches, snapshotting each
// batch's system quantity at this moment.
func (s *StockCheckService) Create(ctx context.Context, req CreateStockCheckRequest) (*StockCheckResponse, error) {
	orderNumber, err := s.checkRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	check, err := inventory.NewStockCheck(orderNumber, req.Name, req.StockLocation)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		check.Remark = req.Remark
	}

	batches, err := s.batchRepo.FindByIDs(ctx, req.BatchIDs)
	if err != nil {
		return nil, err
	}
	if len(batches) != len(req.BatchIDs) {
		return nil, shared.NewDomainError("INVALID_BATCH", "One or more batches do not exist")
	}

	for i := range batches {
		batch := &batches[i]
		productName, colorName := s.lookupNames(ctx, batch.ColorID)
		if _, err := check.AddItem(batch.ID, batch.Code, productName, colorName, batch.StockQuantity); err != nil {
			return nil, err
		}
	}

	if err := s.checkRepo.Save(ctx, check); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, check)

	resp := ToStockCheckResponse(check)
	return &resp, nil
}

// lookupNames resolves the display names for a check line. Name lookups
// are best effort; a missing color leaves the names blank rather than
// failing the whole check.
func (s *StockCheckService) lookupNames(ctx context.Context, colorID uuid.UUID) (productName, colorName string) {
	color, err := s.colorRepo.FindByID(ctx, colorID)
	if err != nil {
		return "", ""
	}
	colorName = color.Name
	if product, err := s.productRepo.FindByID(ctx, color.ProductID); err == nil {
		productName = product.Name
	}
	return productName, colorName
}

// StartCounting moves a planned check into counting
func (s *StockCheckService) StartCounting(ctx context.Context, id uuid.UUID) (*StockCheckResponse, error) {
	check, err := s.checkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := check.StartCounting(); err != nil {
		return nil, err
	}
	if err := s.checkRepo.Save(ctx, check); err != nil {
		return nil, err
	}
	resp := ToStockCheckResponse(check)
	return &resp, nil
}

// RecordCount records the actual quantity counted for one item. Recounts
// overwrite the previous entry.
func (s *StockCheckService) RecordCount(ctx context.Context, id, itemID uuid.UUID, actualQuantity decimal.Decimal) (*StockCheckResponse, error) {
	check, err := s.checkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := check.RecordCount(itemID, actualQuantity); err != nil {
		return nil, err
	}
	if err := s.checkRepo.Save(ctx, check); err != nil {
		return nil, err
	}
	resp := ToStockCheckResponse(check)
	return &resp, nil
}

// Complete closes a fully counted check
func (s *StockCheckService) Complete(ctx context.Context, id uuid.UUID) (*StockCheckResponse, error) {
	check, err := s.checkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := check.Complete(); err != nil {
		return nil, err
	}
	if err := s.checkRepo.Save(ctx, check); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, check)

	resp := ToStockCheckResponse(check)
	return &resp, nil
}

// Cancel abandons a check before completion
func (s *StockCheckService) Cancel(ctx context.Context, id uuid.UUID) (*StockCheckResponse, error) {
	check, err := s.checkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := check.Cancel(); err != nil {
		return nil, err
	}
	if err := s.checkRepo.Save(ctx, check); err != nil {
		return nil, err
	}
	resp := ToStockCheckResponse(check)
	return &resp, nil
}

// GenerateAdjustment creates a draft adjustment order carrying the
// completed check's differences: surpluses as positive deltas, deficits
// as negative ones. The draft still goes through the normal adjustment
// completion before the ledger moves.
func (s *StockCheckService) GenerateAdjustment(ctx context.Context, id uuid.UUID) (*AdjustmentResponse, error) {
	check, err := s.checkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !check.IsCompleted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only completed checks can generate adjustments")
	}
	if !check.HasDifferences() {
		return nil, shared.NewDomainError("NO_DIFFERENCES", "Check has no differences to adjust")
	}

	existing, err := s.adjustmentRepo.FindBySourceCheck(ctx, check.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, shared.NewDomainError("ALREADY_GENERATED", "An adjustment was already generated from this check")
	}

	orderNumber, err := s.adjustmentRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := inventory.NewAdjustmentOrder(orderNumber, inventory.AdjustmentTypeOther, fmt.Sprintf("Stock check %s", check.OrderNumber))
	if err != nil {
		return nil, err
	}
	for _, item := range check.DifferenceItems() {
		if _, err := order.AddItem(item.BatchID, item.BatchCode, item.ProductName, item.ColorName, item.Difference); err != nil {
			return nil, err
		}
	}
	if err := order.LinkSourceCheck(check.ID); err != nil {
		return nil, err
	}

	if err := s.adjustmentRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToAdjustmentResponse(order)
	return &resp, nil
}

// Get retrieves a stock check by ID
func (s *StockCheckService) Get(ctx context.Context, id uuid.UUID) (*StockCheckResponse, error) {
	check, err := s.checkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToStockCheckResponse(check)
	return &resp, nil
}

// List retrieves stock checks with pagination
func (s *StockCheckService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[StockCheckResponse], error) {
	domainFilter := toDomainFilter(filter)

	var (
		checks []inventory.StockCheck
		err    error
	)
	if filter.Status != "" {
		checks, err = s.checkRepo.FindByStatus(ctx, inventory.StockCheckStatus(filter.Status), domainFilter)
	} else {
		checks, err = s.checkRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.checkRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockCheckResponse, len(checks))
	for i := range checks {
		responses[i] = ToStockCheckResponse(&checks[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}
