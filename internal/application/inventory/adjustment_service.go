package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/yarntrade/backend/internal/domain/inventory"
	"github.com/yarntrade/backend/internal/domain/shared"
)

// AdjustmentService handles manual stock corrections. Completing an order
// applies every line's signed delta to its batch inside one transaction;
// the order's status guard makes the application fire at most once.
type AdjustmentService struct {
	orderRepo      inventory.AdjustmentOrderRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewAdjustmentService creates a new adjustment service
func NewAdjustmentService(orderRepo inventory.AdjustmentOrderRepository, txScope TransactionScope) *AdjustmentService {
	return &AdjustmentService{
		orderRepo: orderRepo,
		txScope:   txScope,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *AdjustmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *AdjustmentService) publishDomainEvents(ctx context.Context, order *inventory.AdjustmentOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}

// Create creates a draft adjustment order. Lines for the same batch merge
// into one signed delta at entry time.
func (s *AdjustmentService) Create(ctx context.Context, req CreateAdjustmentRequest) (*AdjustmentResponse, error) {
	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := inventory.NewAdjustmentOrder(orderNumber, inventory.AdjustmentType(req.Type), req.Reason)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if _, err := order.AddItem(item.BatchID, item.BatchCode, item.ProductName, item.ColorName, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToAdjustmentResponse(order)
	return &resp, nil
}

// AddItem adds a correction line to a draft order
func (s *AdjustmentService) AddItem(ctx context.Context, id uuid.UUID, req AdjustmentItemRequest) (*AdjustmentResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := order.AddItem(req.BatchID, req.BatchCode, req.ProductName, req.ColorName, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToAdjustmentResponse(order)
	return &resp, nil
}

// RemoveItem removes a correction line from a draft order
func (s *AdjustmentService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*AdjustmentResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToAdjustmentResponse(order)
	return &resp, nil
}

// Complete applies the order's signed deltas to the batch ledger and marks
// it completed. Completing an already-completed order succeeds without
// touching the ledger again.
func (s *AdjustmentService) Complete(ctx context.Context, id uuid.UUID) (*AdjustmentResponse, error) {
	var order *inventory.AdjustmentOrder

	if err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.AdjustmentOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		order = found

		applied, err := order.Complete()
		if err != nil {
			return err
		}
		if !applied {
			return nil
		}

		batches := repos.BatchRepo()
		for _, item := range order.Items {
			if err := batches.AdjustStock(ctx, item.BatchID, item.Quantity); err != nil {
				return err
			}
		}

		return repos.AdjustmentOrderRepo().Save(ctx, order)
	}); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToAdjustmentResponse(order)
	return &resp, nil
}

// Delete deletes a draft order
func (s *AdjustmentService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, id)
}

// Get retrieves an adjustment order by ID
func (s *AdjustmentService) Get(ctx context.Context, id uuid.UUID) (*AdjustmentResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAdjustmentResponse(order)
	return &resp, nil
}

// List retrieves adjustment orders with pagination
func (s *AdjustmentService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[AdjustmentResponse], error) {
	domainFilter := toDomainFilter(filter)

	var (
		orders []inventory.AdjustmentOrder
		err    error
	)
	if filter.Status != "" {
		orders, err = s.orderRepo.FindByStatus(ctx, inventory.AdjustmentOrderStatus(filter.Status), domainFilter)
	} else {
		orders, err = s.orderRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]AdjustmentResponse, len(orders))
	for i := range orders {
		responses[i] = ToAdjustmentResponse(&orders[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
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
