package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/shared"
	"github.com/yarntrade/backend/internal/domain/trade"
)

// PurchaseOrderService handles purchase order use cases. Stock-in runs
// inside a transaction scope: the status transition and the batch writes
// it implies commit together or not at all.
type PurchaseOrderService struct {
	orderRepo      trade.PurchaseOrderRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(orderRepo trade.PurchaseOrderRepository, txScope TransactionScope) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PurchaseOrderService) publishDomainEvents(ctx context.Context, order *trade.PurchaseOrder) {
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

// Create creates a purchase order. Unless the request asks for a draft,
// the order is submitted, approved and stocked in immediately.
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewPurchaseOrder(orderNumber, req.SupplierID, req.SupplierName, req.OrderDate)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if _, err := order.AddItem(item.ProductID, item.ProductName, item.ColorID, item.ColorName, item.BatchCode, item.Quantity, item.UnitPrice, item.PieceCount); err != nil {
			return nil, err
		}
	}
	if req.Remark != "" {
		order.SetRemark(req.Remark)
	}

	if req.SaveAsDraft {
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return nil, err
		}
		s.publishDomainEvents(ctx, order)
		resp := ToPurchaseOrderResponse(order)
		return &resp, nil
	}

	if err := order.SubmitForReview(); err != nil {
		return nil, err
	}
	if err := order.Approve(); err != nil {
		return nil, err
	}

	if err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return stockInPurchaseOrder(ctx, repos, order)
	}); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// StockIn performs the ledger mutation for a reviewed order: one new batch
// per line, or a balance increase when the batch code already exists for
// the colorway. The status guard makes the mutation fire at most once.
func (s *PurchaseOrderService) StockIn(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	var order *trade.PurchaseOrder

	if err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.PurchaseOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		order = found
		return stockInPurchaseOrder(ctx, repos, order)
	}); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// stockInPurchaseOrder applies the order's lines to the batch ledger and
// marks the order stocked in, all against the transaction-scoped repos.
func stockInPurchaseOrder(ctx context.Context, repos TransactionalRepositories, order *trade.PurchaseOrder) error {
	// The transition is checked first so a replayed order fails before
	// any ledger write.
	if err := order.MarkStockedIn(); err != nil {
		return err
	}

	batches := repos.BatchRepo()
	for _, item := range order.Items {
		existing, err := batches.FindByColorAndCode(ctx, item.ColorID, item.BatchCode)
		switch {
		case err == nil:
			if err := batches.AdjustStock(ctx, existing.ID, item.Quantity); err != nil {
				return err
			}
		case errors.Is(err, shared.ErrNotFound):
			batch, err := catalog.NewBatch(item.ColorID, item.BatchCode, item.Quantity, catalog.BatchAttributes{
				ProductionDate: &order.OrderDate,
				SupplierID:     &order.SupplierID,
				SupplierName:   order.SupplierName,
				PurchasePrice:  item.UnitPrice,
				PieceCount:     item.PieceCount,
			})
			if err != nil {
				return err
			}
			if err := batches.Save(ctx, batch); err != nil {
				return err
			}
		default:
			return err
		}
	}

	return repos.PurchaseOrderRepo().Save(ctx, order)
}

// SubmitForReview moves a draft order into review
func (s *PurchaseOrderService) SubmitForReview(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, (*trade.PurchaseOrder).SubmitForReview)
}

// Approve marks a pending order as reviewed
func (s *PurchaseOrderService) Approve(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, (*trade.PurchaseOrder).Approve)
}

func (s *PurchaseOrderService) transition(ctx context.Context, id uuid.UUID, fn func(*trade.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// Void voids an order that has not touched the ledger
func (s *PurchaseOrderService) Void(ctx context.Context, id uuid.UUID, reason string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Void(reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// RecordPayment records a payment against the order
func (s *PurchaseOrderService) RecordPayment(ctx context.Context, id uuid.UUID, req PaymentRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.RecordPayment(req.Amount); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// UpdateItem updates one line of a modifiable order
func (s *PurchaseOrderService) UpdateItem(ctx context.Context, id, itemID uuid.UUID, req ItemUpdateRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.UpdateItem(itemID, req.Quantity, req.UnitPrice, req.PieceCount); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// RemoveItem removes one line from a modifiable order
func (s *PurchaseOrderService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
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
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// Delete deletes a draft order
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, id)
}

// Get retrieves a purchase order by ID
func (s *PurchaseOrderService) Get(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// List retrieves purchase orders with pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[PurchaseOrderResponse], error) {
	domainFilter := toOrderFilter(filter)

	var (
		orders []trade.PurchaseOrder
		err    error
	)
	if filter.Status != "" {
		orders, err = s.orderRepo.FindByStatus(ctx, trade.PurchaseOrderStatus(filter.Status), domainFilter)
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

	responses := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderResponse(&orders[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// toOrderFilter normalizes a list filter into a repository filter
func toOrderFilter(filter OrderListFilter) shared.Filter {
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
