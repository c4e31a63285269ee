package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/yarntrade/backend/internal/domain/shared"
	"github.com/yarntrade/backend/internal/domain/trade"
)

// SalesOrderService handles sales order use cases. Stock-out decreases
// each line's batch balance through the atomic conditional update; one
// short line aborts the whole transaction so no partial shipment is ever
// recorded.
type SalesOrderService struct {
	orderRepo      trade.SalesOrderRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewSalesOrderService creates a new sales order service
func NewSalesOrderService(orderRepo trade.SalesOrderRepository, txScope TransactionScope) *SalesOrderService {
	return &SalesOrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *SalesOrderService) publishDomainEvents(ctx context.Context, order *trade.SalesOrder) {
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

// Create creates a sales order. Unless the request asks for a draft, the
// order is submitted, approved and stocked out immediately.
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewSalesOrder(orderNumber, req.CustomerID, req.CustomerName, req.OrderDate)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if _, err := order.AddItem(item.BatchID, item.ProductName, item.ColorName, item.BatchCode, item.Quantity, item.UnitPrice, item.PieceCount); err != nil {
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
		resp := ToSalesOrderResponse(order)
		return &resp, nil
	}

	if err := order.SubmitForReview(); err != nil {
		return nil, err
	}
	if err := order.Approve(); err != nil {
		return nil, err
	}

	if err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return stockOutSalesOrder(ctx, repos, order)
	}); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// StockOut performs the ledger mutation for a reviewed order. Every line
// must be covered by its batch; an insufficient balance anywhere rolls the
// whole operation back.
func (s *SalesOrderService) StockOut(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder

	if err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.SalesOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		order = found
		return stockOutSalesOrder(ctx, repos, order)
	}); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// stockOutSalesOrder decreases each line's batch balance and marks the
// order stocked out, all against the transaction-scoped repos.
func stockOutSalesOrder(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder) error {
	if err := order.MarkStockedOut(); err != nil {
		return err
	}

	batches := repos.BatchRepo()
	for _, item := range order.Items {
		if err := batches.AdjustStock(ctx, item.BatchID, item.Quantity.Neg()); err != nil {
			return err
		}
	}

	return repos.SalesOrderRepo().Save(ctx, order)
}

// SubmitForReview moves a draft order into review
func (s *SalesOrderService) SubmitForReview(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, id, (*trade.SalesOrder).SubmitForReview)
}

// Approve marks a pending order as reviewed
func (s *SalesOrderService) Approve(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, id, (*trade.SalesOrder).Approve)
}

func (s *SalesOrderService) transition(ctx context.Context, id uuid.UUID, fn func(*trade.SalesOrder) error) (*SalesOrderResponse, error) {
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
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// Void voids an order that has not touched the ledger
func (s *SalesOrderService) Void(ctx context.Context, id uuid.UUID, reason string) (*SalesOrderResponse, error) {
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

	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// RecordReceipt records money received against the order
func (s *SalesOrderService) RecordReceipt(ctx context.Context, id uuid.UUID, req PaymentRequest) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.RecordReceipt(req.Amount); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// UpdateItem updates one line of a modifiable order
func (s *SalesOrderService) UpdateItem(ctx context.Context, id, itemID uuid.UUID, req ItemUpdateRequest) (*SalesOrderResponse, error) {
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
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// RemoveItem removes one line from a modifiable order
func (s *SalesOrderService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*SalesOrderResponse, error) {
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
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// Delete deletes a draft order
func (s *SalesOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, id)
}

// Get retrieves a sales order by ID
func (s *SalesOrderService) Get(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// List retrieves sales orders with pagination
func (s *SalesOrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[SalesOrderResponse], error) {
	domainFilter := toOrderFilter(filter)

	var (
		orders []trade.SalesOrder
		err    error
	)
	if filter.Status != "" {
		orders, err = s.orderRepo.FindByStatus(ctx, trade.SalesOrderStatus(filter.Status), domainFilter)
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

	responses := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToSalesOrderResponse(&orders[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}
