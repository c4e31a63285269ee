package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yarntrade/backend/internal/domain/finance"
	"github.com/yarntrade/backend/internal/domain/shared"
	"github.com/yarntrade/backend/internal/domain/trade"
)

// PurchaseStockedInHandler raises a payable to the supplier when a
// purchase order reaches stock. Fully prepaid orders raise nothing.
type PurchaseStockedInHandler struct {
	logger      *zap.Logger
	payableRepo finance.AccountPayableRepository
}

// NewPurchaseStockedInHandler creates a handler for purchase stock-in events
func NewPurchaseStockedInHandler(logger *zap.Logger, payableRepo finance.AccountPayableRepository) *PurchaseStockedInHandler {
	return &PurchaseStockedInHandler{
		logger:      logger,
		payableRepo: payableRepo,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PurchaseStockedInHandler) EventTypes() []string {
	return []string{trade.EventTypePurchaseOrderStockedIn}
}

// Handle processes a PurchaseOrderStockedInEvent
func (h *PurchaseStockedInHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	stockedIn, ok := event.(*trade.PurchaseOrderStockedInEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypePurchaseOrderStockedIn, event.EventType())
	}

	if !stockedIn.UnpaidAmount.IsPositive() {
		h.logger.Debug("purchase order fully paid, no payable raised",
			zap.String("order_number", stockedIn.OrderNumber),
		)
		return nil
	}

	return raisePayable(ctx, h.logger, h.payableRepo, payableSource{
		orderID:      stockedIn.OrderID,
		orderNumber:  stockedIn.OrderNumber,
		supplierID:   stockedIn.SupplierID,
		supplierName: stockedIn.SupplierName,
		principal:    stockedIn.TotalAmount,
		alreadyPaid:  stockedIn.PaidAmount,
	})
}

var _ shared.EventHandler = (*PurchaseStockedInHandler)(nil)

// SalesStockedOutHandler raises a receivable from the customer when a
// sales order's batches have been decreased
type SalesStockedOutHandler struct {
	logger         *zap.Logger
	receivableRepo finance.AccountReceivableRepository
}

// NewSalesStockedOutHandler creates a handler for sales stock-out events
func NewSalesStockedOutHandler(logger *zap.Logger, receivableRepo finance.AccountReceivableRepository) *SalesStockedOutHandler {
	return &SalesStockedOutHandler{
		logger:         logger,
		receivableRepo: receivableRepo,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SalesStockedOutHandler) EventTypes() []string {
	return []string{trade.EventTypeSalesOrderStockedOut}
}

// Handle processes a SalesOrderStockedOutEvent
func (h *SalesStockedOutHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	stockedOut, ok := event.(*trade.SalesOrderStockedOutEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeSalesOrderStockedOut, event.EventType())
	}

	if !stockedOut.UnreceivedAmount.IsPositive() {
		h.logger.Debug("sales order fully received, no receivable raised",
			zap.String("order_number", stockedOut.OrderNumber),
		)
		return nil
	}

	// A re-delivered event must not raise a second account for the order
	existing, err := h.receivableRepo.FindBySourceOrder(ctx, stockedOut.OrderID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing != nil {
		h.logger.Debug("receivable already exists for order",
			zap.String("order_number", stockedOut.OrderNumber),
		)
		return nil
	}

	ar, err := finance.NewAccountReceivable(
		stockedOut.OrderID,
		stockedOut.OrderNumber,
		stockedOut.CustomerID,
		stockedOut.CustomerName,
		stockedOut.TotalAmount,
		stockedOut.ReceivedAmount,
	)
	if err != nil {
		return err
	}

	if err := h.receivableRepo.Save(ctx, ar); err != nil {
		return err
	}

	h.logger.Info("receivable raised",
		zap.String("order_number", stockedOut.OrderNumber),
		zap.String("customer", stockedOut.CustomerName),
		zap.String("unpaid", ar.UnpaidAmount.String()),
	)
	return nil
}

var _ shared.EventHandler = (*SalesStockedOutHandler)(nil)

// DyeingStockedInHandler raises a payable to the dyeing factory for the
// full processing fee when the dyed batches enter stock
type DyeingStockedInHandler struct {
	logger      *zap.Logger
	payableRepo finance.AccountPayableRepository
}

// NewDyeingStockedInHandler creates a handler for dyeing stock-in events
func NewDyeingStockedInHandler(logger *zap.Logger, payableRepo finance.AccountPayableRepository) *DyeingStockedInHandler {
	return &DyeingStockedInHandler{
		logger:      logger,
		payableRepo: payableRepo,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *DyeingStockedInHandler) EventTypes() []string {
	return []string{trade.EventTypeDyeingOrderStockedIn}
}

// Handle processes a DyeingOrderStockedInEvent
func (h *DyeingStockedInHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	stockedIn, ok := event.(*trade.DyeingOrderStockedInEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeDyeingOrderStockedIn, event.EventType())
	}

	if !stockedIn.TotalAmount.IsPositive() {
		h.logger.Debug("dyeing order has no processing fee, no payable raised",
			zap.String("order_number", stockedIn.OrderNumber),
		)
		return nil
	}

	return raisePayable(ctx, h.logger, h.payableRepo, payableSource{
		orderID:      stockedIn.OrderID,
		orderNumber:  stockedIn.OrderNumber,
		supplierID:   stockedIn.FactoryID,
		supplierName: stockedIn.FactoryName,
		principal:    stockedIn.TotalAmount,
		alreadyPaid:  decimal.Zero,
	})
}

var _ shared.EventHandler = (*DyeingStockedInHandler)(nil)

type payableSource struct {
	orderID      uuid.UUID
	orderNumber  string
	supplierID   uuid.UUID
	supplierName string
	principal    decimal.Decimal
	alreadyPaid  decimal.Decimal
}

// raisePayable creates the payable for an order unless one already exists
func raisePayable(ctx context.Context, logger *zap.Logger, repo finance.AccountPayableRepository, src payableSource) error {
	existing, err := repo.FindBySourceOrder(ctx, src.orderID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing != nil {
		logger.Debug("payable already exists for order",
			zap.String("order_number", src.orderNumber),
		)
		return nil
	}

	ap, err := finance.NewAccountPayable(
		src.orderID,
		src.orderNumber,
		src.supplierID,
		src.supplierName,
		src.principal,
		src.alreadyPaid,
	)
	if err != nil {
		return err
	}

	if err := repo.Save(ctx, ap); err != nil {
		return err
	}

	logger.Info("payable raised",
		zap.String("order_number", src.orderNumber),
		zap.String("supplier", src.supplierName),
		zap.String("unpaid", ap.UnpaidAmount.String()),
	)
	return nil
}
