package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/shared"
	"github.com/yarntrade/backend/internal/domain/trade"
)

// DyeingOrderService handles outsourced dyeing use cases. Stock-in turns
// each target colorway into a new dyed batch, creating the colorway on
// the fly when it does not exist yet; all lines land together or the
// operation rolls back.
type DyeingOrderService struct {
	orderRepo      trade.DyeingOrderRepository
	batchRepo      catalog.BatchRepository
	colorRepo      catalog.ColorRepository
	productRepo    catalog.ProductRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewDyeingOrderService creates a new dyeing order service
func NewDyeingOrderService(orderRepo trade.DyeingOrderRepository, batchRepo catalog.BatchRepository, colorRepo catalog.ColorRepository, productRepo catalog.ProductRepository, txScope TransactionScope) *DyeingOrderService {
	return &DyeingOrderService{
		orderRepo:   orderRepo,
		batchRepo:   batchRepo,
		colorRepo:   colorRepo,
		productRepo: productRepo,
		txScope:     txScope,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *DyeingOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *DyeingOrderService) publishDomainEvents(ctx context.Context, order *trade.DyeingOrder) {
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

// Create creates a dyeing order awaiting shipment to the factory. The
// grey batch must exist, belong to the given product and carry the
// white-yarn flag; its balance is not touched.
func (s *DyeingOrderService) Create(ctx context.Context, req CreateDyeingOrderRequest) (*DyeingOrderResponse, error) {
	greyBatch, err := s.batchRepo.FindByID(ctx, req.GreyBatchID)
	if err != nil {
		return nil, err
	}

	greyColor, err := s.colorRepo.FindByID(ctx, greyBatch.ColorID)
	if err != nil {
		return nil, err
	}
	if greyColor.ProductID != req.ProductID {
		return nil, shared.NewDomainError("GREY_BATCH_MISMATCH", "Grey batch does not belong to the given product")
	}
	product, err := s.productRepo.FindByID(ctx, greyColor.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsWhiteYarn {
		return nil, shared.NewDomainError("NOT_WHITE_YARN", "Grey batch must come from a white yarn product")
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewDyeingOrder(orderNumber, req.ProductID, req.ProductName, greyBatch.ID, greyBatch.Code, req.FactoryID, req.FactoryName, req.ProcessingPrice)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if _, err := order.AddItem(item.TargetColorID, item.TargetColorCode, item.TargetColorName, item.TargetColorValue, item.Quantity); err != nil {
			return nil, err
		}
	}
	if req.ExpectedCompletionDate != nil {
		order.SetExpectedCompletionDate(*req.ExpectedCompletionDate)
	}
	if req.Remark != "" {
		order.SetRemark(req.Remark)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToDyeingOrderResponse(order)
	return &resp, nil
}

// Ship records that the grey yarn left for the factory
func (s *DyeingOrderService) Ship(ctx context.Context, id uuid.UUID) (*DyeingOrderResponse, error) {
	return s.transition(ctx, id, (*trade.DyeingOrder).Ship)
}

// Complete records that the factory finished the job
func (s *DyeingOrderService) Complete(ctx context.Context, id uuid.UUID, actualDate time.Time) (*DyeingOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Complete(actualDate); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToDyeingOrderResponse(order)
	return &resp, nil
}

// StockIn books the dyed output into the ledger: one new batch per target
// colorway, coded after the grey batch and the target color. Colorways
// that do not exist yet are created on the fly.
func (s *DyeingOrderService) StockIn(ctx context.Context, id uuid.UUID, stockLocation string) (*DyeingOrderResponse, error) {
	var order *trade.DyeingOrder

	if err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.DyeingOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		order = found

		if err := order.MarkStockedIn(); err != nil {
			return err
		}

		batches := repos.BatchRepo()
		colors := repos.ColorRepo()
		for i := range order.Items {
			item := &order.Items[i]

			color, err := resolveTargetColor(ctx, colors, order.ProductID, item)
			if err != nil {
				return err
			}
			item.TargetColorID = &color.ID

			seq, err := batches.NextDyedBatchSequence(ctx, color.ID, order.GreyBatchCode)
			if err != nil {
				return err
			}
			code := fmt.Sprintf("%s-%s-%d", order.GreyBatchCode, color.Code, seq)

			batch, err := catalog.NewBatch(color.ID, code, item.Quantity, catalog.BatchAttributes{
				ProductionDate: order.ActualCompletionDate,
				SupplierID:     &order.FactoryID,
				SupplierName:   order.FactoryName,
				PurchasePrice:  order.ProcessingPrice,
				StockLocation:  stockLocation,
				Remark:         fmt.Sprintf("Dyed from %s (%s)", order.GreyBatchCode, order.OrderNumber),
			})
			if err != nil {
				return err
			}
			if err := batches.Save(ctx, batch); err != nil {
				return err
			}
		}

		return repos.DyeingOrderRepo().Save(ctx, order)
	}); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToDyeingOrderResponse(order)
	return &resp, nil
}

// resolveTargetColor finds the target colorway by ID or by code within
// the product, creating it when it does not exist.
func resolveTargetColor(ctx context.Context, colors catalog.ColorRepository, productID uuid.UUID, item *trade.DyeingOrderItem) (*catalog.Color, error) {
	if item.TargetColorID != nil {
		return colors.FindByID(ctx, *item.TargetColorID)
	}

	color, err := colors.FindByProductAndCode(ctx, productID, item.TargetColorCode)
	if err == nil {
		return color, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	color, err = catalog.NewColor(productID, item.TargetColorCode, item.TargetColorName, item.TargetColorValue)
	if err != nil {
		return nil, err
	}
	if err := colors.Save(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

// Cancel cancels an order the factory has not completed
func (s *DyeingOrderService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*DyeingOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	resp := ToDyeingOrderResponse(order)
	return &resp, nil
}

// UpdateProcessingPrice updates the per-unit processing price of a
// modifiable order
func (s *DyeingOrderService) UpdateProcessingPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*DyeingOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.UpdateProcessingPrice(price); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToDyeingOrderResponse(order)
	return &resp, nil
}

func (s *DyeingOrderService) transition(ctx context.Context, id uuid.UUID, fn func(*trade.DyeingOrder) error) (*DyeingOrderResponse, error) {
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
	resp := ToDyeingOrderResponse(order)
	return &resp, nil
}

// Get retrieves a dyeing order by ID
func (s *DyeingOrderService) Get(ctx context.Context, id uuid.UUID) (*DyeingOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDyeingOrderResponse(order)
	return &resp, nil
}

// List retrieves dyeing orders with pagination
func (s *DyeingOrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[DyeingOrderResponse], error) {
	domainFilter := toOrderFilter(filter)

	var (
		orders []trade.DyeingOrder
		err    error
	)
	if filter.Status != "" {
		orders, err = s.orderRepo.FindByStatus(ctx, trade.DyeingOrderStatus(filter.Status), domainFilter)
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

	responses := make([]DyeingOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToDyeingOrderResponse(&orders[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}
