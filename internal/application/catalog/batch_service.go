package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/shared"
)

// BatchService handles the batch ledger use cases: creating batches and
// moving their stock balance. Relative moves go through the repository's
// atomic AdjustStock so concurrent callers serialize at the database;
// absolute overrides load the aggregate and save it back.
type BatchService struct {
	colorRepo      catalog.ColorRepository
	batchRepo      catalog.BatchRepository
	eventPublisher shared.EventPublisher
}

// NewBatchService creates a new batch service
func NewBatchService(colorRepo catalog.ColorRepository, batchRepo catalog.BatchRepository) *BatchService {
	return &BatchService{
		colorRepo: colorRepo,
		batchRepo: batchRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *BatchService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *BatchService) publishDomainEvents(ctx context.Context, batch *catalog.Batch) {
	if s.eventPublisher == nil {
		return
	}
	events := batch.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	batch.ClearDomainEvents()
}

// CreateBatch creates a new batch under a colorway
func (s *BatchService) CreateBatch(ctx context.Context, colorID uuid.UUID, req CreateBatchRequest) (*BatchResponse, error) {
	if _, err := s.colorRepo.FindByID(ctx, colorID); err != nil {
		return nil, err
	}

	exists, err := s.batchRepo.ExistsByColorAndCode(ctx, colorID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "Batch code is already in use for this colorway")
	}

	batch, err := catalog.NewBatch(colorID, req.Code, req.InitialQuantity, catalog.BatchAttributes{
		ProductionDate: req.ProductionDate,
		SupplierID:     req.SupplierID,
		SupplierName:   req.SupplierName,
		PurchasePrice:  req.PurchasePrice,
		StockLocation:  req.StockLocation,
		Remark:         req.Remark,
		PieceCount:     req.PieceCount,
	})
	if err != nil {
		return nil, err
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, batch)

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// IncreaseStock adds stock to a batch
func (s *BatchService) IncreaseStock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*BatchResponse, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidAmount
	}

	if err := s.batchRepo.AdjustStock(ctx, id, amount); err != nil {
		return nil, err
	}

	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, catalog.NewBatchStockIncreasedEvent(batch, amount))
	}

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// DecreaseStock removes stock from a batch. A decrease that would drive
// the balance negative is rejected with shared.ErrInsufficientStock.
func (s *BatchService) DecreaseStock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*BatchResponse, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidAmount
	}

	if err := s.batchRepo.AdjustStock(ctx, id, amount.Neg()); err != nil {
		return nil, err
	}

	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, catalog.NewBatchStockDecreasedEvent(batch, amount))
	}

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// SetStock overrides a batch balance to an absolute value
func (s *BatchService) SetStock(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := batch.SetStock(quantity); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, batch)

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// UpdateBatch updates a batch's descriptive attributes
func (s *BatchService) UpdateBatch(ctx context.Context, id uuid.UUID, attrs catalog.BatchAttributes) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := batch.UpdateAttributes(attrs); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// DeleteBatch deletes a batch. Deletion is refused while it holds stock.
func (s *BatchService) DeleteBatch(ctx context.Context, id uuid.UUID) error {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if batch.HasStock() {
		return shared.NewDomainError("HAS_STOCK", "Cannot delete a batch that still holds stock")
	}
	return s.batchRepo.Delete(ctx, id)
}

// GetBatch retrieves a batch by ID
func (s *BatchService) GetBatch(ctx context.Context, id uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBatchResponse(batch)
	return &resp, nil
}

// ListBatches retrieves the batches of a colorway
func (s *BatchService) ListBatches(ctx context.Context, colorID uuid.UUID, filter ListFilter) ([]BatchResponse, error) {
	batches, err := s.batchRepo.FindByColor(ctx, colorID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]BatchResponse, len(batches))
	for i := range batches {
		responses[i] = ToBatchResponse(&batches[i])
	}
	return responses, nil
}

// ListBatchesWithStock retrieves batches of a colorway that still hold stock
func (s *BatchService) ListBatchesWithStock(ctx context.Context, colorID uuid.UUID) ([]BatchResponse, error) {
	batches, err := s.batchRepo.FindWithStock(ctx, colorID)
	if err != nil {
		return nil, err
	}

	responses := make([]BatchResponse, len(batches))
	for i := range batches {
		responses[i] = ToBatchResponse(&batches[i])
	}
	return responses, nil
}

// ColorStockSummary reports the aggregate balance of a colorway
func (s *BatchService) ColorStockSummary(ctx context.Context, colorID uuid.UUID) (decimal.Decimal, error) {
	return s.batchRepo.SumStockByColor(ctx, colorID)
}
