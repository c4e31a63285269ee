package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/shared"
)

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByType(ctx context.Context, productType catalog.ProductType, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, productType, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindWhiteYarns(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(bool), args.Error(1)
}

// MockColorRepository is a mock implementation of catalog.ColorRepository
type MockColorRepository struct {
	mock.Mock
}

func (m *MockColorRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Color, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Color), args.Error(1)
}

func (m *MockColorRepository) FindByProductAndCode(ctx context.Context, productID uuid.UUID, code string) (*catalog.Color, error) {
	args := m.Called(ctx, productID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Color), args.Error(1)
}

func (m *MockColorRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]catalog.Color, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]catalog.Color), args.Error(1)
}

func (m *MockColorRepository) FindOnSaleByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Color, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.Color), args.Error(1)
}

func (m *MockColorRepository) Save(ctx context.Context, color *catalog.Color) error {
	args := m.Called(ctx, color)
	return args.Error(0)
}

func (m *MockColorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockColorRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockColorRepository) ExistsByProductAndCode(ctx context.Context, productID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, productID, code)
	return args.Get(0).(bool), args.Error(1)
}

// MockBatchRepository is a mock implementation of catalog.BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByColorAndCode(ctx context.Context, colorID uuid.UUID, code string) (*catalog.Batch, error) {
	args := m.Called(ctx, colorID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByColor(ctx context.Context, colorID uuid.UUID, filter shared.Filter) ([]catalog.Batch, error) {
	args := m.Called(ctx, colorID, filter)
	return args.Get(0).([]catalog.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Batch, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindWithStock(ctx context.Context, colorID uuid.UUID) ([]catalog.Batch, error) {
	args := m.Called(ctx, colorID)
	return args.Get(0).([]catalog.Batch), args.Error(1)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *catalog.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBatchRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockBatchRepository) SumStockByColor(ctx context.Context, colorID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, colorID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBatchRepository) SumStockByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBatchRepository) CountByColor(ctx context.Context, colorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, colorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBatchRepository) ExistsByColorAndCode(ctx context.Context, colorID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, colorID, code)
	return args.Get(0).(bool), args.Error(1)
}

func (m *MockBatchRepository) NextDyedBatchSequence(ctx context.Context, colorID uuid.UUID, prefix string) (int, error) {
	args := m.Called(ctx, colorID, prefix)
	return args.Get(0).(int), args.Error(1)
}
