package finance

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/yarntrade/backend/internal/domain/finance"
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

// MockAccountReceivableRepository is a mock implementation of finance.AccountReceivableRepository
type MockAccountReceivableRepository struct {
	mock.Mock
}

func (m *MockAccountReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountReceivable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountReceivable), args.Error(1)
}

func (m *MockAccountReceivableRepository) FindBySourceOrder(ctx context.Context, orderID uuid.UUID) (*finance.AccountReceivable, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountReceivable), args.Error(1)
}

func (m *MockAccountReceivableRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func (m *MockAccountReceivableRepository) FindOutstanding(ctx context.Context, filter shared.Filter) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func (m *MockAccountReceivableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func (m *MockAccountReceivableRepository) Save(ctx context.Context, ar *finance.AccountReceivable) error {
	args := m.Called(ctx, ar)
	return args.Error(0)
}

func (m *MockAccountReceivableRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountReceivableRepository) SumOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockAccountPayableRepository is a mock implementation of finance.AccountPayableRepository
type MockAccountPayableRepository struct {
	mock.Mock
}

func (m *MockAccountPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindBySourceOrder(ctx context.Context, orderID uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindOutstanding(ctx context.Context, filter shared.Filter) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) Save(ctx context.Context, ap *finance.AccountPayable) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountPayableRepository) SumOutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
