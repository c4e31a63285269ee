package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yarntrade/backend/internal/domain/finance"
	"github.com/yarntrade/backend/internal/domain/shared"
)

// GormAccountReceivableRepository implements AccountReceivableRepository using GORM
type GormAccountReceivableRepository struct {
	db *gorm.DB
}

// NewGormAccountReceivableRepository creates a new GormAccountReceivableRepository
func NewGormAccountReceivableRepository(db *gorm.DB) *GormAccountReceivableRepository {
	return &GormAccountReceivableRepository{db: db}
}

// FindByID finds a receivable with its receipt records
func (r *GormAccountReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountReceivable, error) {
	var ar finance.AccountReceivable
	if err := r.db.WithContext(ctx).
		Preload("Records").
		First(&ar, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ar, nil
}

// FindBySourceOrder finds the receivable raised for an order
func (r *GormAccountReceivableRepository) FindBySourceOrder(ctx context.Context, orderID uuid.UUID) (*finance.AccountReceivable, error) {
	var ar finance.AccountReceivable
	if err := r.db.WithContext(ctx).
		Preload("Records").
		First(&ar, "source_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ar, nil
}

// FindByCustomer finds receivables for a customer
func (r *GormAccountReceivableRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.AccountReceivable, error) {
	var accounts []finance.AccountReceivable
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.AccountReceivable{}).
			Where("customer_id = ?", customerID),
		filter,
	)
	if err := query.Preload("Records").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindOutstanding finds receivables not yet settled
func (r *GormAccountReceivableRepository) FindOutstanding(ctx context.Context, filter shared.Filter) ([]finance.AccountReceivable, error) {
	var accounts []finance.AccountReceivable
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.AccountReceivable{}).
			Where("status = ?", finance.AccountStatusOutstanding),
		filter,
	)
	if err := query.Preload("Records").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindAll finds receivables matching the filter
func (r *GormAccountReceivableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.AccountReceivable, error) {
	var accounts []finance.AccountReceivable
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.AccountReceivable{}), filter)
	if err := query.Preload("Records").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save creates or updates a receivable with its records
func (r *GormAccountReceivableRepository) Save(ctx context.Context, ar *finance.AccountReceivable) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(ar).Error
}

// Count counts receivables matching the filter
func (r *GormAccountReceivableRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&finance.AccountReceivable{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumOutstandingByCustomer sums the unpaid balance across a customer's accounts
func (r *GormAccountReceivableRepository) SumOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&finance.AccountReceivable{}).
		Select("SUM(unpaid_amount)").
		Where("customer_id = ? AND status = ?", customerID, finance.AccountStatusOutstanding).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// applyFilter applies pagination, ordering and conditions to the query
func (r *GormAccountReceivableRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AccountReceivableSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyConditions applies search and filter conditions without pagination
func (r *GormAccountReceivableRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(source_order_no) LIKE LOWER(?) OR LOWER(customer_name) LIKE LOWER(?)", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}

	return query
}

var _ finance.AccountReceivableRepository = (*GormAccountReceivableRepository)(nil)
