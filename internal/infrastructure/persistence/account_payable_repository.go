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

// GormAccountPayableRepository implements AccountPayableRepository using GORM
type GormAccountPayableRepository struct {
	db *gorm.DB
}

// NewGormAccountPayableRepository creates a new GormAccountPayableRepository
func NewGormAccountPayableRepository(db *gorm.DB) *GormAccountPayableRepository {
	return &GormAccountPayableRepository{db: db}
}

// FindByID finds a payable with its payment records
func (r *GormAccountPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	var ap finance.AccountPayable
	if err := r.db.WithContext(ctx).
		Preload("Records").
		First(&ap, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ap, nil
}

// FindBySourceOrder finds the payable raised for an order
func (r *GormAccountPayableRepository) FindBySourceOrder(ctx context.Context, orderID uuid.UUID) (*finance.AccountPayable, error) {
	var ap finance.AccountPayable
	if err := r.db.WithContext(ctx).
		Preload("Records").
		First(&ap, "source_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ap, nil
}

// FindBySupplier finds payables for a supplier
func (r *GormAccountPayableRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]finance.AccountPayable, error) {
	var accounts []finance.AccountPayable
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.AccountPayable{}).
			Where("supplier_id = ?", supplierID),
		filter,
	)
	if err := query.Preload("Records").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindOutstanding finds payables not yet settled
func (r *GormAccountPayableRepository) FindOutstanding(ctx context.Context, filter shared.Filter) ([]finance.AccountPayable, error) {
	var accounts []finance.AccountPayable
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.AccountPayable{}).
			Where("status = ?", finance.AccountStatusOutstanding),
		filter,
	)
	if err := query.Preload("Records").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindAll finds payables matching the filter
func (r *GormAccountPayableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.AccountPayable, error) {
	var accounts []finance.AccountPayable
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.AccountPayable{}), filter)
	if err := query.Preload("Records").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save creates or updates a payable with its records
func (r *GormAccountPayableRepository) Save(ctx context.Context, ap *finance.AccountPayable) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(ap).Error
}

// Count counts payables matching the filter
func (r *GormAccountPayableRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&finance.AccountPayable{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumOutstandingBySupplier sums the unpaid balance across a supplier's accounts
func (r *GormAccountPayableRepository) SumOutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&finance.AccountPayable{}).
		Select("SUM(unpaid_amount)").
		Where("supplier_id = ? AND status = ?", supplierID, finance.AccountStatusOutstanding).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// applyFilter applies pagination, ordering and conditions to the query
func (r *GormAccountPayableRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AccountPayableSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyConditions applies search and filter conditions without pagination
func (r *GormAccountPayableRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(source_order_no) LIKE LOWER(?) OR LOWER(supplier_name) LIKE LOWER(?)", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}

	return query
}

var _ finance.AccountPayableRepository = (*GormAccountPayableRepository)(nil)
