package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yarntrade/backend/internal/domain/inventory"
	"github.com/yarntrade/backend/internal/domain/shared"
)

// GormStockCheckRepository implements StockCheckRepository using GORM
type GormStockCheckRepository struct {
	db *gorm.DB
}

// NewGormStockCheckRepository creates a new GormStockCheckRepository
func NewGormStockCheckRepository(db *gorm.DB) *GormStockCheckRepository {
	return &GormStockCheckRepository{db: db}
}

// FindByID finds a stock check with its items
func (r *GormStockCheckRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockCheck, error) {
	var check inventory.StockCheck
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&check, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &check, nil
}

// FindByOrderNumber finds a stock check by its number
func (r *GormStockCheckRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*inventory.StockCheck, error) {
	var check inventory.StockCheck
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&check, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &check, nil
}

// FindAll finds stock checks matching the filter
func (r *GormStockCheckRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockCheck, error) {
	var checks []inventory.StockCheck
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockCheck{}), filter)
	if err := query.Preload("Items").Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}

// FindByStatus finds stock checks in a status
func (r *GormStockCheckRepository) FindByStatus(ctx context.Context, status inventory.StockCheckStatus, filter shared.Filter) ([]inventory.StockCheck, error) {
	var checks []inventory.StockCheck
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockCheck{}).
			Where("status = ?", status),
		filter,
	)
	if err := query.Preload("Items").Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}

// Save creates or updates a stock check with its items, pruning lines
// removed from the aggregate since the last load
func (r *GormStockCheckRepository) Save(ctx context.Context, check *inventory.StockCheck) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(check).Error; err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(check.Items))
		for _, item := range check.Items {
			ids = append(ids, item.ID)
		}
		return pruneStaleItems(tx, &inventory.StockCheckItem{}, "check_id", check.ID, ids)
	})
}

// Delete deletes a stock check and its items
func (r *GormStockCheckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&inventory.StockCheckItem{}, "check_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&inventory.StockCheck{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts stock checks matching the filter
func (r *GormStockCheckRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.StockCheck{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateOrderNumber generates the next PD-prefixed per-day order number
func (r *GormStockCheckRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	return generateDailyOrderNumber(ctx, r.db, inventory.StockCheck{}.TableName(), "PD")
}

// applyFilter applies pagination, ordering and conditions to the query
func (r *GormStockCheckRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockCheckSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyConditions applies search and filter conditions without pagination
func (r *GormStockCheckRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(order_number) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "stock_location":
			query = query.Where("stock_location = ?", value)
		}
	}

	return query
}

var _ inventory.StockCheckRepository = (*GormStockCheckRepository)(nil)
