package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yarntrade/backend/internal/domain/inventory"
	"github.com/yarntrade/backend/internal/domain/shared"
)

// GormAdjustmentOrderRepository implements AdjustmentOrderRepository using GORM
type GormAdjustmentOrderRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentOrderRepository creates a new GormAdjustmentOrderRepository
func NewGormAdjustmentOrderRepository(db *gorm.DB) *GormAdjustmentOrderRepository {
	return &GormAdjustmentOrderRepository{db: db}
}

// FindByID finds an adjustment order with its items
func (r *GormAdjustmentOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.AdjustmentOrder, error) {
	var order inventory.AdjustmentOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an adjustment order by its number
func (r *GormAdjustmentOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*inventory.AdjustmentOrder, error) {
	var order inventory.AdjustmentOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds adjustment orders matching the filter
func (r *GormAdjustmentOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.AdjustmentOrder, error) {
	var orders []inventory.AdjustmentOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.AdjustmentOrder{}), filter)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds adjustment orders in a status
func (r *GormAdjustmentOrderRepository) FindByStatus(ctx context.Context, status inventory.AdjustmentOrderStatus, filter shared.Filter) ([]inventory.AdjustmentOrder, error) {
	var orders []inventory.AdjustmentOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.AdjustmentOrder{}).
			Where("status = ?", status),
		filter,
	)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindBySourceCheck finds adjustment orders generated from a stock check
func (r *GormAdjustmentOrderRepository) FindBySourceCheck(ctx context.Context, checkID uuid.UUID) ([]inventory.AdjustmentOrder, error) {
	var orders []inventory.AdjustmentOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("source_check_id = ?", checkID).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an adjustment order with its items, pruning lines
// removed from the aggregate since the last load
func (r *GormAdjustmentOrderRepository) Save(ctx context.Context, order *inventory.AdjustmentOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error; err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(order.Items))
		for _, item := range order.Items {
			ids = append(ids, item.ID)
		}
		return pruneStaleItems(tx, &inventory.AdjustmentOrderItem{}, "order_id", order.ID, ids)
	})
}

// Delete deletes an adjustment order and its items
func (r *GormAdjustmentOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&inventory.AdjustmentOrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&inventory.AdjustmentOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts adjustment orders matching the filter
func (r *GormAdjustmentOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.AdjustmentOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateOrderNumber generates the next TZ-prefixed per-day order number
func (r *GormAdjustmentOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	return generateDailyOrderNumber(ctx, r.db, inventory.AdjustmentOrder{}.TableName(), "TZ")
}

// applyFilter applies pagination, ordering and conditions to the query
func (r *GormAdjustmentOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AdjustmentOrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyConditions applies search and filter conditions without pagination
func (r *GormAdjustmentOrderRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(order_number) LIKE LOWER(?) OR LOWER(reason) LIKE LOWER(?)", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		}
	}

	return query
}

var _ inventory.AdjustmentOrderRepository = (*GormAdjustmentOrderRepository)(nil)
