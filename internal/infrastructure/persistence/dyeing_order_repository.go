package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yarntrade/backend/internal/domain/shared"
	"github.com/yarntrade/backend/internal/domain/trade"
)

// GormDyeingOrderRepository implements DyeingOrderRepository using GORM
type GormDyeingOrderRepository struct {
	db *gorm.DB
}

// NewGormDyeingOrderRepository creates a new GormDyeingOrderRepository
func NewGormDyeingOrderRepository(db *gorm.DB) *GormDyeingOrderRepository {
	return &GormDyeingOrderRepository{db: db}
}

// FindByID finds a dyeing order with its items
func (r *GormDyeingOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.DyeingOrder, error) {
	var order trade.DyeingOrder
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

// FindByOrderNumber finds a dyeing order by its number
func (r *GormDyeingOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.DyeingOrder, error) {
	var order trade.DyeingOrder
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

// FindAll finds dyeing orders matching the filter
func (r *GormDyeingOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.DyeingOrder, error) {
	var orders []trade.DyeingOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.DyeingOrder{}), filter)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds dyeing orders in a status
func (r *GormDyeingOrderRepository) FindByStatus(ctx context.Context, status trade.DyeingOrderStatus, filter shared.Filter) ([]trade.DyeingOrder, error) {
	var orders []trade.DyeingOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.DyeingOrder{}).
			Where("status = ?", status),
		filter,
	)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByGreyBatch finds dyeing orders consuming a grey batch
func (r *GormDyeingOrderRepository) FindByGreyBatch(ctx context.Context, greyBatchID uuid.UUID, filter shared.Filter) ([]trade.DyeingOrder, error) {
	var orders []trade.DyeingOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.DyeingOrder{}).
			Where("grey_batch_id = ?", greyBatchID),
		filter,
	)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByFactory finds dyeing orders placed with a factory
func (r *GormDyeingOrderRepository) FindByFactory(ctx context.Context, factoryID uuid.UUID, filter shared.Filter) ([]trade.DyeingOrder, error) {
	var orders []trade.DyeingOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.DyeingOrder{}).
			Where("factory_id = ?", factoryID),
		filter,
	)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a dyeing order with its items, pruning lines
// removed from the aggregate since the last load
func (r *GormDyeingOrderRepository) Save(ctx context.Context, order *trade.DyeingOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error; err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(order.Items))
		for _, item := range order.Items {
			ids = append(ids, item.ID)
		}
		return pruneStaleItems(tx, &trade.DyeingOrderItem{}, "order_id", order.ID, ids)
	})
}

// Delete deletes a dyeing order and its items
func (r *GormDyeingOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trade.DyeingOrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.DyeingOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts dyeing orders matching the filter
func (r *GormDyeingOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&trade.DyeingOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateOrderNumber generates the next JG-prefixed per-day order number
func (r *GormDyeingOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	return generateDailyOrderNumber(ctx, r.db, trade.DyeingOrder{}.TableName(), "JG")
}

// applyFilter applies pagination, ordering and conditions to the query
func (r *GormDyeingOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DyeingOrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyConditions applies search and filter conditions without pagination
func (r *GormDyeingOrderRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(order_number) LIKE LOWER(?) OR LOWER(factory_name) LIKE LOWER(?) OR LOWER(product_name) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "factory_id":
			query = query.Where("factory_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}

	return query
}

var _ trade.DyeingOrderRepository = (*GormDyeingOrderRepository)(nil)
