package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/shared"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Batch, error) {
	var batch catalog.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByColorAndCode finds a batch by its code within a color
func (r *GormBatchRepository) FindByColorAndCode(ctx context.Context, colorID uuid.UUID, code string) (*catalog.Batch, error) {
	var batch catalog.Batch
	if err := r.db.WithContext(ctx).
		First(&batch, "color_id = ? AND code = ?", colorID, code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByColor finds all batches of a color
func (r *GormBatchRepository) FindByColor(ctx context.Context, colorID uuid.UUID, filter shared.Filter) ([]catalog.Batch, error) {
	var batches []catalog.Batch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Batch{}).
			Where("color_id = ?", colorID),
		filter,
	)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByIDs finds multiple batches by their IDs
func (r *GormBatchRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Batch, error) {
	if len(ids) == 0 {
		return []catalog.Batch{}, nil
	}
	var batches []catalog.Batch
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindWithStock finds batches of a color that still hold stock
func (r *GormBatchRepository) FindWithStock(ctx context.Context, colorID uuid.UUID) ([]catalog.Batch, error) {
	var batches []catalog.Batch
	if err := r.db.WithContext(ctx).
		Where("color_id = ? AND stock_quantity > 0", colorID).
		Order("COALESCE(production_date, created_at) ASC, created_at ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *catalog.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// Delete deletes a batch
func (r *GormBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Batch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AdjustStock applies a signed delta to a batch balance as a single
// conditional UPDATE. The WHERE clause rejects any delta that would drive
// the balance negative, so concurrent adjustments serialize at the
// database and the balance can never be observed below zero.
func (r *GormBatchRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Batch{}).
		Where("id = ? AND stock_quantity + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity + ?", delta),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&catalog.Batch{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// SumStockByColor sums the live balance across all batches of a color
func (r *GormBatchRepository) SumStockByColor(ctx context.Context, colorID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&catalog.Batch{}).
		Select("SUM(stock_quantity)").
		Where("color_id = ?", colorID).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SumStockByProduct sums the live balance across every batch of every
// colorway under a product
func (r *GormBatchRepository) SumStockByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&catalog.Batch{}).
		Select("SUM(batches.stock_quantity)").
		Joins("JOIN colors ON colors.id = batches.color_id").
		Where("colors.product_id = ?", productID).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// CountByColor counts batches of a color
func (r *GormBatchRepository) CountByColor(ctx context.Context, colorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Batch{}).
		Where("color_id = ?", colorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByColorAndCode checks if a batch code exists within a color
func (r *GormBatchRepository) ExistsByColorAndCode(ctx context.Context, colorID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Batch{}).
		Where("color_id = ? AND code = ?", colorID, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextDyedBatchSequence returns the next sequence number for dyed batch
// codes derived from the given source batch code. Existing codes under the
// color are scanned for the highest trailing sequence so deleted batches
// never cause a collision.
func (r *GormBatchRepository) NextDyedBatchSequence(ctx context.Context, colorID uuid.UUID, prefix string) (int, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&catalog.Batch{}).
		Where("color_id = ? AND code LIKE ?", colorID, prefix+"-%").
		Pluck("code", &codes).Error; err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, code := range codes {
		idx := strings.LastIndex(code, "-")
		if idx < 0 || idx == len(code)-1 {
			continue
		}
		if seq, err := strconv.Atoi(code[idx+1:]); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

// applyFilter applies pagination, ordering and conditions to the query
func (r *GormBatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(code) LIKE LOWER(?) OR LOWER(supplier_name) LIKE LOWER(?)", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "has_stock":
			if value == true {
				query = query.Where("stock_quantity > 0")
			}
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "stock_location":
			query = query.Where("stock_location = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BatchSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

var _ catalog.BatchRepository = (*GormBatchRepository)(nil)
