package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yarntrade/backend/internal/domain/catalog"
	"github.com/yarntrade/backend/internal/domain/shared"
)

// GormColorRepository implements ColorRepository using GORM
type GormColorRepository struct {
	db *gorm.DB
}

// NewGormColorRepository creates a new GormColorRepository
func NewGormColorRepository(db *gorm.DB) *GormColorRepository {
	return &GormColorRepository{db: db}
}

// FindByID finds a color by its ID
func (r *GormColorRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Color, error) {
	var color catalog.Color
	if err := r.db.WithContext(ctx).First(&color, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &color, nil
}

// FindByProductAndCode finds a color by its code within a product
func (r *GormColorRepository) FindByProductAndCode(ctx context.Context, productID uuid.UUID, code string) (*catalog.Color, error) {
	var color catalog.Color
	if err := r.db.WithContext(ctx).
		First(&color, "product_id = ? AND code = ?", productID, code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &color, nil
}

// FindByProduct finds all colors of a product
func (r *GormColorRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]catalog.Color, error) {
	var colors []catalog.Color
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Color{}).
			Where("product_id = ?", productID),
		filter,
	)
	if err := query.Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

// FindOnSaleByProduct finds colors of a product that are on sale
func (r *GormColorRepository) FindOnSaleByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Color, error) {
	var colors []catalog.Color
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, catalog.ColorStatusOnSale).
		Order("code ASC").
		Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

// Save creates or updates a color
func (r *GormColorRepository) Save(ctx context.Context, color *catalog.Color) error {
	return r.db.WithContext(ctx).Save(color).Error
}

// Delete deletes a color
// Delete removes the color and the batches recorded under it. The
// service layer refuses the call while any of those batches still
// holds stock.
func (r *GormColorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("color_id = ?", id).Delete(&catalog.Batch{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Color{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByProduct counts colors of a product
func (r *GormColorRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Color{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByProductAndCode checks if a color code exists within a product
func (r *GormColorRepository) ExistsByProductAndCode(ctx context.Context, productID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Color{}).
		Where("product_id = ? AND code = ?", productID, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies pagination, ordering and conditions to the query
func (r *GormColorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(code) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ColorSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

var _ catalog.ColorRepository = (*GormColorRepository)(nil)
