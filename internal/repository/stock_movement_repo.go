package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// StockMovementRepository is append-only: movements can be created and
// listed, never updated or deleted.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *model.StockMovement) error
	ListByItem(ctx context.Context, itemID uint, page, limit int) ([]model.StockMovement, int64, error)
	Count(ctx context.Context) (int64, error)
}

type stockMovementRepository struct {
	db *gorm.DB
}

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) Create(ctx context.Context, movement *model.StockMovement) error {
	return GetDB(ctx, r.db).Create(movement).Error
}

func (r *stockMovementRepository) ListByItem(ctx context.Context, itemID uint, page, limit int) ([]model.StockMovement, int64, error) {
	var movements []model.StockMovement
	var total int64

	query := GetDB(ctx, r.db).Model(&model.StockMovement{}).Where("item_id = ?", itemID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("id desc").Offset(offset).Limit(limit).Find(&movements).Error; err != nil {
		return nil, 0, err
	}

	return movements, total, nil
}

func (r *stockMovementRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.StockMovement{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
