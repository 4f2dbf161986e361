package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id uint) (*model.InventoryItem, error)
	FindBySKU(ctx context.Context, sku string) (*model.InventoryItem, error)
	List(ctx context.Context, branchID *uint, search string, page, limit int) ([]model.InventoryItem, int64, error)
	ListLowStock(ctx context.Context, branchID *uint) ([]model.InventoryItem, error)
	Update(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, id uint) error
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *inventoryRepository) FindByID(ctx context.Context, id uint) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *inventoryRepository) FindBySKU(ctx context.Context, sku string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := GetDB(ctx, r.db).First(&item, "sku = ?", sku).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context, branchID *uint, search string, page, limit int) ([]model.InventoryItem, int64, error) {
	var items []model.InventoryItem
	var total int64

	query := GetDB(ctx, r.db).Model(&model.InventoryItem{})
	query = scopeBranch(query, branchID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("id").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *inventoryRepository) ListLowStock(ctx context.Context, branchID *uint) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	query := GetDB(ctx, r.db).Where("quantity <= min_quantity")
	query = scopeBranch(query, branchID)
	if err := query.Order("quantity").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *inventoryRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.InventoryItem{}).Error
}
