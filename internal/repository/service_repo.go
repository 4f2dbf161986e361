package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// ServiceRepository covers the bookable service catalog and its categories
type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	FindByID(ctx context.Context, id uint) (*model.Service, error)
	List(ctx context.Context, activeOnly bool, page, limit int) ([]model.Service, int64, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id uint) error

	CreateCategory(ctx context.Context, category *model.ServiceCategory) error
	ListCategories(ctx context.Context) ([]model.ServiceCategory, error)
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) error {
	return GetDB(ctx, r.db).Create(svc).Error
}

func (r *serviceRepository) FindByID(ctx context.Context, id uint) (*model.Service, error) {
	var svc model.Service
	if err := GetDB(ctx, r.db).Preload("Category").First(&svc, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

func (r *serviceRepository) List(ctx context.Context, activeOnly bool, page, limit int) ([]model.Service, int64, error) {
	var services []model.Service
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Service{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Category").Order("id").Offset(offset).Limit(limit).Find(&services).Error; err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) error {
	return GetDB(ctx, r.db).Save(svc).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Service{}).Error
}

func (r *serviceRepository) CreateCategory(ctx context.Context, category *model.ServiceCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *serviceRepository) ListCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	var categories []model.ServiceCategory
	if err := GetDB(ctx, r.db).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
