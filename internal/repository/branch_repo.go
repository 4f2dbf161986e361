package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	FindByID(ctx context.Context, id uint) (*model.Branch, error)
	List(ctx context.Context, activeOnly bool) ([]model.Branch, error)
	Update(ctx context.Context, branch *model.Branch) error
	Delete(ctx context.Context, id uint) error
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *model.Branch) error {
	return GetDB(ctx, r.db).Create(branch).Error
}

func (r *branchRepository) FindByID(ctx context.Context, id uint) (*model.Branch, error) {
	var branch model.Branch
	if err := GetDB(ctx, r.db).First(&branch, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &branch, nil
}

func (r *branchRepository) List(ctx context.Context, activeOnly bool) ([]model.Branch, error) {
	var branches []model.Branch
	query := GetDB(ctx, r.db).Order("id")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *branchRepository) Update(ctx context.Context, branch *model.Branch) error {
	return GetDB(ctx, r.db).Save(branch).Error
}

func (r *branchRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Branch{}).Error
}
