package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id uint) (*model.Customer, error)
	List(ctx context.Context, branchID *uint, search string, page, limit int) ([]model.Customer, int64, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id uint) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return GetDB(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := GetDB(ctx, r.db).First(&customer, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, branchID *uint, search string, page, limit int) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Customer{})
	query = scopeBranch(query, branchID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("id").Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return GetDB(ctx, r.db).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Customer{}).Error
}

// scopeBranch narrows a query to one branch partition. Rows without a branch
// reference stay visible in every partition.
func scopeBranch(query *gorm.DB, branchID *uint) *gorm.DB {
	if branchID == nil {
		return query
	}
	return query.Where("branch_id = ? OR branch_id IS NULL", *branchID)
}
