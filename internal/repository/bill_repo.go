package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BillRepository interface {
	Create(ctx context.Context, bill *model.Bill) error
	FindByID(ctx context.Context, id uint) (*model.Bill, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*model.Bill, error)
	List(ctx context.Context, branchID *uint, page, limit int) ([]model.Bill, int64, error)

	// CountByPrefix drives the RCP-<year>- sequence
	CountByPrefix(ctx context.Context, prefix string) (int64, error)

	// SumBetween returns total grand_total and bill count over creation dates
	SumBetween(ctx context.Context, branchID *uint, from, to time.Time) (decimal.Decimal, int64, error)

	// StatsByCustomer derives total_visits / total_spent at read time
	StatsByCustomer(ctx context.Context, customerID uint) (model.CustomerStats, error)
}

type billRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *model.Bill) error {
	return GetDB(ctx, r.db).Create(bill).Error
}

func (r *billRepository) FindByID(ctx context.Context, id uint) (*model.Bill, error) {
	var bill model.Bill
	if err := GetDB(ctx, r.db).First(&bill, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &bill, nil
}

func (r *billRepository) FindByIdempotencyKey(ctx context.Context, key string) (*model.Bill, error) {
	var bill model.Bill
	if err := GetDB(ctx, r.db).First(&bill, "idempotency_key = ?", key).Error; err != nil {
		return nil, translate(err)
	}
	return &bill, nil
}

func (r *billRepository) List(ctx context.Context, branchID *uint, page, limit int) ([]model.Bill, int64, error) {
	var bills []model.Bill
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Bill{})
	query = scopeBranch(query, branchID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at desc, id desc").Offset(offset).Limit(limit).Find(&bills).Error; err != nil {
		return nil, 0, err
	}

	return bills, total, nil
}

func (r *billRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Bill{}).
		Where("bill_no LIKE ?", prefix+"%").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *billRepository) SumBetween(ctx context.Context, branchID *uint, from, to time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}

	query := GetDB(ctx, r.db).Model(&model.Bill{}).
		Select("COALESCE(SUM(grand_total), 0) as total, COUNT(*) as count").
		Where("created_at >= ? AND created_at <= ?", from, to)
	query = scopeBranch(query, branchID)
	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return row.Total, row.Count, nil
}

func (r *billRepository) StatsByCustomer(ctx context.Context, customerID uint) (model.CustomerStats, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}

	err := GetDB(ctx, r.db).Model(&model.Bill{}).
		Select("COALESCE(SUM(grand_total), 0) as total, COUNT(*) as count").
		Where("customer_id = ?", customerID).
		Scan(&row).Error
	if err != nil {
		return model.CustomerStats{}, err
	}
	return model.CustomerStats{TotalVisits: row.Count, TotalSpent: row.Total}, nil
}
