package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionFilter narrows finance listings. Zero times mean unbounded.
type TransactionFilter struct {
	Type     string
	BranchID *uint
	From     time.Time
	To       time.Time
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	List(ctx context.Context, filter TransactionFilter, page, limit int) ([]model.Transaction, int64, error)

	// CountByPrefix drives the INC-/EXP-<year>- sequences
	CountByPrefix(ctx context.Context, prefix string) (int64, error)

	// SumByType totals amounts of one transaction type over the range
	SumByType(ctx context.Context, txType string, branchID *uint, from, to time.Time) (decimal.Decimal, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	return GetDB(ctx, r.db).Create(tx).Error
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter, page, limit int) ([]model.Transaction, int64, error) {
	var txs []model.Transaction
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Transaction{})
	query = scopeBranch(query, filter.BranchID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date <= ?", filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("date desc, id desc").Offset(offset).Limit(limit).Find(&txs).Error; err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func (r *transactionRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Transaction{}).
		Where("reference LIKE ?", prefix+"%").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *transactionRepository) SumByType(ctx context.Context, txType string, branchID *uint, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}

	query := GetDB(ctx, r.db).Model(&model.Transaction{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("type = ?", txType)
	query = scopeBranch(query, branchID)
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}
	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
