package memory

import (
	"context"
	"strings"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

type billRepo struct{ s *Store }

func (s *Store) Bills() repository.BillRepository { return &billRepo{s} }

func (r *billRepo) Create(_ context.Context, bill *model.Bill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	bill.ID = r.s.nextID("bills")
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = now()
	}
	r.s.bills = append(r.s.bills, *bill)
	return nil
}

func (r *billRepo) FindByID(_ context.Context, id uint) (*model.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.bills {
		if r.s.bills[i].ID == id {
			bill := r.s.bills[i]
			return &bill, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *billRepo) FindByIdempotencyKey(_ context.Context, key string) (*model.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.bills {
		if r.s.bills[i].IdempotencyKey == key && key != "" {
			bill := r.s.bills[i]
			return &bill, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *billRepo) List(_ context.Context, branchID *uint, page, limit int) ([]model.Bill, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []model.Bill
	for i := len(r.s.bills) - 1; i >= 0; i-- {
		if visibleInBranch(r.s.bills[i].BranchID, branchID) {
			matched = append(matched, r.s.bills[i])
		}
	}
	bills, total := paginate(matched, page, limit)
	return bills, total, nil
}

func (r *billRepo) CountByPrefix(_ context.Context, prefix string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, bill := range r.s.bills {
		if strings.HasPrefix(bill.BillNo, prefix) {
			count++
		}
	}
	return count, nil
}

func (r *billRepo) SumBetween(_ context.Context, branchID *uint, from, to time.Time) (decimal.Decimal, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	var count int64
	for _, bill := range r.s.bills {
		if !visibleInBranch(bill.BranchID, branchID) {
			continue
		}
		if !inRange(bill.CreatedAt, from, to) {
			continue
		}
		total = total.Add(bill.GrandTotal)
		count++
	}
	return total, count, nil
}

func (r *billRepo) StatsByCustomer(_ context.Context, customerID uint) (model.CustomerStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stats := model.CustomerStats{TotalSpent: decimal.Zero}
	for _, bill := range r.s.bills {
		if bill.CustomerID == customerID {
			stats.TotalVisits++
			stats.TotalSpent = stats.TotalSpent.Add(bill.GrandTotal)
		}
	}
	return stats, nil
}

type transactionRepo struct{ s *Store }

func (s *Store) Transactions() repository.TransactionRepository { return &transactionRepo{s} }

func (r *transactionRepo) Create(_ context.Context, tx *model.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx.ID = r.s.nextID("transactions")
	tx.CreatedAt = now()
	if tx.Date.IsZero() {
		tx.Date = tx.CreatedAt
	}
	r.s.transactions = append(r.s.transactions, *tx)
	return nil
}

func (r *transactionRepo) List(_ context.Context, filter repository.TransactionFilter, page, limit int) ([]model.Transaction, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []model.Transaction
	for i := len(r.s.transactions) - 1; i >= 0; i-- {
		tx := r.s.transactions[i]
		if !visibleInBranch(tx.BranchID, filter.BranchID) {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if !inRange(tx.Date, filter.From, filter.To) {
			continue
		}
		matched = append(matched, tx)
	}
	txs, total := paginate(matched, page, limit)
	return txs, total, nil
}

func (r *transactionRepo) CountByPrefix(_ context.Context, prefix string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, tx := range r.s.transactions {
		if strings.HasPrefix(tx.Reference, prefix) {
			count++
		}
	}
	return count, nil
}

func (r *transactionRepo) SumByType(_ context.Context, txType string, branchID *uint, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, tx := range r.s.transactions {
		if tx.Type != txType {
			continue
		}
		if !visibleInBranch(tx.BranchID, branchID) {
			continue
		}
		if !inRange(tx.Date, from, to) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total, nil
}
