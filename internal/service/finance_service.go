package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

// nextTransactionRef allocates the next reference for the given type and
// year. Income uses INC-<year>-<4-digit-seq>, expense EXP-<year>-<4-digit-seq>.
func nextTransactionRef(ctx context.Context, repo repository.TransactionRepository, txType string, now time.Time) (string, error) {
	tag := "INC"
	if txType == model.TxExpense {
		tag = "EXP"
	}
	prefix := fmt.Sprintf("%s-%d-", tag, now.Year())
	count, err := repo.CountByPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to allocate transaction reference: %w", err)
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

type CreateTransactionRequest struct {
	Type        string `json:"type" binding:"required,oneof=income expense"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Amount      string `json:"amount" binding:"required"` // base currency
	Method      string `json:"method"`
	BranchID    *uint  `json:"branch_id"`
	Date        string `json:"date"`
}

type FinanceSummary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
}

type FinanceService interface {
	CreateTransaction(ctx context.Context, actor string, req CreateTransactionRequest) (*model.Transaction, error)
	List(ctx context.Context, filter repository.TransactionFilter, page, limit int) ([]model.Transaction, int64, error)
	Summary(ctx context.Context, branchID *uint, from, to time.Time) (FinanceSummary, error)
}

type financeService struct {
	txnRepo   repository.TransactionRepository
	txManager repository.TransactionManager
	notifier  *Notifier
}

func NewFinanceService(
	txnRepo repository.TransactionRepository,
	txManager repository.TransactionManager,
	notifier *Notifier,
) FinanceService {
	return &financeService{
		txnRepo:   txnRepo,
		txManager: txManager,
		notifier:  notifier,
	}
}

func (s *financeService) CreateTransaction(ctx context.Context, actor string, req CreateTransactionRequest) (*model.Transaction, error) {
	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	amount = roundBase(amount)

	date := time.Now()
	if req.Date != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
	}

	txn := model.Transaction{
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Amount:      amount,
		Method:      req.Method,
		ActorName:   actor,
		BranchID:    req.BranchID,
		Date:        date,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		ref, err := nextTransactionRef(txCtx, s.txnRepo, req.Type, time.Now())
		if err != nil {
			return err
		}
		txn.Reference = ref
		if err := s.txnRepo.Create(txCtx, &txn); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		notifType := model.NotifIncome
		title, titleAr := "Income recorded", "تم تسجيل إيراد"
		if req.Type == model.TxExpense {
			notifType = model.NotifExpense
			title, titleAr = "Expense recorded", "تم تسجيل مصروف"
		}
		return s.notifier.Append(txCtx, &model.Notification{
			Type:      notifType,
			Title:     title,
			TitleAr:   titleAr,
			Message:   fmt.Sprintf("%s %s (%s)", title, txn.Reference, req.Category),
			MessageAr: fmt.Sprintf("%s %s (%s)", titleAr, txn.Reference, req.Category),
			Amount:    &txn.Amount,
			ActorName: actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *financeService) List(ctx context.Context, filter repository.TransactionFilter, page, limit int) ([]model.Transaction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.txnRepo.List(ctx, filter, page, limit)
}

func (s *financeService) Summary(ctx context.Context, branchID *uint, from, to time.Time) (FinanceSummary, error) {
	income, err := s.txnRepo.SumByType(ctx, model.TxIncome, branchID, from, to)
	if err != nil {
		return FinanceSummary{}, err
	}
	expense, err := s.txnRepo.SumByType(ctx, model.TxExpense, branchID, from, to)
	if err != nil {
		return FinanceSummary{}, err
	}
	return FinanceSummary{
		TotalIncome:  income,
		TotalExpense: expense,
		Net:          income.Sub(expense),
	}, nil
}
