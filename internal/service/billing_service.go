package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
)

// nextBillNumber allocates the next receipt number for the given year,
// formatted RCP-<year>-<5-digit-sequence>. The sequence restarts every
// calendar year. Must run inside the surrounding transaction so that
// the count and the insert see the same state.
func nextBillNumber(ctx context.Context, repo repository.BillRepository, now time.Time) (string, error) {
	prefix := fmt.Sprintf("RCP-%d-", now.Year())
	count, err := repo.CountByPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to allocate bill number: %w", err)
	}
	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}

type BillingService interface {
	Get(ctx context.Context, id uint) (*model.Bill, error)
	List(ctx context.Context, branchID *uint, page, limit int) ([]model.Bill, int64, error)
}

type billingService struct {
	billRepo repository.BillRepository
}

func NewBillingService(billRepo repository.BillRepository) BillingService {
	return &billingService{billRepo: billRepo}
}

func (s *billingService) Get(ctx context.Context, id uint) (*model.Bill, error) {
	return s.billRepo.FindByID(ctx, id)
}

func (s *billingService) List(ctx context.Context, branchID *uint, page, limit int) ([]model.Bill, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.billRepo.List(ctx, branchID, page, limit)
}
