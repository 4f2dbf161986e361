package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
)

// StatisticsService computes dashboard and branch comparison reports.
// Every figure is derived from bills, appointments and inventory at call
// time so a report is always consistent with the ledger it reads.
type StatisticsService interface {
	Dashboard(ctx context.Context, branchID *uint, from, to time.Time) (*model.DashboardStats, error)
	CompareBranches(ctx context.Context, from, to time.Time) (*model.BranchComparison, error)
}

type statisticsService struct {
	billRepo   repository.BillRepository
	apptRepo   repository.AppointmentRepository
	itemRepo   repository.InventoryRepository
	branchRepo repository.BranchRepository
}

func NewStatisticsService(
	billRepo repository.BillRepository,
	apptRepo repository.AppointmentRepository,
	itemRepo repository.InventoryRepository,
	branchRepo repository.BranchRepository,
) StatisticsService {
	return &statisticsService{
		billRepo:   billRepo,
		apptRepo:   apptRepo,
		itemRepo:   itemRepo,
		branchRepo: branchRepo,
	}
}

// normalizeRange defaults an open range to the current month
func normalizeRange(from, to time.Time) (time.Time, time.Time) {
	now := time.Now()
	if from.IsZero() {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if to.IsZero() {
		to = now
	}
	return from, to
}

func (s *statisticsService) Dashboard(ctx context.Context, branchID *uint, from, to time.Time) (*model.DashboardStats, error) {
	from, to = normalizeRange(from, to)

	revenue, billCount, err := s.billRepo.SumBetween(ctx, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	byStatus, err := s.apptRepo.CountByStatus(ctx, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate appointments: %w", err)
	}
	lowStock, err := s.itemRepo.ListLowStock(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock: %w", err)
	}

	return &model.DashboardStats{
		Revenue:              revenue,
		BillCount:            billCount,
		AppointmentsByStatus: byStatus,
		LowStockItems:        lowStock,
		TimeRangeStartDate:   from,
		TimeRangeEndDate:     to,
	}, nil
}

// CompareBranches builds one partition per branch plus a combined view.
// Records without a branch reference are shared rows: the repository
// branch scope includes them in every partition, and the combined view
// (nil branch filter) counts each row exactly once.
func (s *statisticsService) CompareBranches(ctx context.Context, from, to time.Time) (*model.BranchComparison, error) {
	from, to = normalizeRange(from, to)

	branches, err := s.branchRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	comparison := model.BranchComparison{
		TimeRangeStartDate: from,
		TimeRangeEndDate:   to,
	}

	for i := range branches {
		branch := branches[i]
		stats, err := s.branchStats(ctx, &branch.ID, branch.Name, from, to)
		if err != nil {
			return nil, err
		}
		comparison.Branches = append(comparison.Branches, stats)
	}

	combined, err := s.branchStats(ctx, nil, "All branches", from, to)
	if err != nil {
		return nil, err
	}
	comparison.Combined = combined

	return &comparison, nil
}

func (s *statisticsService) branchStats(ctx context.Context, branchID *uint, name string, from, to time.Time) (model.BranchStats, error) {
	revenue, billCount, err := s.billRepo.SumBetween(ctx, branchID, from, to)
	if err != nil {
		return model.BranchStats{}, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	byStatus, err := s.apptRepo.CountByStatus(ctx, branchID, from, to)
	if err != nil {
		return model.BranchStats{}, fmt.Errorf("failed to aggregate appointments: %w", err)
	}
	return model.BranchStats{
		BranchID:             branchID,
		BranchName:           name,
		Revenue:              revenue,
		BillCount:            billCount,
		AppointmentsByStatus: byStatus,
	}, nil
}
