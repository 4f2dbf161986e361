package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregates revenue, appointment and stock metrics over a
// date range. Computed from scratch on every read; nothing is cached.
type DashboardStats struct {
	Revenue              decimal.Decimal  `json:"revenue"`
	BillCount            int64            `json:"bill_count"`
	AppointmentsByStatus map[string]int64 `json:"appointments_by_status"`
	LowStockItems        []InventoryItem  `json:"low_stock_items"`
	TimeRangeStartDate   time.Time        `json:"time_range_start_date"`
	TimeRangeEndDate     time.Time        `json:"time_range_end_date"`
}

// BranchStats is one branch partition of a comparison report.
// Records without a branch reference count toward every partition.
type BranchStats struct {
	BranchID             *uint            `json:"branch_id"` // nil for the combined view
	BranchName           string           `json:"branch_name"`
	Revenue              decimal.Decimal  `json:"revenue"`
	BillCount            int64            `json:"bill_count"`
	AppointmentsByStatus map[string]int64 `json:"appointments_by_status"`
}

// BranchComparison holds per-branch partitions plus the combined union view
type BranchComparison struct {
	Branches           []BranchStats `json:"branches"`
	Combined           BranchStats   `json:"combined"`
	TimeRangeStartDate time.Time     `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time     `json:"time_range_end_date"`
}
