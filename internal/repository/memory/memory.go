// Package memory implements every repository interface against in-process
// collections guarded by a single mutex, so all mutations serialize through
// one writer. It backs the service tests and the DB-less demo mode.
package memory

import (
	"context"
	"sync"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

// Store owns every collection. Identifiers are per-collection monotonic
// counters, matching the sequential id assignment of the ledger.
type Store struct {
	mu sync.Mutex

	users          []model.User
	userBranches   []model.UserBranch
	refreshTokens  []model.RefreshToken
	branches       []model.Branch
	customers      []model.Customer
	categories     []model.ServiceCategory
	services       []model.Service
	items          []model.InventoryItem
	movements      []model.StockMovement
	appointments   []model.Appointment
	bills          []model.Bill
	transactions   []model.Transaction
	notifications  []model.Notification
	rates          map[string]decimal.Decimal
	settings       map[string]string

	nextIDs map[string]uint
}

func New() *Store {
	return &Store{
		rates:    make(map[string]decimal.Decimal),
		settings: make(map[string]string),
		nextIDs:  make(map[string]uint),
	}
}

// NewSeeded returns a store pre-populated with a branch, a couple of
// customers, catalog services and inventory for demo mode.
func NewSeeded() *Store {
	s := New()
	ctx := context.Background()

	branch := &model.Branch{Name: "Downtown", NameAr: "وسط المدينة", Code: "BR-01", Phone: "0770-000-0001", Active: true}
	_ = s.Branches().Create(ctx, branch)

	for _, c := range []model.Customer{
		{Name: "Zahra Ali", Phone: "0770-111-2233", BranchID: &branch.ID, Active: true},
		{Name: "Noor Hassan", Phone: "0771-444-5566", Active: true},
	} {
		c := c
		_ = s.Customers().Create(ctx, &c)
	}

	cat := &model.ServiceCategory{Name: "Hair", NameAr: "شعر"}
	_ = s.Services().CreateCategory(ctx, cat)
	for _, sv := range []model.Service{
		{CategoryID: &cat.ID, Name: "Haircut", NameAr: "قص شعر", Price: decimal.NewFromInt(25000), Duration: 45, Active: true},
		{CategoryID: &cat.ID, Name: "Hair Color", NameAr: "صبغ شعر", Price: decimal.NewFromInt(60000), Duration: 90, Active: true},
	} {
		sv := sv
		_ = s.Services().Create(ctx, &sv)
	}

	for _, it := range []model.InventoryItem{
		{SKU: "SH-001", Name: "Shampoo 500ml", NameAr: "شامبو", Category: "hair", Quantity: 40, MinQuantity: 10, CostPrice: decimal.NewFromInt(4000), SellPrice: decimal.NewFromInt(6500), Unit: "pcs", BranchID: &branch.ID},
		{SKU: "NL-014", Name: "Nail Polish Red", NameAr: "طلاء أظافر", Category: "nails", Quantity: 15, MinQuantity: 5, CostPrice: decimal.NewFromInt(2500), SellPrice: decimal.NewFromInt(5000), Unit: "pcs"},
	} {
		it := it
		_ = s.Inventory().Create(ctx, &it)
	}

	return s
}

// nextID increments the monotonic counter for a collection
func (s *Store) nextID(collection string) uint {
	s.nextIDs[collection]++
	return s.nextIDs[collection]
}

// visibleInBranch applies the branch partition rule: rows without a branch
// reference are visible in every partition.
func visibleInBranch(rowBranch *uint, want *uint) bool {
	if want == nil || rowBranch == nil {
		return true
	}
	return *rowBranch == *want
}

// paginate slices a window out of list, returning the window and total length
func paginate[T any](list []T, page, limit int) ([]T, int64) {
	total := int64(len(list))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= len(list) {
		return []T{}, total
	}
	end := start + limit
	if end > len(list) {
		end = len(list)
	}
	out := make([]T, end-start)
	copy(out, list[start:end])
	return out, total
}

func now() time.Time {
	return time.Now().UTC()
}

// TxManager satisfies repository.TransactionManager. Mutations already
// serialize on the store mutex, so the callback runs directly; there is no
// rollback in memory mode.
type TxManager struct{}

func NewTxManager() repository.TransactionManager {
	return TxManager{}
}

func (TxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}
