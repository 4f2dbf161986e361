package memory

import (
	"context"
	"strings"

	"backend/internal/model"
	"backend/internal/repository"
)

type inventoryRepo struct{ s *Store }

func (s *Store) Inventory() repository.InventoryRepository { return &inventoryRepo{s} }

func (r *inventoryRepo) Create(_ context.Context, item *model.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.nextID("inventory_items")
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	r.s.items = append(r.s.items, *item)
	return nil
}

func (r *inventoryRepo) FindByID(_ context.Context, id uint) (*model.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.items {
		if r.s.items[i].ID == id {
			item := r.s.items[i]
			return &item, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *inventoryRepo) FindBySKU(_ context.Context, sku string) (*model.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.items {
		if r.s.items[i].SKU == sku {
			item := r.s.items[i]
			return &item, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *inventoryRepo) List(_ context.Context, branchID *uint, search string, page, limit int) ([]model.InventoryItem, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	needle := strings.ToLower(search)
	var matched []model.InventoryItem
	for _, item := range r.s.items {
		if !visibleInBranch(item.BranchID, branchID) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.SKU), needle) {
			continue
		}
		matched = append(matched, item)
	}
	items, total := paginate(matched, page, limit)
	return items, total, nil
}

func (r *inventoryRepo) ListLowStock(_ context.Context, branchID *uint) ([]model.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.InventoryItem
	for _, item := range r.s.items {
		if !visibleInBranch(item.BranchID, branchID) {
			continue
		}
		if item.Quantity <= item.MinQuantity {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *inventoryRepo) Update(_ context.Context, item *model.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.items {
		if r.s.items[i].ID == item.ID {
			item.UpdatedAt = now()
			r.s.items[i] = *item
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *inventoryRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.items {
		if r.s.items[i].ID == id {
			r.s.items = append(r.s.items[:i], r.s.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// movementRepo only ever appends; there is no update or delete path.
type movementRepo struct{ s *Store }

func (s *Store) StockMovements() repository.StockMovementRepository { return &movementRepo{s} }

func (r *movementRepo) Create(_ context.Context, movement *model.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	movement.ID = r.s.nextID("stock_movements")
	movement.CreatedAt = now()
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

func (r *movementRepo) ListByItem(_ context.Context, itemID uint, page, limit int) ([]model.StockMovement, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []model.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ItemID == itemID {
			matched = append(matched, r.s.movements[i])
		}
	}
	movements, total := paginate(matched, page, limit)
	return movements, total, nil
}

func (r *movementRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.movements)), nil
}
