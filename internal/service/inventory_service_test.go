package service

import (
	"context"
	"errors"
	"testing"

	"backend/internal/model"
	"backend/internal/repository/memory"
)

type invTestEnv struct {
	store *memory.Store
	inv   InventoryService
}

func newInvTestEnv(t *testing.T, quantity, minQuantity int) (*invTestEnv, uint) {
	t.Helper()
	store := memory.New()
	notifier := NewNotifier(store.Notifications(), nil)
	inv := NewInventoryService(store.Inventory(), store.StockMovements(), memory.NewTxManager(), notifier)

	item, err := inv.Create(context.Background(), "Storekeeper", CreateInventoryItemRequest{
		SKU:         "SH-001",
		Name:        "Shampoo 500ml",
		NameAr:      "شامبو",
		Quantity:    quantity,
		MinQuantity: minQuantity,
		Unit:        "pcs",
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return &invTestEnv{store: store, inv: inv}, item.ID
}

func (e *invTestEnv) notificationsOfType(t *testing.T, notifType string) []model.Notification {
	t.Helper()
	all, _, err := e.store.Notifications().List(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	var out []model.Notification
	for _, n := range all {
		if n.Type == notifType {
			out = append(out, n)
		}
	}
	return out
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	env, itemID := newInvTestEnv(t, 5, 2)
	ctx := context.Background()

	item, err := env.inv.AdjustStock(ctx, "Storekeeper", itemID, AdjustStockRequest{
		Direction: model.StockOut,
		Quantity:  8,
		Reason:    "breakage",
	})
	if err != nil {
		t.Fatalf("adjust stock: %v", err)
	}
	if item.Quantity != 0 {
		t.Fatalf("expected level clamped at 0, got %d", item.Quantity)
	}

	movements, _, err := env.inv.Movements(ctx, itemID, 1, 10)
	if err != nil {
		t.Fatalf("list movements: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(movements))
	}
	// The movement keeps the requested quantity, not the applied delta
	m := movements[0]
	if m.Quantity != 8 || m.PreviousQuantity != 5 || m.NewQuantity != 0 {
		t.Fatalf("movement mismatch: qty=%d prev=%d new=%d", m.Quantity, m.PreviousQuantity, m.NewQuantity)
	}

	if got := env.notificationsOfType(t, model.NotifOutOfStock); len(got) != 1 {
		t.Fatalf("expected 1 out_of_stock notification, got %d", len(got))
	}
}

func TestAdjustStockInIncreases(t *testing.T) {
	env, itemID := newInvTestEnv(t, 5, 2)

	item, err := env.inv.AdjustStock(context.Background(), "Storekeeper", itemID, AdjustStockRequest{
		Direction: model.StockIn,
		Quantity:  20,
		Reason:    "delivery",
	})
	if err != nil {
		t.Fatalf("adjust stock: %v", err)
	}
	if item.Quantity != 25 {
		t.Fatalf("expected quantity 25, got %d", item.Quantity)
	}
	if got := env.notificationsOfType(t, model.NotifStockIn); len(got) != 1 {
		t.Fatalf("expected 1 stock_in notification, got %d", len(got))
	}
}

func TestLowStockAlertDedup(t *testing.T) {
	env, itemID := newInvTestEnv(t, 10, 5)
	ctx := context.Background()

	out := func(qty int) {
		t.Helper()
		if _, err := env.inv.AdjustStock(ctx, "Storekeeper", itemID, AdjustStockRequest{
			Direction: model.StockOut,
			Quantity:  qty,
			Reason:    "sale",
		}); err != nil {
			t.Fatalf("adjust stock: %v", err)
		}
	}

	out(5) // 10 -> 5, at the threshold
	if got := env.notificationsOfType(t, model.NotifLowStock); len(got) != 1 {
		t.Fatalf("expected 1 low_stock alert, got %d", len(got))
	}

	out(1) // still low, alert unread: no new one
	if got := env.notificationsOfType(t, model.NotifLowStock); len(got) != 1 {
		t.Fatalf("expected dedup to keep 1 low_stock alert, got %d", len(got))
	}

	// Reading the alert re-arms it
	alerts := env.notificationsOfType(t, model.NotifLowStock)
	if err := env.store.Notifications().MarkRead(ctx, alerts[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	out(1) // 4 -> 3, alert fires again
	if got := env.notificationsOfType(t, model.NotifLowStock); len(got) != 2 {
		t.Fatalf("expected a second low_stock alert after read, got %d", len(got))
	}
}

func TestAdjustStockRejectsBadInput(t *testing.T) {
	env, itemID := newInvTestEnv(t, 5, 2)
	ctx := context.Background()

	if _, err := env.inv.AdjustStock(ctx, "Storekeeper", itemID, AdjustStockRequest{
		Direction: model.StockOut,
		Quantity:  0,
	}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	if _, err := env.inv.AdjustStock(ctx, "Storekeeper", itemID, AdjustStockRequest{
		Direction: "sideways",
		Quantity:  1,
	}); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestOutOfStockFiresWheneverLevelIsZero(t *testing.T) {
	env, itemID := newInvTestEnv(t, 3, 0)
	ctx := context.Background()

	adjust := func(direction string, qty int) {
		t.Helper()
		if _, err := env.inv.AdjustStock(ctx, "Storekeeper", itemID, AdjustStockRequest{
			Direction: direction,
			Quantity:  qty,
		}); err != nil {
			t.Fatalf("adjust stock: %v", err)
		}
	}

	adjust(model.StockOut, 3) // 3 -> 0
	adjust(model.StockIn, 2)  // 0 -> 2
	adjust(model.StockOut, 2) // 2 -> 0 again

	if got := env.notificationsOfType(t, model.NotifOutOfStock); len(got) != 2 {
		t.Fatalf("expected out_of_stock on each adjustment landing on zero, got %d", len(got))
	}

	// No dedup for out_of_stock: taking from an already-empty item still alerts
	adjust(model.StockOut, 1) // clamped 0 -> 0
	if got := env.notificationsOfType(t, model.NotifOutOfStock); len(got) != 3 {
		t.Fatalf("expected out_of_stock even when the item was already empty, got %d", len(got))
	}
}

func TestStockMovementNotificationTargetsAdmins(t *testing.T) {
	env, itemID := newInvTestEnv(t, 5, 2)
	ctx := context.Background()

	if _, err := env.inv.AdjustStock(ctx, "Storekeeper", itemID, AdjustStockRequest{
		Direction: model.StockOut,
		Quantity:  1,
		Reason:    "sale",
	}); err != nil {
		t.Fatalf("adjust stock: %v", err)
	}
	if _, err := env.inv.AdjustStock(ctx, "Storekeeper", itemID, AdjustStockRequest{
		Direction: model.StockIn,
		Quantity:  2,
		Reason:    "delivery",
	}); err != nil {
		t.Fatalf("adjust stock: %v", err)
	}

	outs := env.notificationsOfType(t, model.NotifStockOut)
	ins := env.notificationsOfType(t, model.NotifStockIn)
	if len(outs) != 1 || len(ins) != 1 {
		t.Fatalf("expected one notification per direction, got out=%d in=%d", len(outs), len(ins))
	}
	if outs[0].TargetRole != model.RoleAdmin {
		t.Fatalf("stock_out target role = %q, want %q", outs[0].TargetRole, model.RoleAdmin)
	}
	if ins[0].TargetRole != model.RoleAdmin {
		t.Fatalf("stock_in target role = %q, want %q", ins[0].TargetRole, model.RoleAdmin)
	}
}
