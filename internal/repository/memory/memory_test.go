package memory

import (
	"context"
	"errors"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
)

func TestIDsAreMonotonicPerCollection(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := &model.Customer{Name: "A"}
	second := &model.Customer{Name: "B"}
	if err := s.Customers().Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Customers().Create(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}

	// Deleting never frees an id for reuse
	if err := s.Customers().Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	third := &model.Customer{Name: "C"}
	if err := s.Customers().Create(ctx, third); err != nil {
		t.Fatalf("create: %v", err)
	}
	if third.ID != 3 {
		t.Fatalf("expected id 3 after a delete, got %d", third.ID)
	}

	// Other collections count independently
	branch := &model.Branch{Name: "Downtown", Code: "BR-01"}
	if err := s.Branches().Create(ctx, branch); err != nil {
		t.Fatalf("create branch: %v", err)
	}
	if branch.ID != 1 {
		t.Fatalf("expected branch id 1, got %d", branch.ID)
	}
}

func TestBranchPartitionIncludesSharedRows(t *testing.T) {
	s := New()
	ctx := context.Background()

	b1 := &model.Branch{Name: "Downtown", Code: "BR-01"}
	b2 := &model.Branch{Name: "Mall", Code: "BR-02"}
	_ = s.Branches().Create(ctx, b1)
	_ = s.Branches().Create(ctx, b2)

	for _, c := range []model.Customer{
		{Name: "Branch one only", BranchID: &b1.ID},
		{Name: "Branch two only", BranchID: &b2.ID},
		{Name: "Shared"}, // no branch: visible everywhere
	} {
		c := c
		if err := s.Customers().Create(ctx, &c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	inB1, total, err := s.Customers().List(ctx, &b1.ID, "", 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(inB1) != 2 {
		t.Fatalf("expected branch one to see 2 customers, got %d", total)
	}

	all, total, err := s.Customers().List(ctx, nil, "", 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Fatalf("expected combined view to see 3 customers exactly once, got %d", total)
	}
}

func TestFindByIDTranslatesNotFound(t *testing.T) {
	s := New()
	if _, err := s.Customers().FindByID(context.Background(), 42); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNotificationUnreadLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()
	repo := s.Notifications()

	itemID := uint(7)
	if err := repo.Create(ctx, &model.Notification{Type: model.NotifLowStock, Title: "Low stock", ItemID: &itemID}); err != nil {
		t.Fatalf("create: %v", err)
	}

	has, err := repo.HasUnread(ctx, model.NotifLowStock, itemID)
	if err != nil || !has {
		t.Fatalf("expected unread alert for item 7, got %v (err %v)", has, err)
	}
	if has, _ := repo.HasUnread(ctx, model.NotifLowStock, 8); has {
		t.Fatalf("item 8 should have no unread alert")
	}

	list, _, err := repo.List(ctx, 1, 10)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected 1 notification, got %d (err %v)", len(list), err)
	}
	if err := repo.MarkRead(ctx, list[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if has, _ := repo.HasUnread(ctx, model.NotifLowStock, itemID); has {
		t.Fatalf("alert should be re-armed after read")
	}

	if err := repo.MarkRead(ctx, 999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestSeededStoreHasDemoData(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	if _, total, err := s.Customers().List(ctx, nil, "", 1, 10); err != nil || total == 0 {
		t.Fatalf("expected seeded customers, got %d (err %v)", total, err)
	}
	if _, total, err := s.Services().List(ctx, true, 1, 10); err != nil || total == 0 {
		t.Fatalf("expected seeded services, got %d (err %v)", total, err)
	}
	if _, total, err := s.Inventory().List(ctx, nil, "", 1, 10); err != nil || total == 0 {
		t.Fatalf("expected seeded inventory, got %d (err %v)", total, err)
	}
}
