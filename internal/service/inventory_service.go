package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
)

type CreateInventoryItemRequest struct {
	SKU         string `json:"sku" binding:"required"`
	Name        string `json:"name" binding:"required"`
	NameAr      string `json:"name_ar"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity" binding:"gte=0"`
	MinQuantity int    `json:"min_quantity" binding:"gte=0"`
	CostPrice   string `json:"cost_price"`
	SellPrice   string `json:"sell_price"`
	Unit        string `json:"unit"`
	Supplier    string `json:"supplier"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
	BranchID    *uint  `json:"branch_id"`
}

type UpdateInventoryItemRequest struct {
	Name        string `json:"name"`
	NameAr      string `json:"name_ar"`
	Category    string `json:"category"`
	MinQuantity *int   `json:"min_quantity"`
	CostPrice   string `json:"cost_price"`
	SellPrice   string `json:"sell_price"`
	Unit        string `json:"unit"`
	Supplier    string `json:"supplier"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
}

type AdjustStockRequest struct {
	Direction string `json:"direction" binding:"required,oneof=in out"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Reason    string `json:"reason"`
}

type InventoryService interface {
	Create(ctx context.Context, actor string, req CreateInventoryItemRequest) (*model.InventoryItem, error)
	Get(ctx context.Context, id uint) (*model.InventoryItem, error)
	List(ctx context.Context, branchID *uint, search string, page, limit int) ([]model.InventoryItem, int64, error)
	ListLowStock(ctx context.Context, branchID *uint) ([]model.InventoryItem, error)
	Update(ctx context.Context, actor string, id uint, req UpdateInventoryItemRequest) (*model.InventoryItem, error)
	AdjustStock(ctx context.Context, actor string, id uint, req AdjustStockRequest) (*model.InventoryItem, error)
	Movements(ctx context.Context, itemID uint, page, limit int) ([]model.StockMovement, int64, error)
	Delete(ctx context.Context, actor string, id uint) error
}

type inventoryService struct {
	itemRepo     repository.InventoryRepository
	movementRepo repository.StockMovementRepository
	txManager    repository.TransactionManager
	notifier     *Notifier
}

func NewInventoryService(
	itemRepo repository.InventoryRepository,
	movementRepo repository.StockMovementRepository,
	txManager repository.TransactionManager,
	notifier *Notifier,
) InventoryService {
	return &inventoryService{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		txManager:    txManager,
		notifier:     notifier,
	}
}

func (s *inventoryService) Create(ctx context.Context, actor string, req CreateInventoryItemRequest) (*model.InventoryItem, error) {
	costPrice, err := parseAmount(req.CostPrice, "cost_price")
	if err != nil {
		return nil, err
	}
	sellPrice, err := parseAmount(req.SellPrice, "sell_price")
	if err != nil {
		return nil, err
	}
	if req.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	item := model.InventoryItem{
		SKU:         req.SKU,
		Name:        req.Name,
		NameAr:      req.NameAr,
		Category:    req.Category,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		CostPrice:   costPrice,
		SellPrice:   sellPrice,
		Unit:        req.Unit,
		Supplier:    req.Supplier,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		BranchID:    req.BranchID,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.itemRepo.Create(txCtx, &item); err != nil {
			return fmt.Errorf("failed to create inventory item: %w", err)
		}
		notif := entityChanged(model.NotifInventory, "created", "تم إنشاء", item.Name)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *inventoryService) Get(ctx context.Context, id uint) (*model.InventoryItem, error) {
	return s.itemRepo.FindByID(ctx, id)
}

func (s *inventoryService) List(ctx context.Context, branchID *uint, search string, page, limit int) ([]model.InventoryItem, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.itemRepo.List(ctx, branchID, search, page, limit)
}

func (s *inventoryService) ListLowStock(ctx context.Context, branchID *uint) ([]model.InventoryItem, error) {
	return s.itemRepo.ListLowStock(ctx, branchID)
}

func (s *inventoryService) Update(ctx context.Context, actor string, id uint, req UpdateInventoryItemRequest) (*model.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.NameAr != "" {
		item.NameAr = req.NameAr
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.MinQuantity != nil {
		if *req.MinQuantity < 0 {
			return nil, ErrInvalidQuantity
		}
		item.MinQuantity = *req.MinQuantity
	}
	if req.CostPrice != "" {
		price, err := parseAmount(req.CostPrice, "cost_price")
		if err != nil {
			return nil, err
		}
		item.CostPrice = price
	}
	if req.SellPrice != "" {
		price, err := parseAmount(req.SellPrice, "sell_price")
		if err != nil {
			return nil, err
		}
		item.SellPrice = price
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.Supplier != "" {
		item.Supplier = req.Supplier
	}
	if req.Location != "" {
		item.Location = req.Location
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.itemRepo.Update(txCtx, item); err != nil {
			return fmt.Errorf("failed to update inventory item: %w", err)
		}
		notif := entityChanged(model.NotifInventory, "updated", "تم تعديل", item.Name)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AdjustStock applies one in/out movement. Out-adjustments clamp the level
// at zero while still recording the requested quantity on the movement, so
// the audit trail shows what was asked for rather than what was possible.
func (s *inventoryService) AdjustStock(ctx context.Context, actor string, id uint, req AdjustStockRequest) (*model.InventoryItem, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if req.Direction != model.StockIn && req.Direction != model.StockOut {
		return nil, ErrInvalidDirection
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := item.Quantity
	next := prev
	if req.Direction == model.StockIn {
		next = prev + req.Quantity
	} else {
		next = prev - req.Quantity
		if next < 0 {
			next = 0
		}
	}
	item.Quantity = next

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.itemRepo.Update(txCtx, item); err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}

		movement := model.StockMovement{
			ItemID:           item.ID,
			Direction:        req.Direction,
			Quantity:         req.Quantity,
			PreviousQuantity: prev,
			NewQuantity:      next,
			Reason:           req.Reason,
			ActorName:        actor,
		}
		if err := s.movementRepo.Create(txCtx, &movement); err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}

		if err := s.notifier.Append(txCtx, s.movementNotification(item, &movement)); err != nil {
			return err
		}
		return s.stockLevelAlerts(txCtx, item, actor)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) movementNotification(item *model.InventoryItem, m *model.StockMovement) *model.Notification {
	notifType := model.NotifStockIn
	title, titleAr := "Stock received", "تم استلام مخزون"
	verb, verbAr := "added to", "أضيفت إلى"
	if m.Direction == model.StockOut {
		notifType = model.NotifStockOut
		title, titleAr = "Stock removed", "تم صرف مخزون"
		verb, verbAr = "removed from", "صُرفت من"
	}
	qty := m.Quantity
	prev := m.PreviousQuantity
	next := m.NewQuantity
	return &model.Notification{
		Type:             notifType,
		Title:            title,
		TitleAr:          titleAr,
		Message:          fmt.Sprintf("%d %s %s (%d to %d)", qty, verb, item.Name, prev, next),
		MessageAr:        fmt.Sprintf("%d %s %s (من %d إلى %d)", qty, verbAr, nameAr(item), prev, next),
		Quantity:         &qty,
		PreviousQuantity: &prev,
		NewQuantity:      &next,
		Reason:           m.Reason,
		ActorName:        m.ActorName,
		TargetRole:       model.RoleAdmin,
		ItemID:           &item.ID,
	}
}

// stockLevelAlerts emits threshold notifications after a movement.
// Out-of-stock fires whenever the level lands on zero, even when the item
// was already empty before the movement. Low-stock is deduplicated: while
// an unread low_stock alert for the item exists, no new one is added.
func (s *inventoryService) stockLevelAlerts(ctx context.Context, item *model.InventoryItem, actor string) error {
	if item.Quantity == 0 {
		qty := item.Quantity
		if err := s.notifier.Append(ctx, &model.Notification{
			Type:       model.NotifOutOfStock,
			Title:      "Out of stock",
			TitleAr:    "نفد المخزون",
			Message:    fmt.Sprintf("%s is out of stock", item.Name),
			MessageAr:  fmt.Sprintf("نفد مخزون %s", nameAr(item)),
			Quantity:   &qty,
			ActorName:  actor,
			TargetRole: model.RoleManager,
			ItemID:     &item.ID,
		}); err != nil {
			return err
		}
	}

	if item.Quantity > 0 && item.Quantity <= item.MinQuantity {
		pending, err := s.notifier.HasUnread(ctx, model.NotifLowStock, item.ID)
		if err != nil {
			return err
		}
		if !pending {
			qty := item.Quantity
			if err := s.notifier.Append(ctx, &model.Notification{
				Type:       model.NotifLowStock,
				Title:      "Low stock",
				TitleAr:    "انخفاض المخزون",
				Message:    fmt.Sprintf("%s is low: %d left (minimum %d)", item.Name, item.Quantity, item.MinQuantity),
				MessageAr:  fmt.Sprintf("انخفض مخزون %s: متبقي %d (الحد الأدنى %d)", nameAr(item), item.Quantity, item.MinQuantity),
				Quantity:   &qty,
				ActorName:  actor,
				TargetRole: model.RoleManager,
				ItemID:     &item.ID,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func nameAr(item *model.InventoryItem) string {
	if item.NameAr != "" {
		return item.NameAr
	}
	return item.Name
}

func (s *inventoryService) Movements(ctx context.Context, itemID uint, page, limit int) ([]model.StockMovement, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.movementRepo.ListByItem(ctx, itemID, page, limit)
}

func (s *inventoryService) Delete(ctx context.Context, actor string, id uint) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.itemRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete inventory item: %w", err)
		}
		notif := entityChanged(model.NotifInventory, "deleted", "تم حذف", item.Name)
		notif.ActorName = actor
		return s.notifier.Append(txCtx, notif)
	})
}
