package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem represents a stocked retail or consumable product
type InventoryItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU         string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	NameAr      string          `gorm:"type:varchar(255)" json:"name_ar"`
	Category    string          `gorm:"type:varchar(100);index" json:"category"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"` // never negative
	MinQuantity int             `gorm:"not null;default:0" json:"min_quantity"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"cost_price"`
	SellPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"sell_price"`
	Unit        string          `gorm:"type:varchar(30)" json:"unit"` // pcs, ml, box, ...
	Supplier    string          `gorm:"type:varchar(255)" json:"supplier"`
	Location    string          `gorm:"type:varchar(255)" json:"location"`
	ImageURL    string          `gorm:"type:text" json:"image_url"`
	BranchID    *uint           `gorm:"index" json:"branch_id"`
	Branch      *Branch         `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// StockDirection constants
const (
	StockIn  = "in"
	StockOut = "out"
)

// StockMovement is an append-only audit record of a single quantity change.
// Rows are never updated or deleted; the repository exposes no mutators.
// Quantity holds the requested delta, which can exceed PreviousQuantity - NewQuantity
// when an out-adjustment was clamped at zero.
type StockMovement struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID           uint           `gorm:"not null;index" json:"item_id"`
	Item             *InventoryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Direction        string         `gorm:"type:varchar(10);not null" json:"direction"` // in, out
	Quantity         int            `gorm:"not null" json:"quantity"`
	PreviousQuantity int            `gorm:"not null" json:"previous_quantity"`
	NewQuantity      int            `gorm:"not null" json:"new_quantity"`
	Reason           string         `gorm:"type:text" json:"reason"`
	ActorName        string         `gorm:"type:varchar(255)" json:"actor_name"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}
