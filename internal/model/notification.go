package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationType constants
const (
	NotifAppointment       = "appointment"
	NotifAppointmentStatus = "appointment_status"
	NotifPayment           = "payment"
	NotifStockIn           = "stock_in"
	NotifStockOut          = "stock_out"
	NotifLowStock          = "low_stock"
	NotifOutOfStock        = "out_of_stock"
	NotifCustomer          = "customer"
	NotifService           = "service"
	NotifInventory         = "inventory"
	NotifUser              = "user"
	NotifIncome            = "income"
	NotifExpense           = "expense"
	NotifTransaction       = "transaction"
)

// Notification describes a single store mutation, appended synchronously
// with the mutation that produced it. Only IsRead is ever updated; rows are
// otherwise removed through Delete/ClearAll.
type Notification struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      string `gorm:"type:varchar(30);not null;index" json:"type"`
	Title     string `gorm:"type:varchar(255);not null" json:"title"`
	TitleAr   string `gorm:"type:varchar(255)" json:"title_ar"`
	Message   string `gorm:"type:text" json:"message"`
	MessageAr string `gorm:"type:text" json:"message_ar"`
	IsRead    bool   `gorm:"default:false;index" json:"is_read"`

	// Optional payload
	Amount           *decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount,omitempty"`
	Quantity         *int             `json:"quantity,omitempty"`
	PreviousQuantity *int             `json:"previous_quantity,omitempty"`
	NewQuantity      *int             `json:"new_quantity,omitempty"`
	Reason           string           `gorm:"type:text" json:"reason,omitempty"`
	ActorName        string           `gorm:"type:varchar(255)" json:"actor_name,omitempty"`
	TargetRole       string           `gorm:"type:varchar(50);index" json:"target_role,omitempty"`
	ItemID           *uint            `gorm:"index" json:"item_id,omitempty"` // inventory item, for low/out-of-stock dedup

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
