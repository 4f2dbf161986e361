package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AppointmentStatus constants
const (
	AppointmentPending    = "pending"
	AppointmentConfirmed  = "confirmed"
	AppointmentInProgress = "in_progress"
	AppointmentDone       = "done"
	AppointmentCancelled  = "cancelled"
)

// Appointment represents a booked salon visit.
// TotalPrice is always recomputed from Price - Discount on create/edit,
// never accepted independently from the caller.
type Appointment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ServiceID  uint      `gorm:"not null;index" json:"service_id"`
	Service    *Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	StaffID    *uint     `gorm:"index" json:"staff_id"`
	Staff      *User     `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	BranchID   *uint     `gorm:"index" json:"branch_id"`
	Branch     *Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`

	Date     time.Time       `gorm:"not null;index" json:"date"`
	Time     string          `gorm:"type:varchar(10)" json:"time"` // "14:30"
	Duration int             `gorm:"not null;default:30" json:"duration"`
	Price    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Discount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"discount"`
	// TotalPrice = Price - Discount, recomputed by the service layer
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_price"`

	// Deposit side channel
	DepositAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"deposit_amount"`      // in deposit currency
	DepositAmountBase decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"deposit_amount_base"` // converted to base currency
	DepositCurrency   string          `gorm:"type:varchar(10)" json:"deposit_currency"`
	DepositPaid       bool            `gorm:"default:false" json:"deposit_paid"`
	DepositMethod     string          `gorm:"type:varchar(30)" json:"deposit_method"`

	Status    string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
