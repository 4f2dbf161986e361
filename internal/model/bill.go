package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus constants
const (
	BillPaid   = "paid"
	BillUnpaid = "unpaid"
)

// Bill represents a receipt generated when an appointment is paid.
// Customer, service and staff fields are denormalized snapshots taken at
// creation time and never re-derived from the referenced rows.
type Bill struct {
	ID            uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uint  `gorm:"not null;index" json:"appointment_id"`
	CustomerID    uint  `gorm:"not null;index" json:"customer_id"`
	BranchID      *uint `gorm:"index" json:"branch_id"`

	// BillNo is formatted RCP-<year>-<5-digit-sequence>
	BillNo string `gorm:"type:varchar(30);uniqueIndex;not null" json:"bill_no"`
	// IdempotencyKey guards against a payment flow being submitted twice
	IdempotencyKey string `gorm:"type:varchar(64);uniqueIndex" json:"-"`

	CustomerName string `gorm:"type:varchar(255)" json:"customer_name"`
	ServiceName  string `gorm:"type:varchar(255)" json:"service_name"`
	StaffName    string `gorm:"type:varchar(255)" json:"staff_name"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"discount_amount"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"tax_rate"` // percent
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_amount"`
	DepositAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"deposit_amount"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"grand_total"`
	AmountDue      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount_due"`

	PaymentMethod   string    `gorm:"type:varchar(30)" json:"payment_method"`
	PaymentCurrency string    `gorm:"type:varchar(10)" json:"payment_currency"`
	Status          string    `gorm:"type:varchar(20);not null;default:'paid'" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
