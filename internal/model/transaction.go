package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType constants
const (
	TxIncome  = "income"
	TxExpense = "expense"
)

// Transaction records a single income or expense entry in base currency.
// Reference is auto-generated as INC-<year>-<4-digit-seq> or EXP-<year>-<4-digit-seq>.
type Transaction struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Type        string          `gorm:"type:varchar(10);not null;index" json:"type"` // income, expense
	Reference   string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"reference"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"` // base currency
	Method      string          `gorm:"type:varchar(30)" json:"method"`
	ActorName   string          `gorm:"type:varchar(255)" json:"actor_name"`
	BillID      *uint           `gorm:"index" json:"bill_id"`
	BranchID    *uint           `gorm:"index" json:"branch_id"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
