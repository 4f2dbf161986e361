package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer represents a salon client.
// TotalVisits and TotalSpent are not stored; they are recomputed from
// bills at read time and exposed through the service layer.
type Customer struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string         `gorm:"type:varchar(20);index" json:"phone"`
	Email     string         `gorm:"type:varchar(255)" json:"email"`
	Address   string         `gorm:"type:text" json:"address"`
	Notes     string         `gorm:"type:text" json:"notes"`
	BranchID  *uint          `gorm:"index" json:"branch_id"`
	Branch    *Branch        `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CustomerStats carries the read-time aggregates derived from bills
type CustomerStats struct {
	TotalVisits int64           `json:"total_visits"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}
