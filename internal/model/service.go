package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceCategory groups catalog services (hair, nails, skincare, ...)
type ServiceCategory struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"type:varchar(255);not null" json:"name"`
	NameAr string `gorm:"type:varchar(255)" json:"name_ar"`
}

// Service represents a bookable salon service with a bilingual display name
type Service struct {
	ID         uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID *uint            `gorm:"index" json:"category_id"`
	Category   *ServiceCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name       string           `gorm:"type:varchar(255);not null" json:"name"`
	NameAr     string           `gorm:"type:varchar(255)" json:"name_ar"`
	Price      decimal.Decimal  `gorm:"type:decimal(18,2);not null" json:"price"` // base currency
	Duration   int              `gorm:"not null;default:30" json:"duration"`      // minutes
	Active     bool             `gorm:"default:true" json:"active"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"-"`
}
