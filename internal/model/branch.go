package model

import (
	"time"

	"gorm.io/gorm"
)

// Branch represents a physical salon location. Most entities carry an
// optional branch reference; records without one are treated as visible
// under every branch.
type Branch struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	NameAr    string         `gorm:"type:varchar(255)" json:"name_ar"`
	Code      string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Address   string         `gorm:"type:text" json:"address"`
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
