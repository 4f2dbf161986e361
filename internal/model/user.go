package model

import (
	"time"

	"gorm.io/gorm"
)

// Role constants
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User represents a salon staff account
type User struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Username   string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	FullName   string         `gorm:"type:varchar(255);not null" json:"full_name"`
	FullNameAr string         `gorm:"type:varchar(255)" json:"full_name_ar"`
	Email      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone      string         `gorm:"type:varchar(20)" json:"phone"`
	Password   string         `gorm:"type:varchar(255);not null" json:"-"`                   // Omit password from JSON requests/responses
	Role       string         `gorm:"type:varchar(50);not null;default:'staff'" json:"role"` // admin, manager, staff
	Active     bool           `gorm:"default:true" json:"active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

// UserBranch grants a non-admin user access to a branch.
// Admins have implicit access to every branch and carry no rows here.
type UserBranch struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint `gorm:"not null;index:idx_user_branch,unique" json:"user_id"`
	BranchID uint `gorm:"not null;index:idx_user_branch,unique" json:"branch_id"`
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
