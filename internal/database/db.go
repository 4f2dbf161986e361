package database

import (
	"log"

	"backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.UserBranch{},
		&model.RefreshToken{},
		&model.Branch{},
		&model.Customer{},
		&model.ServiceCategory{},
		&model.Service{},
		&model.InventoryItem{},
		&model.StockMovement{},
		&model.Appointment{},
		&model.Bill{},
		&model.Transaction{},
		&model.Notification{},
		&model.ExchangeRate{},
		&model.AppSetting{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
