package repository

import (
	"context"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository persists the exchange-rate table and key-value
// preferences so a restart preserves the last configuration.
type SettingsRepository interface {
	ListRates(ctx context.Context) ([]model.ExchangeRate, error)
	UpsertRate(ctx context.Context, currency string, rate decimal.Decimal) error
	ReplaceRates(ctx context.Context, rates []model.ExchangeRate) error

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) ListRates(ctx context.Context) ([]model.ExchangeRate, error) {
	var rates []model.ExchangeRate
	if err := GetDB(ctx, r.db).Order("currency").Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *settingsRepository) UpsertRate(ctx context.Context, currency string, rate decimal.Decimal) error {
	row := model.ExchangeRate{Currency: currency, Rate: rate}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
	}).Create(&row).Error
}

func (r *settingsRepository) ReplaceRates(ctx context.Context, rates []model.ExchangeRate) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("1 = 1").Delete(&model.ExchangeRate{}).Error; err != nil {
		return err
	}
	if len(rates) == 0 {
		return nil
	}
	return db.Create(&rates).Error
}

func (r *settingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var setting model.AppSetting
	if err := GetDB(ctx, r.db).First(&setting, "key = ?", key).Error; err != nil {
		return "", translate(err)
	}
	return setting.Value, nil
}

func (r *settingsRepository) SetSetting(ctx context.Context, key, value string) error {
	row := model.AppSetting{Key: key, Value: value}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
