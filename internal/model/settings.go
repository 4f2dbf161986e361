package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores units of base currency per 1 unit of Currency.
// The base currency itself keeps a fixed rate of 1 and is never updated.
type ExchangeRate struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Currency  string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"currency"`
	Rate      decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"rate"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Preference keys persisted across sessions
const (
	PrefDisplayCurrency = "display_currency"
	PrefLocale          = "locale"
	PrefTaxRate         = "tax_rate"
)

// AppSetting is a persisted key-value preference (display currency, locale, tax rate)
type AppSetting struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
