package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/currency"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

type UpdateRateRequest struct {
	Rate string `json:"rate" binding:"required"` // base units per 1 unit of the currency
}

type Preferences struct {
	DisplayCurrency string `json:"display_currency"`
	Locale          string `json:"locale"`
	TaxRate         string `json:"tax_rate"`
}

// SettingsService owns exchange rates and app preferences. Rate writes go
// to both the persisted table and the in-process converter so that money
// formatting picks up a change without a restart.
type SettingsService interface {
	Rates(ctx context.Context) (map[string]decimal.Decimal, error)
	UpdateRate(ctx context.Context, code string, req UpdateRateRequest) error
	ResetRates(ctx context.Context) error

	GetPreferences(ctx context.Context) (Preferences, error)
	SetPreferences(ctx context.Context, prefs Preferences) error

	// LoadRates hydrates the converter from the persisted rates at startup
	LoadRates(ctx context.Context) error
}

type settingsService struct {
	repo      repository.SettingsRepository
	converter *currency.Converter
}

func NewSettingsService(repo repository.SettingsRepository, converter *currency.Converter) SettingsService {
	return &settingsService{repo: repo, converter: converter}
}

func (s *settingsService) Rates(ctx context.Context) (map[string]decimal.Decimal, error) {
	return s.converter.Rates(), nil
}

func (s *settingsService) UpdateRate(ctx context.Context, code string, req UpdateRateRequest) error {
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return fmt.Errorf("invalid rate: %w", err)
	}
	if err := s.converter.CheckRate(code, rate); err != nil {
		return err
	}
	// Persist before mutating the converter so a storage failure cannot
	// leave the two disagreeing until restart
	if err := s.repo.UpsertRate(ctx, code, rate); err != nil {
		return fmt.Errorf("failed to persist rate: %w", err)
	}
	return s.converter.UpdateRate(code, rate)
}

func (s *settingsService) ResetRates(ctx context.Context) error {
	s.converter.ResetRates()
	rates := s.converter.Rates()
	rows := make([]model.ExchangeRate, 0, len(rates))
	for code, rate := range rates {
		rows = append(rows, model.ExchangeRate{Currency: code, Rate: rate})
	}
	if err := s.repo.ReplaceRates(ctx, rows); err != nil {
		return fmt.Errorf("failed to persist default rates: %w", err)
	}
	return nil
}

func (s *settingsService) GetPreferences(ctx context.Context) (Preferences, error) {
	prefs := Preferences{
		DisplayCurrency: currency.BaseCurrency,
		Locale:          "en",
		TaxRate:         "0",
	}
	if v, err := s.getSetting(ctx, model.PrefDisplayCurrency); err != nil {
		return prefs, err
	} else if v != "" {
		prefs.DisplayCurrency = v
	}
	if v, err := s.getSetting(ctx, model.PrefLocale); err != nil {
		return prefs, err
	} else if v != "" {
		prefs.Locale = v
	}
	if v, err := s.getSetting(ctx, model.PrefTaxRate); err != nil {
		return prefs, err
	} else if v != "" {
		prefs.TaxRate = v
	}
	return prefs, nil
}

func (s *settingsService) getSetting(ctx context.Context, key string) (string, error) {
	v, err := s.repo.GetSetting(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (s *settingsService) SetPreferences(ctx context.Context, prefs Preferences) error {
	if prefs.DisplayCurrency != "" {
		if _, err := s.converter.Convert(decimal.Zero, prefs.DisplayCurrency); err != nil {
			return err
		}
		if err := s.repo.SetSetting(ctx, model.PrefDisplayCurrency, prefs.DisplayCurrency); err != nil {
			return err
		}
	}
	if prefs.Locale != "" {
		if err := s.converter.SetLocale(prefs.Locale); err != nil {
			return err
		}
		if err := s.repo.SetSetting(ctx, model.PrefLocale, prefs.Locale); err != nil {
			return err
		}
	}
	if prefs.TaxRate != "" {
		rate, err := decimal.NewFromString(prefs.TaxRate)
		if err != nil {
			return fmt.Errorf("invalid tax_rate: %w", err)
		}
		if rate.IsNegative() {
			return ErrInvalidAmount
		}
		if err := s.repo.SetSetting(ctx, model.PrefTaxRate, prefs.TaxRate); err != nil {
			return err
		}
	}
	return nil
}

func (s *settingsService) LoadRates(ctx context.Context) error {
	rows, err := s.repo.ListRates(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rates: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	rates := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		rates[row.Currency] = row.Rate
	}
	s.converter.Load(rates)
	return nil
}
