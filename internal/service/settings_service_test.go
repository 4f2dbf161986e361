package service

import (
	"context"
	"errors"
	"testing"

	"backend/internal/currency"
	"backend/internal/repository"
	"backend/internal/repository/memory"

	"github.com/shopspring/decimal"
)

// brokenRateRepo fails every rate write to exercise the persist-first path.
type brokenRateRepo struct {
	repository.SettingsRepository
}

var errStorageDown = errors.New("storage down")

func (r *brokenRateRepo) UpsertRate(context.Context, string, decimal.Decimal) error {
	return errStorageDown
}

func TestUpdateRatePersistsBeforeConverter(t *testing.T) {
	store := memory.New()
	converter := currency.NewConverter()
	svc := NewSettingsService(&brokenRateRepo{store.Settings()}, converter)

	err := svc.UpdateRate(context.Background(), "USD", UpdateRateRequest{Rate: "1500"})
	if !errors.Is(err, errStorageDown) {
		t.Fatalf("expected storage error to surface, got %v", err)
	}
	if got := converter.Rates()["USD"]; !got.Equal(decimal.NewFromInt(1310)) {
		t.Fatalf("converter rate changed despite failed persist: %s", got)
	}
}

func TestUpdateRateValidatesBeforeStorage(t *testing.T) {
	store := memory.New()
	converter := currency.NewConverter()
	svc := NewSettingsService(store.Settings(), converter)
	ctx := context.Background()

	if err := svc.UpdateRate(ctx, "IQD", UpdateRateRequest{Rate: "2"}); !errors.Is(err, currency.ErrBaseCurrency) {
		t.Fatalf("expected ErrBaseCurrency, got %v", err)
	}
	if err := svc.UpdateRate(ctx, "USD", UpdateRateRequest{Rate: "-5"}); !errors.Is(err, currency.ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}

	rows, err := store.Settings().ListRates(ctx)
	if err != nil {
		t.Fatalf("list rates: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rejected rates must not be persisted, found %d rows", len(rows))
	}
}

func TestUpdateRateAppliesToBothStores(t *testing.T) {
	store := memory.New()
	converter := currency.NewConverter()
	svc := NewSettingsService(store.Settings(), converter)
	ctx := context.Background()

	if err := svc.UpdateRate(ctx, "USD", UpdateRateRequest{Rate: "1450"}); err != nil {
		t.Fatalf("update rate: %v", err)
	}
	if got := converter.Rates()["USD"]; !got.Equal(decimal.NewFromInt(1450)) {
		t.Fatalf("converter rate = %s, want 1450", got)
	}
	rows, err := store.Settings().ListRates(ctx)
	if err != nil {
		t.Fatalf("list rates: %v", err)
	}
	if len(rows) != 1 || rows[0].Currency != "USD" || !rows[0].Rate.Equal(decimal.NewFromInt(1450)) {
		t.Fatalf("persisted rates mismatch: %+v", rows)
	}
}
