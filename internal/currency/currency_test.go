package currency

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestConvertRoundTrip(t *testing.T) {
	c := NewConverter()

	base := decimal.NewFromInt(131000)
	usd, err := c.Convert(base, "USD")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !usd.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected 100 USD, got %s", usd)
	}

	back, err := c.ConvertToBase(usd, "USD")
	if err != nil {
		t.Fatalf("convert to base: %v", err)
	}
	if !back.Equal(base) {
		t.Fatalf("round trip mismatch: %s != %s", back, base)
	}
}

func TestConvertUnknownCurrency(t *testing.T) {
	c := NewConverter()
	if _, err := c.Convert(decimal.NewFromInt(1000), "XYZ"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestUpdateRateValidation(t *testing.T) {
	c := NewConverter()

	if err := c.UpdateRate(BaseCurrency, decimal.NewFromInt(2)); !errors.Is(err, ErrBaseCurrency) {
		t.Fatalf("expected ErrBaseCurrency, got %v", err)
	}
	if err := c.UpdateRate("USD", decimal.Zero); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate for zero, got %v", err)
	}
	if err := c.UpdateRate("USD", decimal.NewFromInt(-5)); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate for negative, got %v", err)
	}

	if err := c.UpdateRate("USD", decimal.NewFromInt(1400)); err != nil {
		t.Fatalf("valid update failed: %v", err)
	}
	if got := c.Rates()["USD"]; !got.Equal(decimal.NewFromInt(1400)) {
		t.Fatalf("expected rate 1400, got %s", got)
	}

	c.ResetRates()
	if got := c.Rates()["USD"]; !got.Equal(decimal.NewFromInt(1310)) {
		t.Fatalf("expected default rate 1310 after reset, got %s", got)
	}
}

func TestLoadPinsBaseRate(t *testing.T) {
	c := NewConverter()
	c.Load(map[string]decimal.Decimal{
		BaseCurrency: decimal.NewFromInt(99), // ignored
		"USD":        decimal.NewFromInt(1500),
		"EUR":        decimal.Zero, // invalid, skipped
	})

	rates := c.Rates()
	if !rates[BaseCurrency].Equal(decimal.NewFromInt(1)) {
		t.Fatalf("base rate must stay 1, got %s", rates[BaseCurrency])
	}
	if !rates["USD"].Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected USD 1500, got %s", rates["USD"])
	}
	if _, ok := rates["EUR"]; ok {
		t.Fatalf("invalid EUR rate should have been skipped")
	}
}

func TestDecimals(t *testing.T) {
	if got := Decimals(BaseCurrency); got != 0 {
		t.Fatalf("base currency carries 0 decimals, got %d", got)
	}
	if got := Decimals("USD"); got != 2 {
		t.Fatalf("USD carries 2 decimals, got %d", got)
	}
}

func TestFormat(t *testing.T) {
	c := NewConverter()

	if got := c.Format(decimal.NewFromInt(25000), BaseCurrency, false); got != "25,000" {
		t.Fatalf("expected 25,000, got %q", got)
	}
	if got := c.Format(decimal.NewFromInt(25000), BaseCurrency, true); got != "25,000 د.ع" {
		t.Fatalf("unexpected symbol formatting: %q", got)
	}
	if got := c.Format(decimal.NewFromFloat(12.5), "USD", true); got != "12.50 $" {
		t.Fatalf("expected 12.50 $, got %q", got)
	}
}

func TestFormatBase(t *testing.T) {
	c := NewConverter()

	got, err := c.FormatBase(decimal.NewFromInt(131000), "USD", true)
	if err != nil {
		t.Fatalf("format base: %v", err)
	}
	if got != "100.00 $" {
		t.Fatalf("expected 100.00 $, got %q", got)
	}

	if _, err := c.FormatBase(decimal.NewFromInt(1000), "XYZ", false); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}
