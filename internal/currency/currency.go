// Package currency converts between the base currency (IQD, 0 decimal
// places) and display currencies, using a mutable table of exchange rates
// expressed as units of base currency per 1 unit of the foreign currency.
package currency

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// BaseCurrency is the unit all monetary fields are stored in
const BaseCurrency = "IQD"

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidRate     = errors.New("exchange rate must be greater than 0")
	ErrBaseCurrency    = errors.New("base currency rate is fixed at 1")
)

// defaultRates is the built-in table restored by ResetRates
var defaultRates = map[string]decimal.Decimal{
	BaseCurrency: decimal.NewFromInt(1),
	"USD":        decimal.NewFromInt(1310),
	"EUR":        decimal.NewFromInt(1420),
	"GBP":        decimal.NewFromInt(1655),
	"TRY":        decimal.NewFromInt(38),
}

var symbols = map[string]string{
	BaseCurrency: "د.ع",
	"USD":        "$",
	"EUR":        "€",
	"GBP":        "£",
	"TRY":        "₺",
}

// Converter holds the mutable rate table. Safe for concurrent readers;
// writers go through UpdateRate/ResetRates/Load.
type Converter struct {
	mu     sync.RWMutex
	rates  map[string]decimal.Decimal
	locale language.Tag
}

func NewConverter() *Converter {
	c := &Converter{locale: language.English}
	c.resetLocked()
	return c
}

func (c *Converter) resetLocked() {
	c.rates = make(map[string]decimal.Decimal, len(defaultRates))
	for code, rate := range defaultRates {
		c.rates[code] = rate
	}
}

// Convert turns an amount held in base currency into the target currency
func (c *Converter) Convert(amountInBase decimal.Decimal, target string) (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rate, ok := c.rates[target]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, target)
	}
	return amountInBase.Div(rate), nil
}

// ConvertToBase turns an amount in the source currency into base currency
func (c *Converter) ConvertToBase(amount decimal.Decimal, source string) (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rate, ok := c.rates[source]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, source)
	}
	return amount.Mul(rate), nil
}

// UpdateRate replaces the rate for a non-base currency. Rates must be
// strictly positive; the base currency cannot be changed.
// CheckRate validates a prospective rate without applying it
func (c *Converter) CheckRate(code string, rate decimal.Decimal) error {
	if code == BaseCurrency {
		return ErrBaseCurrency
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}
	return nil
}

func (c *Converter) UpdateRate(code string, rate decimal.Decimal) error {
	if err := c.CheckRate(code, rate); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[code] = rate
	return nil
}

// ResetRates restores the built-in default table
func (c *Converter) ResetRates() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// Load replaces the table wholesale, e.g. from persisted settings.
// The base currency entry is pinned to 1 regardless of input.
func (c *Converter) Load(rates map[string]decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates = make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		if code == BaseCurrency || rate.LessThanOrEqual(decimal.Zero) {
			continue
		}
		c.rates[code] = rate
	}
	c.rates[BaseCurrency] = decimal.NewFromInt(1)
}

// Rates returns a copy of the current table
func (c *Converter) Rates() map[string]decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(c.rates))
	for code, rate := range c.rates {
		out[code] = rate
	}
	return out
}

// SetLocale switches the formatting locale ("en", "ar", ...)
func (c *Converter) SetLocale(tag string) error {
	parsed, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	c.mu.Lock()
	c.locale = parsed
	c.mu.Unlock()
	return nil
}

// Decimals returns the display precision for a currency: the base currency
// carries 0 decimal places, everything else 2.
func Decimals(code string) int {
	if code == BaseCurrency {
		return 0
	}
	return 2
}

// Format renders an amount already expressed in the given currency with
// locale-appropriate grouping and currency precision, optionally suffixed
// with the currency symbol.
func (c *Converter) Format(amount decimal.Decimal, code string, withSymbol bool) string {
	c.mu.RLock()
	locale := c.locale
	c.mu.RUnlock()

	scale := Decimals(code)
	value, _ := amount.Round(int32(scale)).Float64()
	p := message.NewPrinter(locale)
	formatted := p.Sprintf("%v", number.Decimal(value,
		number.Scale(scale),
		number.MinFractionDigits(scale),
	))
	if !withSymbol {
		return formatted
	}
	symbol, ok := symbols[code]
	if !ok {
		symbol = code
	}
	return formatted + " " + symbol
}

// FormatBase converts an amount held in base currency to the display
// currency and formats it in one step.
func (c *Converter) FormatBase(amountInBase decimal.Decimal, display string, withSymbol bool) (string, error) {
	converted, err := c.Convert(amountInBase, display)
	if err != nil {
		return "", err
	}
	return c.Format(converted, display, withSymbol), nil
}
