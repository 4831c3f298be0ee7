package commission

import (
	"fmt"
	"maps"

	"github.com/shopspring/decimal"
)

// Rates maps a currency to its value for one unit of the Reference currency
// (1 EUR = 1.1497 USD).
type Rates map[Currency]decimal.Decimal

// DefaultRates returns the fixed conversion rates.
func DefaultRates() Rates {
	return Rates{
		USD: decimal.RequireFromString("1.1497"),
		JPY: decimal.RequireFromString("129.53"),
	}
}

// Converter converts amounts between the Reference currency and the other
// supported currencies at fixed rates.
type Converter struct {
	rates Rates
}

// NewConverter returns a Converter using rates. Every rate must be positive
// and the Reference currency, if present, must have a rate of one.
func NewConverter(rates Rates) (*Converter, error) {
	for cur, rate := range rates {
		if !cur.Supported() {
			return nil, fmt.Errorf("rate for %q: %w", cur, ErrUnsupportedCurrency)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate for %s must be positive, got %s", cur, rate)
		}
		if cur == Reference && !rate.Equal(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("rate for the reference currency %s must be 1, got %s", cur, rate)
		}
	}
	return &Converter{rates: maps.Clone(rates)}, nil
}

// DefaultConverter returns a Converter with the DefaultRates.
func DefaultConverter() *Converter {
	c, err := NewConverter(DefaultRates())
	if err != nil {
		panic(err)
	}
	return c
}

// Rate returns the value of one Reference unit in cur.
func (c *Converter) Rate(cur Currency) (decimal.Decimal, error) {
	if cur == Reference {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := c.rates[cur]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: no rate for %q", ErrUnsupportedCurrency, cur)
	}
	return rate, nil
}

// ToReference returns the amount of m in the Reference currency.
func (c *Converter) ToReference(m Money) (decimal.Decimal, error) {
	if m.Currency() == Reference {
		return m.Value(), nil
	}
	rate, err := c.Rate(m.Currency())
	if err != nil {
		return decimal.Decimal{}, err
	}
	return m.Value().Div(rate), nil
}

// FromReference returns amount, expressed in the Reference currency, as Money in cur.
func (c *Converter) FromReference(amount decimal.Decimal, cur Currency) (Money, error) {
	if cur == Reference {
		return M(amount, Reference), nil
	}
	rate, err := c.Rate(cur)
	if err != nil {
		return Money{}, err
	}
	return M(amount.Mul(rate), cur), nil
}
