package commission

import (
	"fmt"
	"slices"
	"strings"
)

// Currency is an ISO 4217 currency code supported by the calculator.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	JPY Currency = "JPY"
)

// Reference is the currency every amount is normalized to before a fee
// formula applies.
const Reference = EUR

var supported = []Currency{EUR, USD, JPY}

// Currencies returns the supported currencies, reference first.
func Currencies() []Currency { return slices.Clone(supported) }

// ParseCurrency parses a currency code, case insensitive.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.Supported() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return c, nil
}

// Supported reports whether c is one of the supported currencies.
func (c Currency) Supported() bool { return slices.Contains(supported, c) }

// Symbol returns the currency grapheme, like "€".
func (c Currency) Symbol() string { return c.meta().Grapheme }

func (c Currency) String() string { return string(c) }
