package commission

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Places is the number of decimal places fees are presented with.
const Places = 2

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value in a given currency, in full precision.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   Currency
}

// M returns value as Money in currency cur.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, cur Currency) Money {
	return Money{value: newDecimal(value), cur: cur}
}

// ParseMoney parses a decimal amount like "1200.00" in currency cur.
func ParseMoney(amount string, cur Currency) (Money, error) {
	v, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{value: v, cur: cur}, nil
}

func (m Money) Currency() Currency              { return m.cur }
func (m Money) Value() decimal.Decimal          { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }

// Add returns m+n. It panics if the currencies differ.
func (m Money) Add(n Money) Money {
	if m.cur != n.cur {
		panic("currency mismatch " + string(m.cur) + "!=" + string(n.cur))
	}
	return Money{value: m.value.Add(n.value), cur: m.cur}
}

// Round returns m rounded to the presentation precision.
func (m Money) Round() Money { return Money{value: m.value.Round(Places), cur: m.cur} }

// Fixed returns the amount alone, with exactly Places decimals ("0.60").
func (m Money) Fixed() string { return m.value.StringFixed(Places) }

// String returns the amount formatted with the currency symbol ("€0.60").
func (m Money) String() string {
	f := *m.cur.meta().Formatter()
	// Fees are always presented with Places decimals, even in JPY.
	f.Fraction = Places
	return f.Format(m.value.Shift(Places).Round(0).IntPart())
}

// Deprecated: AsFloat should no longer be used, the purpose is to keep the calculation exact.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// meta returns the go-money description of c.
func (c Currency) meta() *money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return money.New(0, string(c)).Currency()
}
