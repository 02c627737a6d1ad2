// Package money provides an exact two-decimal monetary value type.
//
// All arithmetic is performed in decimal arithmetic (shopspring/decimal);
// binary floating point is never used for money. Values are normalized to
// two fraction digits, which is also the precision used for storage and
// comparison. Share computation rounds toward zero so that remainders are
// handled explicitly by the caller, never silently spread.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const scale = 2

var oneHundred = decimal.NewFromInt(100)

// Money is an exact monetary amount with two fraction digits.
// The zero value is 0.00 and ready to use.
type Money struct {
	d decimal.Decimal
}

// FromDecimal truncates d toward zero to two decimals and returns it as Money.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d.Truncate(scale)}
}

// FromCents builds a Money from an amount in minor units (cents).
func FromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -scale)}
}

// FromString parses a decimal string such as "12.34".
// Input with more than two fraction digits is rejected rather than rounded.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.Equal(d.Truncate(scale)) {
		return Money{}, fmt.Errorf("amount %q has more than %d decimal places", s, scale)
	}
	return Money{d: d}, nil
}

// MustFromString is FromString that panics on error. For constants and tests.
func MustFromString(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.d }

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.d.Shift(scale).IntPart()
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }
func (m Money) Neg() Money        { return Money{d: m.d.Neg()} }
func (m Money) Abs() Money        { return Money{d: m.d.Abs()} }

// Cmp compares m and o, returning -1, 0 or 1.
func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }

func (m Money) Equal(o Money) bool    { return m.d.Equal(o.d) }
func (m Money) LessThan(o Money) bool { return m.d.LessThan(o.d) }
func (m Money) IsZero() bool          { return m.d.IsZero() }
func (m Money) IsPositive() bool      { return m.d.IsPositive() }
func (m Money) IsNegative() bool      { return m.d.IsNegative() }

// Min returns the smaller of m and o.
func (m Money) Min(o Money) Money {
	if m.LessThan(o) {
		return m
	}
	return o
}

// MulInt returns m multiplied by an integer count. Exact.
func (m Money) MulInt(n int64) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(n))}
}

// DivFloor divides m by n and truncates the result toward zero to two
// decimals. Used for equal splits, where the dropped remainder is assigned
// explicitly by the caller.
func (m Money) DivFloor(n int64) Money {
	return Money{d: m.d.Div(decimal.NewFromInt(n)).Truncate(scale)}
}

// PercentFloor returns p percent of m, truncated toward zero to two decimals.
func (m Money) PercentFloor(p decimal.Decimal) Money {
	return Money{d: m.d.Mul(p).Div(oneHundred).Truncate(scale)}
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.d.StringFixed(scale)
}

// MarshalJSON encodes the amount as a JSON string with two decimal places,
// e.g. "12.34". Strings rather than numbers keep clients from re-introducing
// binary floating point on their side of the wire.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted and bare decimal literals.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
