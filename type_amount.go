package bitcointx

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Amount is an exact decimal quantity of USD or BTC. No rounding is applied
// unless explicitly asked for.
type Amount struct {
	value decimal.Decimal
}

// A creates an Amount from a number.
func A[T float64 | int | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

var errNotANumber = errors.New("not a number")

// plainDecimal is an optional sign, digits and an optional fraction. Exponents
// are rejected: rescaling 1e-50000000 is unbounded work.
var plainDecimal = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// ParseAmount parses a user typed decimal number. Surrounding spaces are
// ignored; anything else that is not a plain decimal is a *ParseError.
func ParseAmount(f Field, s string) (Amount, error) {
	in := strings.TrimSpace(s)
	if !plainDecimal.MatchString(in) {
		return Amount{}, &ParseError{Field: f, Input: s, Err: errNotANumber}
	}
	d, err := decimal.NewFromString(in)
	if err != nil {
		return Amount{}, &ParseError{Field: f, Input: s, Err: errNotANumber}
	}
	return Amount{value: d}, nil
}

// normalize is the numeric normalizer applied to every numeric field at build
// time: an empty required field is a *ValidationError, an empty optional one
// is zero, and non numeric input is a *ParseError.
func normalize(f Field, s string, required bool) (Amount, error) {
	if strings.TrimSpace(s) == "" {
		if required {
			return Amount{}, missing(f)
		}
		return Amount{}, nil
	}
	return ParseAmount(f, s)
}

func (a Amount) Decimal() decimal.Decimal   { return a.value }
func (a Amount) Equal(b Amount) bool        { return a.value.Equal(b.value) }
func (a Amount) IsZero() bool               { return a.value.IsZero() }
func (a Amount) IsPositive() bool           { return a.value.IsPositive() }
func (a Amount) IsNegative() bool           { return a.value.IsNegative() }
func (a Amount) Sub(b Amount) Amount        { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Mul(b Amount) Amount        { return Amount{value: a.value.Mul(b.value)} }
func (a Amount) Round(places int32) Amount  { return Amount{value: a.value.Round(places)} }
func (a Amount) String() string             { return a.value.String() }
func (a Amount) StringFixed(p int32) string { return a.value.StringFixed(p) }

// Places returns the number of significant fractional digits.
func (a Amount) Places() int32 { return decimalPlaces(a.value) }

// decimalPlaces returns the number of significant fractional digits of d.
func decimalPlaces(d decimal.Decimal) int32 {
	s := d.String() // trailing zeros are already trimmed
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return int32(len(s) - i - 1)
	}
	return 0
}

// MarshalJSON writes the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts both a JSON number and a numeric string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.value.UnmarshalJSON(data)
}
