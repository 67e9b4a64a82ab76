package bitcointx

import (
	"github.com/Rhymond/go-money"
)

func init() {
	// go-money knows nothing about bitcoin, register it with satoshi precision.
	money.AddCurrency(string(BTC), "BTC", "1 $", ".", ",", 8)
}

// Format returns the amount formatted for display in currency c, e.g.
// "$1,234.56" or "0.00100000 BTC". The amount is rounded to the currency
// precision for display only.
func (a Amount) Format(c Currency) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, string(c)).Currency()
	minor := a.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedFormat is like Format but always prefixes positive amounts with "+".
// Zero is formatted without a sign.
func (a Amount) SignedFormat(c Currency) string {
	if a.value.IsPositive() {
		return "+" + a.Format(c)
	}
	return a.Format(c)
}
