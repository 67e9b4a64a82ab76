package bitcointx

import "testing"

func TestAmountFormat(t *testing.T) {
	tests := []struct {
		amount   Amount
		currency Currency
		signed   bool
		want     string
	}{
		{A(1234.56), USD, false, "$1,234.56"},
		{A(1234.56), USD, true, "+$1,234.56"},
		{A(-12.5), USD, true, "-$12.50"},
		{A(0), USD, true, "$0.00"},
		{A(0.001), BTC, false, "0.00100000 BTC"},
		{A(2.005), USD, false, "$2.01"},
	}
	for _, tt := range tests {
		got := tt.amount.Format(tt.currency)
		if tt.signed {
			got = tt.amount.SignedFormat(tt.currency)
		}
		if got != tt.want {
			t.Errorf("Format(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}
