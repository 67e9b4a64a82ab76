package bitcointx

import (
	"testing"
)

// mustTimestamp parses s or fails the test.
func mustTimestamp(t *testing.T, s string) Timestamp {
	t.Helper()
	ts, err := ParseTimestamp(s)
	if err != nil {
		t.Fatalf("ParseTimestamp(%q) failed: %v", s, err)
	}
	return ts
}

// newTestEntry returns a fresh entry of type typ at 2025-03-01T12:00, with
// kv applied as successive field/value pairs.
func newTestEntry(t *testing.T, typ TransactionType, kv ...string) Entry {
	t.Helper()
	e, err := NewEntry(typ, mustTimestamp(t, "2025-03-01T12:00"))
	if err != nil {
		t.Fatalf("NewEntry(%q) failed: %v", typ, err)
	}
	if len(kv)%2 != 0 {
		t.Fatalf("newTestEntry: odd number of field/value arguments")
	}
	for i := 0; i < len(kv); i += 2 {
		if err := e.SetValue(Field(kv[i]), kv[i+1]); err != nil {
			t.Fatalf("SetValue(%q, %q) failed: %v", kv[i], kv[i+1], err)
		}
	}
	return e
}

// completeEntries returns one entry per transaction type with every required
// and derived field set.
func completeEntries(t *testing.T) []Entry {
	t.Helper()
	return []Entry{
		newTestEntry(t, TypeDeposit, "account", "Wallet", "currency", "BTC", "amount", "0.5", "source", "Gift", "costBasisUSD", "15000"),
		newTestEntry(t, TypeWithdrawal, "account", "Bank", "currency", "USD", "amount", "250"),
		newTestEntry(t, TypeTransfer, "fromAccount", "Wallet", "fromCurrency", "BTC", "toAccount", "Exchange", "toCurrency", "BTC",
			"amountFrom", "1", "amountTo", "0.999", "fee", "0.00100000"),
		newTestEntry(t, TypeBuy, "amountUSD", "1000", "amountBTC", "0.02", "fee", "5"),
		newTestEntry(t, TypeSell, "amountUSD", "2100", "amountBTC", "0.03", "fee", "4.5"),
	}
}
