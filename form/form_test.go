package form

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/etnz/bitcointx"
	"github.com/rs/zerolog"
)

var testNow = time.Date(2025, 3, 1, 12, 34, 56, 0, time.UTC)

// newTestForm returns a form with a fixed clock in UTC and type t selected.
func newTestForm(t *testing.T, typ bitcointx.TransactionType) *Form {
	t.Helper()
	f := New(Options{
		ReferencePrice: bitcointx.A(30000),
		Location:       time.UTC,
		Now:            func() time.Time { return testNow },
		Logger:         zerolog.Nop(),
	})
	if _, err := f.SelectType(typ); err != nil {
		t.Fatalf("SelectType(%q) failed: %v", typ, err)
	}
	return f
}

// set applies kv as successive edits.
func set(t *testing.T, f *Form, kv ...string) {
	t.Helper()
	for i := 0; i+1 < len(kv); i += 2 {
		if _, err := f.Set(bitcointx.Field(kv[i]), kv[i+1]); err != nil {
			t.Fatalf("Set(%q, %q) failed: %v", kv[i], kv[i+1], err)
		}
	}
}

func TestCurrencyInference(t *testing.T) {
	tests := []struct {
		typ     bitcointx.TransactionType
		account string
		want    string
	}{
		{bitcointx.TypeDeposit, "Bank", "USD"},
		{bitcointx.TypeDeposit, "Wallet", "BTC"},
		{bitcointx.TypeDeposit, "Exchange", ""},
		{bitcointx.TypeWithdrawal, "Bank", "USD"},
		{bitcointx.TypeWithdrawal, "Wallet", "BTC"},
		{bitcointx.TypeWithdrawal, "Exchange", ""},
	}
	for _, tt := range tests {
		f := newTestForm(t, tt.typ)
		set(t, f, "account", tt.account)
		if got := f.Value(bitcointx.FieldCurrency); got != tt.want {
			t.Errorf("%s account=%s: currency = %q, want %q", tt.typ, tt.account, got, tt.want)
		}
	}
}

func TestExchangeKeepsUserCurrency(t *testing.T) {
	f := newTestForm(t, bitcointx.TypeDeposit)
	set(t, f, "account", "Exchange", "currency", "BTC", "account", "Exchange")
	if got := f.Value(bitcointx.FieldCurrency); got != "BTC" {
		t.Errorf("currency = %q, want BTC", got)
	}
}

func TestTransferCounterparty(t *testing.T) {
	tests := []struct {
		name  string
		edits []string
		want  [3]string // fromCurrency, toAccount, toCurrency
	}{
		{"from bank", []string{"fromAccount", "Bank"}, [3]string{"USD", "Exchange", "USD"}},
		{"from wallet", []string{"fromAccount", "Wallet"}, [3]string{"BTC", "Exchange", "BTC"}},
		{"from exchange, no currency", []string{"fromAccount", "Exchange"}, [3]string{"", "", ""}},
		{"from exchange usd", []string{"fromAccount", "Exchange", "fromCurrency", "USD"}, [3]string{"USD", "Bank", "USD"}},
		{"from exchange btc", []string{"fromAccount", "Exchange", "fromCurrency", "BTC"}, [3]string{"BTC", "Wallet", "BTC"}},
		{"currency first", []string{"fromCurrency", "BTC", "fromAccount", "Exchange"}, [3]string{"BTC", "Wallet", "BTC"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestForm(t, bitcointx.TypeTransfer)
			set(t, f, tt.edits...)
			got := [3]string{
				f.Value(bitcointx.FieldFromCurrency),
				f.Value(bitcointx.FieldToAccount),
				f.Value(bitcointx.FieldToCurrency),
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransferFee(t *testing.T) {
	tests := []struct {
		from, to string
		fee      string
		usd      string
	}{
		{"1.00000000", "0.99900000", "0.00100000", "30"},
		{"1", "1.5", "0.00000000", "0"},
		{"0.123456789", "0", "0.12345679", "3703.7"},
	}
	for _, tt := range tests {
		f := newTestForm(t, bitcointx.TypeTransfer)
		set(t, f, "fromAccount", "Wallet", "amountFrom", tt.from, "amountTo", tt.to)
		if got := f.Value(bitcointx.FieldFee); got != tt.fee {
			t.Errorf("fee(%s, %s) = %q, want %q", tt.from, tt.to, got, tt.fee)
		}
		usd, ok := f.FeeUSD()
		if !ok || usd.String() != tt.usd {
			t.Errorf("FeeUSD(%s, %s) = %s, %v, want %s", tt.from, tt.to, usd, ok, tt.usd)
		}
	}
}

func TestTransferFeeUSD(t *testing.T) {
	f := newTestForm(t, bitcointx.TypeTransfer)
	set(t, f, "fromAccount", "Bank", "amountFrom", "100", "amountTo", "90")
	if got := f.Value(bitcointx.FieldFee); got != "0" {
		t.Errorf("fee of a USD transfer = %q, want the untouched default", got)
	}
	if _, ok := f.FeeUSD(); ok {
		t.Error("FeeUSD() is available for a USD transfer")
	}
	set(t, f, "fee", "2.5")
	if got := f.Value(bitcointx.FieldFee); got != "2.5" {
		t.Errorf("fee = %q, want the user value", got)
	}
}

func TestTransferFeeWaitsForNumbers(t *testing.T) {
	f := newTestForm(t, bitcointx.TypeTransfer)
	set(t, f, "fromAccount", "Wallet", "amountFrom", "1", "amountTo", "abc")
	if got := f.Value(bitcointx.FieldFee); got != "0" {
		t.Errorf("fee = %q, want the untouched default", got)
	}
}

func TestTransferFeeRejectsExponent(t *testing.T) {
	f := newTestForm(t, bitcointx.TypeTransfer)
	set(t, f, "fromAccount", "Wallet", "amountFrom", "1")
	if _, err := f.Set(bitcointx.FieldAmountTo, "1e-50000000"); err != nil {
		t.Fatalf("Set(amountTo) failed: %v", err)
	}
	if got := f.Value(bitcointx.FieldFee); got != "0" {
		t.Errorf("fee = %q, want the untouched default", got)
	}
	_, err := f.Build()
	var pe *bitcointx.ParseError
	if !errors.As(err, &pe) || pe.Field != bitcointx.FieldAmountTo {
		t.Errorf("Build() error = %v, want a parse error on amountTo", err)
	}
}

func TestTransferFeeReset(t *testing.T) {
	f := newTestForm(t, bitcointx.TypeTransfer)
	set(t, f, "fromAccount", "Wallet", "amountFrom", "1", "amountTo", "0.999")
	if got := f.Value(bitcointx.FieldFee); got != "0.00100000" {
		t.Fatalf("fee = %q, want 0.00100000", got)
	}
	set(t, f, "fromAccount", "Bank")
	if got := f.Value(bitcointx.FieldFee); got != "0" {
		t.Errorf("fee after leaving BTC = %q, want 0", got)
	}
	p, err := f.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if !p.FeeAmount.IsZero() || p.FeeCurrency != bitcointx.USD {
		t.Errorf("fee = %s %s, want 0 USD", p.FeeAmount, p.FeeCurrency)
	}

	// a USD fee typed by the user survives amount edits
	set(t, f, "fee", "2.5", "amountTo", "95")
	if got := f.Value(bitcointx.FieldFee); got != "2.5" {
		t.Errorf("fee = %q, want the user value", got)
	}
}

func TestReadOnlyFields(t *testing.T) {
	f := newTestForm(t, bitcointx.TypeTransfer)
	set(t, f, "fromAccount", "Wallet")

	// same value is accepted.
	if _, err := f.Set(bitcointx.FieldToAccount, "exchange"); err != nil {
		t.Errorf("Set(toAccount, exchange) failed: %v", err)
	}
	before := f.Entry()
	for _, kv := range [][2]string{{"toAccount", "Bank"}, {"fee", "0.5"}, {"fromCurrency", "USD"}} {
		_, err := f.Set(bitcointx.Field(kv[0]), kv[1])
		var ve *bitcointx.ValidationError
		if !errors.As(err, &ve) || ve.Field != bitcointx.Field(kv[0]) {
			t.Errorf("Set(%s, %s) = %v, want a validation error on %s", kv[0], kv[1], err, kv[0])
		}
	}
	if !f.Entry().Equal(before) {
		t.Error("rejected edits changed the entry")
	}
}

func TestSetErrors(t *testing.T) {
	f := New(Options{Logger: zerolog.Nop()})
	if _, err := f.Set(bitcointx.FieldAmount, "1"); !errors.Is(err, bitcointx.ErrValidation) {
		t.Errorf("Set() without a type = %v, want a validation error", err)
	}
	if _, err := f.Set(bitcointx.FieldType, "Swap"); !errors.Is(err, bitcointx.ErrParse) {
		t.Errorf("Set(type, Swap) = %v, want a parse error", err)
	}
	set(t, f, "type", "buy")
	if f.Type() != bitcointx.TypeBuy {
		t.Errorf("Type() = %q, want Buy", f.Type())
	}
	if _, err := f.Set(bitcointx.FieldSource, "Gift"); !errors.Is(err, bitcointx.ErrValidation) {
		t.Errorf("Set(source) on a buy = %v, want a validation error", err)
	}
}

func TestSelectTypeResets(t *testing.T) {
	f := newTestForm(t, bitcointx.TypeTransfer)
	set(t, f, "fromAccount", "Wallet", "amountFrom", "1")

	e1, err := f.SelectType(bitcointx.TypeDeposit)
	if err != nil {
		t.Fatal(err)
	}
	e2, err := f.SelectType(bitcointx.TypeDeposit)
	if err != nil {
		t.Fatal(err)
	}
	if !e1.Equal(e2) {
		t.Errorf("two resets to the same type differ: %v vs %v", e1, e2)
	}
	if got := e1.Value(bitcointx.FieldTimestamp); got != "2025-03-01T12:34" {
		t.Errorf("timestamp = %q, want now truncated to the minute", got)
	}
	for _, field := range []bitcointx.Field{bitcointx.FieldFee, bitcointx.FieldCostBasisUSD} {
		if got := e1.Value(field); got != "0" {
			t.Errorf("%s = %q, want 0", field, got)
		}
	}
	if got := e1.Value(bitcointx.FieldAmount); got != "" {
		t.Errorf("amount = %q, want empty", got)
	}
}

func TestDirty(t *testing.T) {
	var events []bool
	f := New(Options{
		Location:      time.UTC,
		Now:           func() time.Time { return testNow },
		OnDirtyChange: func(dirty bool) { events = append(events, dirty) },
		Logger:        zerolog.Nop(),
	})
	if _, err := f.SelectType(bitcointx.TypeBuy); err != nil {
		t.Fatal(err)
	}
	set(t, f, "amountUSD", "100")
	set(t, f, "amountBTC", "0.001") // already dirty, no event
	if !f.Dirty() {
		t.Error("Dirty() = false after an edit")
	}
	set(t, f, "amountUSD", "", "amountBTC", "") // back to the baseline
	set(t, f, "fee", "3")
	f.Clear()
	if f.Dirty() || f.Type() != "" || f.Entry() != nil {
		t.Error("Clear() did not reset the form")
	}
	want := []bool{true, false, true, false}
	if !slices.Equal(events, want) {
		t.Errorf("dirty events = %v, want %v", events, want)
	}
}

func TestWarnings(t *testing.T) {
	f := newTestForm(t, bitcointx.TypeWithdrawal)
	set(t, f, "account", "Wallet", "amount", "0.1", "purpose", "Spent")
	w := f.Warnings()
	if len(w) != 1 || !strings.Contains(w[0], "proceeds_usd is 0") {
		t.Errorf("Warnings() = %v, want the zero proceeds warning", w)
	}
	set(t, f, "proceeds_usd", "6000")
	if w := f.Warnings(); len(w) != 0 {
		t.Errorf("Warnings() = %v, want none", w)
	}
	set(t, f, "purpose", "Lunch")
	if w := f.Warnings(); len(w) != 1 || !strings.Contains(w[0], `purpose "Lunch"`) {
		t.Errorf("Warnings() = %v, want an unusual purpose warning", w)
	}
	// warnings never block
	if _, err := f.Build(); err != nil {
		t.Errorf("Build() failed: %v", err)
	}
}

func TestBuildFromForm(t *testing.T) {
	f := newTestForm(t, bitcointx.TypeDeposit)
	set(t, f, "timestamp", "2025-03-01T12:00", "account", "Wallet", "amount", "0.5", "source", "Gift", "costBasisUSD", "15000")
	p, err := f.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if p.Posting != (bitcointx.Posting{From: bitcointx.External, To: bitcointx.WalletID}) {
		t.Errorf("posting = %v, want {99 -> 2}", p.Posting)
	}
	if p.FeeCurrency != bitcointx.BTC || p.Source != "Gift" || p.CostBasisUSD.String() != "15000" {
		t.Errorf("unexpected payload %+v", p)
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	f := newTestForm(t, bitcointx.TypeTransfer)
	err := f.Validate()
	for _, field := range []bitcointx.Field{bitcointx.FieldFromAccount, bitcointx.FieldAmountFrom, bitcointx.FieldAmountTo} {
		if err == nil || !strings.Contains(err.Error(), string(field)+": is required") {
			t.Errorf("Validate() = %v, want %s to be reported", err, field)
		}
	}
}
