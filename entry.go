package bitcointx

import (
	"errors"
	"fmt"
	"strings"
)

// Entry is the in-progress record of one transaction, as entered by a user
// in the single-entry view. There is one implementation per transaction
// type, each carrying only the fields relevant to that type, so values
// entered for another type can never leak into a payload.
//
// Numeric fields are kept as typed, and only normalized when the payload is
// built.
type Entry interface {
	Type() TransactionType // Type returns the transaction type of the entry.
	When() Timestamp       // When returns the local wall-clock time of the transaction.
	Fields() []Field       // Fields returns the fields carried by the entry, in input order.
	Value(Field) string    // Value returns the current value of a field, empty if unset or not carried.
	SetValue(Field, string) error
	Clone() Entry
	Equal(Entry) bool
}

// NewEntry returns a fresh entry of type t, with only the defaults set: the
// timestamp, and a zero fee, cost basis and proceeds where the type carries
// them.
func NewEntry(t TransactionType, ts Timestamp) (Entry, error) {
	b := base{Timestamp: ts}
	switch t {
	case TypeDeposit:
		return &Deposit{base: b, Fee: "0", CostBasisUSD: "0"}, nil
	case TypeWithdrawal:
		return &Withdrawal{base: b, Fee: "0", ProceedsUSD: "0"}, nil
	case TypeTransfer:
		return &Transfer{base: b, Fee: "0"}, nil
	case TypeBuy:
		return &Buy{trade{base: b, Fee: "0"}}, nil
	case TypeSell:
		return &Sell{trade{base: b, Fee: "0"}}, nil
	}
	return nil, &ValidationError{Field: FieldType, Reason: fmt.Sprintf("unknown transaction type %q", t)}
}

// fieldRef binds a field name to the struct member holding its value.
type fieldRef struct {
	field Field
	ptr   any // *string, *AccountKind, *Currency or *Timestamp
}

func fieldsOf(refs []fieldRef) []Field {
	out := make([]Field, len(refs))
	for i, r := range refs {
		out[i] = r.field
	}
	return out
}

func valueOf(refs []fieldRef, f Field) string {
	for _, r := range refs {
		if r.field != f {
			continue
		}
		switch p := r.ptr.(type) {
		case *string:
			return *p
		case *AccountKind:
			return string(*p)
		case *Currency:
			return string(*p)
		case *Timestamp:
			return p.String()
		}
	}
	return ""
}

var errNotCarried = errors.New("not applicable to this transaction type")

// setValueOf parses v into the member bound to f. An empty v clears the
// member. On error the member is left untouched.
func setValueOf(t TransactionType, refs []fieldRef, f Field, v string) error {
	for _, r := range refs {
		if r.field != f {
			continue
		}
		var err error
		switch p := r.ptr.(type) {
		case *string:
			*p = strings.TrimSpace(v)
		case *AccountKind:
			var k AccountKind
			if strings.TrimSpace(v) != "" {
				k, err = ParseAccountKind(v)
			}
			if err == nil {
				*p = k
			}
		case *Currency:
			var c Currency
			if strings.TrimSpace(v) != "" {
				c, err = ParseCurrency(v)
			}
			if err == nil {
				*p = c
			}
		case *Timestamp:
			var ts Timestamp
			if strings.TrimSpace(v) != "" {
				ts, err = ParseTimestamp(v)
			}
			if err == nil {
				*p = ts
			}
		}
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Field = f
		}
		return err
	}
	return &ValidationError{Field: f, Reason: fmt.Sprintf("%s for %s", errNotCarried, t)}
}

// base contains the fields common to all entries.
type base struct {
	Timestamp Timestamp
}

// When returns the local wall-clock time of the transaction.
func (b base) When() Timestamp { return b.Timestamp }

// Deposit is money entering a tracked account from outside.
type Deposit struct {
	base
	Account      AccountKind
	Currency     Currency
	Amount       string
	Fee          string
	CostBasisUSD string // CostBasisUSD is the USD value of deposited BTC.
	Source       string // Source tells where deposited BTC comes from (Gift, Income, ...).
}

func (d *Deposit) refs() []fieldRef {
	return []fieldRef{
		{FieldTimestamp, &d.Timestamp},
		{FieldAccount, &d.Account},
		{FieldCurrency, &d.Currency},
		{FieldAmount, &d.Amount},
		{FieldFee, &d.Fee},
		{FieldCostBasisUSD, &d.CostBasisUSD},
		{FieldSource, &d.Source},
	}
}

func (d *Deposit) Type() TransactionType            { return TypeDeposit }
func (d *Deposit) Fields() []Field                  { return fieldsOf(d.refs()) }
func (d *Deposit) Value(f Field) string             { return valueOf(d.refs(), f) }
func (d *Deposit) SetValue(f Field, v string) error { return setValueOf(TypeDeposit, d.refs(), f, v) }
func (d *Deposit) Clone() Entry                     { c := *d; return &c }

func (d *Deposit) Equal(other Entry) bool {
	o, ok := other.(*Deposit)
	return ok && *d == *o
}

// Withdrawal is money leaving a tracked account to the outside.
type Withdrawal struct {
	base
	Account     AccountKind
	Currency    Currency
	Amount      string
	Fee         string
	ProceedsUSD string // ProceedsUSD is the USD value received for withdrawn BTC.
	Purpose     string // Purpose tells why BTC left (Spent, Gift, ...).
}

func (w *Withdrawal) refs() []fieldRef {
	return []fieldRef{
		{FieldTimestamp, &w.Timestamp},
		{FieldAccount, &w.Account},
		{FieldCurrency, &w.Currency},
		{FieldAmount, &w.Amount},
		{FieldFee, &w.Fee},
		{FieldProceedsUSD, &w.ProceedsUSD},
		{FieldPurpose, &w.Purpose},
	}
}

func (w *Withdrawal) Type() TransactionType            { return TypeWithdrawal }
func (w *Withdrawal) Fields() []Field                  { return fieldsOf(w.refs()) }
func (w *Withdrawal) Value(f Field) string             { return valueOf(w.refs(), f) }
func (w *Withdrawal) SetValue(f Field, v string) error { return setValueOf(TypeWithdrawal, w.refs(), f, v) }
func (w *Withdrawal) Clone() Entry                     { c := *w; return &c }

func (w *Withdrawal) Equal(other Entry) bool {
	o, ok := other.(*Withdrawal)
	return ok && *w == *o
}

// Transfer moves money between two tracked accounts of the same currency.
// For BTC the difference between the sent and received amounts is the fee.
type Transfer struct {
	base
	FromAccount  AccountKind
	FromCurrency Currency
	ToAccount    AccountKind
	ToCurrency   Currency
	AmountFrom   string // AmountFrom is the amount leaving the source account.
	AmountTo     string // AmountTo is the amount reaching the destination account.
	Fee          string
}

func (t *Transfer) refs() []fieldRef {
	return []fieldRef{
		{FieldTimestamp, &t.Timestamp},
		{FieldFromAccount, &t.FromAccount},
		{FieldFromCurrency, &t.FromCurrency},
		{FieldToAccount, &t.ToAccount},
		{FieldToCurrency, &t.ToCurrency},
		{FieldAmountFrom, &t.AmountFrom},
		{FieldAmountTo, &t.AmountTo},
		{FieldFee, &t.Fee},
	}
}

func (t *Transfer) Type() TransactionType            { return TypeTransfer }
func (t *Transfer) Fields() []Field                  { return fieldsOf(t.refs()) }
func (t *Transfer) Value(f Field) string             { return valueOf(t.refs(), f) }
func (t *Transfer) SetValue(f Field, v string) error { return setValueOf(TypeTransfer, t.refs(), f, v) }
func (t *Transfer) Clone() Entry                     { c := *t; return &c }

func (t *Transfer) Equal(other Entry) bool {
	o, ok := other.(*Transfer)
	return ok && *t == *o
}

// trade contains the fields of an exchange trade, always between the USD and
// BTC sub-accounts of the exchange.
type trade struct {
	base
	AmountUSD string
	AmountBTC string
	Fee       string // Fee is always in USD.
}

func (t *trade) refs() []fieldRef {
	return []fieldRef{
		{FieldTimestamp, &t.Timestamp},
		{FieldAmountUSD, &t.AmountUSD},
		{FieldAmountBTC, &t.AmountBTC},
		{FieldFee, &t.Fee},
	}
}

func (t *trade) Fields() []Field      { return fieldsOf(t.refs()) }
func (t *trade) Value(f Field) string { return valueOf(t.refs(), f) }

// Buy acquires BTC with USD on the exchange.
type Buy struct{ trade }

func (b *Buy) Type() TransactionType            { return TypeBuy }
func (b *Buy) SetValue(f Field, v string) error { return setValueOf(TypeBuy, b.refs(), f, v) }
func (b *Buy) Clone() Entry                     { c := *b; return &c }

func (b *Buy) Equal(other Entry) bool {
	o, ok := other.(*Buy)
	return ok && *b == *o
}

// Sell disposes of BTC for USD on the exchange.
type Sell struct{ trade }

func (s *Sell) Type() TransactionType            { return TypeSell }
func (s *Sell) SetValue(f Field, v string) error { return setValueOf(TypeSell, s.refs(), f, v) }
func (s *Sell) Clone() Entry                     { c := *s; return &c }

func (s *Sell) Equal(other Entry) bool {
	o, ok := other.(*Sell)
	return ok && *s == *o
}
