package bitcointx

import (
	"time"
)

// LedgerPayload is the transaction creation request sent to the ledger. It
// is built fresh from an entry on each submission and never stored.
type LedgerPayload struct {
	Posting
	Type         TransactionType
	Amount       Amount
	Timestamp    time.Time // Timestamp is in UTC, second precision.
	FeeAmount    Amount
	FeeCurrency  Currency
	CostBasisUSD Amount
	ProceedsUSD  *Amount // ProceedsUSD is only sent for withdrawals and sells.
	Source       string  // Source is only sent for deposits.
	Purpose      string  // Purpose is only sent for withdrawals.
	IsLocked     bool
}

// MarshalJSON writes the payload with the ledger's field names and order.
func (p LedgerPayload) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("from_account_id", p.From)
	w.Append("to_account_id", p.To)
	w.Append("type", p.Type)
	w.Append("amount", p.Amount)
	w.Append("timestamp", p.Timestamp.UTC().Format(time.RFC3339))
	w.Append("fee_amount", p.FeeAmount)
	w.Append("fee_currency", p.FeeCurrency)
	w.Append("cost_basis_usd", p.CostBasisUSD)
	w.Optional("proceeds_usd", p.ProceedsUSD)
	w.Optional("source", p.Source)
	w.Optional("purpose", p.Purpose)
	w.Append("is_locked", p.IsLocked)
	return w.MarshalJSON()
}

// Build validates e and returns its payload. The entry timestamp is read as a
// wall-clock time in loc (time.Local if nil) and converted to UTC.
//
// Build fails with a *ValidationError if a required field is missing or the
// entry is inconsistent, a *ParseError if a numeric field is not a number,
// and a *LogicError if the entry does not map to a usable posting. The entry
// is never modified.
func Build(e Entry, loc *time.Location) (LedgerPayload, error) {
	if err := Validate(e); err != nil {
		return LedgerPayload{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	p := LedgerPayload{
		Posting:   MapPosting(e),
		Type:      e.Type(),
		Timestamp: e.When().UTC(loc),
	}
	s := selector{entry: e}
	p.FeeAmount = s.amount(FieldFee)

	switch v := e.(type) {
	case *Deposit:
		p.Amount = s.amount(FieldAmount)
		p.FeeCurrency = feeCurrency(v.Currency)
		p.CostBasisUSD = s.amount(FieldCostBasisUSD)
		p.Source = s.text(FieldSource)
	case *Withdrawal:
		p.Amount = s.amount(FieldAmount)
		p.FeeCurrency = feeCurrency(v.Currency)
		proceeds := s.amount(FieldProceedsUSD)
		p.ProceedsUSD = &proceeds
		p.Purpose = s.text(FieldPurpose)
	case *Transfer:
		p.Amount = s.amount(FieldAmountFrom)
		p.FeeCurrency = feeCurrency(v.FromCurrency)
	case *Buy:
		p.Amount = s.amount(FieldAmountBTC)
		p.FeeCurrency = USD
		p.CostBasisUSD = s.amount(FieldAmountUSD)
	case *Sell:
		p.Amount = s.amount(FieldAmountBTC)
		p.FeeCurrency = USD
		proceeds := s.amount(FieldAmountUSD)
		p.ProceedsUSD = &proceeds
	default:
		return LedgerPayload{}, &LogicError{Type: e.Type(), Posting: p.Posting}
	}
	if s.err != nil {
		return LedgerPayload{}, s.err
	}
	if err := preflight(e, p); err != nil {
		return LedgerPayload{}, err
	}
	return p, nil
}

// selector reads payload values out of an entry, honoring the schema: hidden
// fields read as zero or "N/A". The first error is latched.
type selector struct {
	entry Entry
	err   error
}

func (s *selector) amount(f Field) Amount {
	state := StateOf(s.entry, f)
	if s.err != nil || state == Hidden {
		return Amount{}
	}
	a, err := normalize(f, s.entry.Value(f), state == Required)
	if err != nil {
		s.err = err
	}
	return a
}

func (s *selector) text(f Field) string {
	v := s.entry.Value(f)
	if StateOf(s.entry, f) == Hidden || v == "" {
		return NotApplicable
	}
	return v
}

// feeCurrency is the currency of the fee for a transaction in currency c.
func feeCurrency(c Currency) Currency {
	if c == BTC {
		return BTC
	}
	return USD
}
