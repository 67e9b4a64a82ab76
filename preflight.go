package bitcointx

import "fmt"

// Precision accepted by the ledger.
const (
	btcPlaces = 8 // satoshi
	usdPlaces = 2 // cent
)

// preflight rejects payloads the ledger would refuse, so that the error can
// be attached to the field that caused it.
func preflight(e Entry, p LedgerPayload) error {
	if err := checkPosting(e, p.Posting); err != nil {
		return err
	}
	if err := checkFeeCurrency(e, p); err != nil {
		return err
	}
	return checkAmounts(e, p)
}

// checkPosting enforces the ledger rules on the posting shape:
//   - Deposit: External -> internal
//   - Withdrawal: internal -> External
//   - Transfer: internal -> another internal, same currency
//   - Buy: exchange USD -> exchange BTC, Sell the reverse.
func checkPosting(e Entry, p Posting) error {
	if !p.Resolved() && (p.From == Unresolved) == (p.To == Unresolved) {
		return &LogicError{Type: e.Type(), Posting: p}
	}
	switch e.Type() {
	case TypeDeposit:
		if p.From != External {
			return &LogicError{Type: e.Type(), Posting: p}
		}
		return checkSide(p.To, FieldAccount, Currency(e.Value(FieldCurrency)), FieldCurrency)
	case TypeWithdrawal:
		if p.To != External {
			return &LogicError{Type: e.Type(), Posting: p}
		}
		return checkSide(p.From, FieldAccount, Currency(e.Value(FieldCurrency)), FieldCurrency)
	case TypeTransfer:
		if err := checkSide(p.From, FieldFromAccount, Currency(e.Value(FieldFromCurrency)), FieldFromCurrency); err != nil {
			return err
		}
		if err := checkSide(p.To, FieldToAccount, Currency(e.Value(FieldToCurrency)), FieldToCurrency); err != nil {
			return err
		}
		if p.From == p.To {
			return &ValidationError{Field: FieldToAccount, Reason: "must differ from the source account"}
		}
		if p.From.Currency() != p.To.Currency() {
			return &ValidationError{Field: FieldToCurrency, Reason: "a transfer requires the same currency on both sides"}
		}
	case TypeBuy:
		if p != (Posting{From: ExchangeUSD, To: ExchangeBTC}) {
			return &LogicError{Type: e.Type(), Posting: p}
		}
	case TypeSell:
		if p != (Posting{From: ExchangeBTC, To: ExchangeUSD}) {
			return &LogicError{Type: e.Type(), Posting: p}
		}
	default:
		return &LogicError{Type: e.Type(), Posting: p}
	}
	return nil
}

// checkSide checks one internal side of a posting against the currency the
// user entered for it.
func checkSide(id AccountID, af Field, c Currency, cf Field) error {
	if !id.Internal() {
		return &ValidationError{Field: af, Reason: "does not resolve to a ledger account"}
	}
	if id.Currency() != c {
		return &ValidationError{Field: cf, Reason: fmt.Sprintf("%s account holds %s, not %s", id, id.Currency(), c)}
	}
	return nil
}

// checkFeeCurrency enforces that trades pay fees in USD and that other fees
// are paid in the currency leaving the source account.
func checkFeeCurrency(e Entry, p LedgerPayload) error {
	want := USD
	switch e.Type() {
	case TypeDeposit:
		want = p.To.Currency()
	case TypeWithdrawal, TypeTransfer:
		want = p.From.Currency()
	}
	if p.FeeCurrency != want {
		return &ValidationError{Field: FieldFee, Reason: fmt.Sprintf("fee must be paid in %s", want)}
	}
	return nil
}

type amountCheck struct {
	key      string // payload key
	value    Amount
	places   int32
	positive bool
}

// checkAmounts enforces signs and the ledger precision on each amount.
func checkAmounts(e Entry, p LedgerPayload) error {
	checks := []amountCheck{
		{"amount", p.Amount, btcPlaces, true},
		{"fee_amount", p.FeeAmount, btcPlaces, false},
		{"cost_basis_usd", p.CostBasisUSD, usdPlaces, false},
	}
	if p.ProceedsUSD != nil {
		checks = append(checks, amountCheck{"proceeds_usd", *p.ProceedsUSD, usdPlaces, false})
	}
	for _, c := range checks {
		f := origin(e.Type(), c.key)
		switch {
		case c.positive && !c.value.IsPositive():
			return &ValidationError{Field: f, Reason: "must be positive"}
		case c.value.IsNegative():
			return &ValidationError{Field: f, Reason: "must not be negative"}
		case c.value.Places() > c.places:
			return &ValidationError{Field: f, Reason: fmt.Sprintf("at most %d decimal places allowed", c.places)}
		}
	}
	return nil
}

// origin returns the entry field a payload key is selected from.
func origin(t TransactionType, key string) Field {
	switch key {
	case "amount":
		switch t {
		case TypeTransfer:
			return FieldAmountFrom
		case TypeBuy, TypeSell:
			return FieldAmountBTC
		}
		return FieldAmount
	case "cost_basis_usd":
		if t == TypeBuy {
			return FieldAmountUSD
		}
		return FieldCostBasisUSD
	case "proceeds_usd":
		if t == TypeSell {
			return FieldAmountUSD
		}
		return FieldProceedsUSD
	}
	return FieldFee
}
