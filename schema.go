package bitcointx

// FieldSpec is the state of one field of an entry.
type FieldSpec struct {
	Field Field
	State FieldState
}

// Schema returns the state of every field carried by e, in input order.
// States depend on the values already entered, so the schema must be
// recomputed after each change.
func Schema(e Entry) []FieldSpec {
	if e == nil {
		return nil
	}
	fields := e.Fields()
	out := make([]FieldSpec, len(fields))
	for i, f := range fields {
		out[i] = FieldSpec{Field: f, State: StateOf(e, f)}
	}
	return out
}

// StateOf returns the state of field f of entry e. Fields not carried by e
// are Hidden.
func StateOf(e Entry, f Field) FieldState {
	if f == FieldTimestamp {
		if e == nil {
			return Hidden
		}
		return Required
	}
	switch v := e.(type) {
	case *Deposit:
		switch f {
		case FieldAccount, FieldAmount:
			return Required
		case FieldCurrency:
			return singleCurrencyState(v.Account)
		case FieldSource:
			if holdsBTC(v.Account, v.Currency) {
				return Required
			}
		case FieldCostBasisUSD:
			if holdsBTC(v.Account, v.Currency) {
				return Optional
			}
		}
	case *Withdrawal:
		switch f {
		case FieldAccount, FieldAmount:
			return Required
		case FieldCurrency:
			return singleCurrencyState(v.Account)
		case FieldFee:
			return Optional
		case FieldPurpose:
			if holdsBTC(v.Account, v.Currency) {
				return Required
			}
		case FieldProceedsUSD:
			if v.Currency == BTC {
				return Optional
			}
		}
	case *Transfer:
		switch f {
		case FieldFromAccount, FieldAmountFrom, FieldAmountTo:
			return Required
		case FieldFromCurrency:
			return singleCurrencyState(v.FromAccount)
		case FieldToAccount, FieldToCurrency:
			return ReadOnly
		case FieldFee:
			if v.FromCurrency == BTC {
				return ReadOnly
			}
			return Optional
		}
	case *Buy, *Sell:
		switch f {
		case FieldAmountUSD, FieldAmountBTC:
			return Required
		case FieldFee:
			return Optional
		}
	}
	return Hidden
}

// singleCurrencyState is the state of the currency paired with an account:
// bank and wallet imply their currency, the exchange holds both and lets the
// user choose.
func singleCurrencyState(k AccountKind) FieldState {
	if k == Bank || k == Wallet {
		return ReadOnly
	}
	return Required
}

// holdsBTC reports whether BTC lands in, or leaves, one of the BTC holding
// accounts: the condition for source, purpose and cost basis to matter.
func holdsBTC(k AccountKind, c Currency) bool {
	return c == BTC && (k == Wallet || k == Exchange)
}
