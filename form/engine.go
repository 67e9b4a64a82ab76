// Package form derives dependent fields of an entry as the user edits it,
// and tracks the editing session of one entry.
package form

import (
	"fmt"
	"slices"

	"github.com/etnz/bitcointx"
	"github.com/rs/zerolog"
)

// Change is a value written to a field.
type Change struct {
	Field bitcointx.Field
	Value string
}

func (c Change) String() string { return fmt.Sprintf("%s=%q", c.Field, c.Value) }

// Rule derives field values from the current entry. It is evaluated when
// one of its inputs changed.
type Rule struct {
	Name   string
	Inputs []bitcointx.Field
	Derive func(e bitcointx.Entry) []Change
}

// Engine applies an ordered list of rules after each field change.
//
// Rules are evaluated once, in order, per change: a rule is triggered by the
// edited field or by a field written by an earlier rule, never by a later
// one. The edited field itself is never written.
type Engine struct {
	rules []Rule
	log   zerolog.Logger
}

// NewEngine returns an engine applying rules in order.
func NewEngine(rules []Rule, log zerolog.Logger) *Engine {
	return &Engine{rules: rules, log: log}
}

// Apply updates e after the user changed field edited, and returns the
// changes applied. A change equal to the current value is not applied. On
// error, e may be partially updated: callers apply it to a copy.
func (g *Engine) Apply(e bitcointx.Entry, edited bitcointx.Field) ([]Change, error) {
	changed := map[bitcointx.Field]bool{edited: true}
	var applied []Change
	for _, r := range g.rules {
		if !slices.ContainsFunc(r.Inputs, func(f bitcointx.Field) bool { return changed[f] }) {
			continue
		}
		for _, c := range r.Derive(e) {
			if c.Field == edited || e.Value(c.Field) == c.Value {
				continue
			}
			if err := e.SetValue(c.Field, c.Value); err != nil {
				return applied, fmt.Errorf("rule %s: %w", r.Name, err)
			}
			g.log.Debug().Str("rule", r.Name).Str("field", string(c.Field)).Str("value", c.Value).Msg("derived")
			changed[c.Field] = true
			applied = append(applied, c)
		}
	}
	return applied, nil
}

// DefaultRules returns the derivation rules of the ledger, in precedence
// order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:   "currency",
			Inputs: []bitcointx.Field{bitcointx.FieldAccount},
			Derive: deriveCurrency,
		},
		{
			Name:   "counterparty",
			Inputs: []bitcointx.Field{bitcointx.FieldFromAccount, bitcointx.FieldFromCurrency},
			Derive: deriveCounterparty,
		},
		{
			Name:   "fee-reset",
			Inputs: []bitcointx.Field{bitcointx.FieldFromCurrency},
			Derive: resetTransferFee,
		},
		{
			Name:   "btc-fee",
			Inputs: []bitcointx.Field{bitcointx.FieldFromCurrency, bitcointx.FieldAmountFrom, bitcointx.FieldAmountTo},
			Derive: deriveTransferFee,
		},
	}
}

// deriveCurrency infers the currency of a deposit or withdrawal from its
// account. The exchange holds both currencies and is left to the user.
func deriveCurrency(e bitcointx.Entry) []Change {
	switch e.Type() {
	case bitcointx.TypeDeposit, bitcointx.TypeWithdrawal:
	default:
		return nil
	}
	switch bitcointx.AccountKind(e.Value(bitcointx.FieldAccount)) {
	case bitcointx.Bank:
		return []Change{{bitcointx.FieldCurrency, string(bitcointx.USD)}}
	case bitcointx.Wallet:
		return []Change{{bitcointx.FieldCurrency, string(bitcointx.BTC)}}
	}
	return nil
}

// deriveCounterparty infers the destination of a transfer: bank and wallet
// only transfer to the exchange, the exchange transfers USD to the bank and
// BTC to the wallet.
func deriveCounterparty(e bitcointx.Entry) []Change {
	if e.Type() != bitcointx.TypeTransfer {
		return nil
	}
	to := func(c bitcointx.Currency, k bitcointx.AccountKind) []Change {
		return []Change{
			{bitcointx.FieldFromCurrency, string(c)},
			{bitcointx.FieldToAccount, string(k)},
			{bitcointx.FieldToCurrency, string(c)},
		}
	}
	switch bitcointx.AccountKind(e.Value(bitcointx.FieldFromAccount)) {
	case bitcointx.Bank:
		return to(bitcointx.USD, bitcointx.Exchange)
	case bitcointx.Wallet:
		return to(bitcointx.BTC, bitcointx.Exchange)
	case bitcointx.Exchange:
		switch c := bitcointx.Currency(e.Value(bitcointx.FieldFromCurrency)); c {
		case bitcointx.USD:
			return to(c, bitcointx.Bank)
		case bitcointx.BTC:
			return to(c, bitcointx.Wallet)
		}
	}
	return nil
}

// resetTransferFee clears the fee when the sent currency changes to anything
// but BTC, so that a derived BTC fee is never kept as a USD one.
func resetTransferFee(e bitcointx.Entry) []Change {
	if e.Type() != bitcointx.TypeTransfer || bitcointx.Currency(e.Value(bitcointx.FieldFromCurrency)) == bitcointx.BTC {
		return nil
	}
	return []Change{{bitcointx.FieldFee, "0"}}
}

// deriveTransferFee computes the fee of a BTC transfer as the difference
// between the sent and received amounts, never negative, at satoshi
// precision. Nothing is derived until both amounts are numbers.
func deriveTransferFee(e bitcointx.Entry) []Change {
	if e.Type() != bitcointx.TypeTransfer || bitcointx.Currency(e.Value(bitcointx.FieldFromCurrency)) != bitcointx.BTC {
		return nil
	}
	from, err := bitcointx.ParseAmount(bitcointx.FieldAmountFrom, e.Value(bitcointx.FieldAmountFrom))
	if err != nil {
		return nil
	}
	to, err := bitcointx.ParseAmount(bitcointx.FieldAmountTo, e.Value(bitcointx.FieldAmountTo))
	if err != nil {
		return nil
	}
	fee := from.Sub(to)
	if fee.IsNegative() {
		fee = bitcointx.Amount{}
	}
	return []Change{{bitcointx.FieldFee, fee.StringFixed(8)}}
}

// EstimateFeeUSD returns the USD value of the fee of a BTC transfer at the
// reference price, rounded to the cent. It is for display only. ok is false
// when the entry has no derived BTC fee.
func EstimateFeeUSD(e bitcointx.Entry, price bitcointx.Amount) (usd bitcointx.Amount, ok bool) {
	if e == nil || bitcointx.StateOf(e, bitcointx.FieldFee) != bitcointx.ReadOnly {
		return bitcointx.Amount{}, false
	}
	fee, err := bitcointx.ParseAmount(bitcointx.FieldFee, e.Value(bitcointx.FieldFee))
	if err != nil {
		return bitcointx.Amount{}, false
	}
	return fee.Mul(price).Round(2), true
}
