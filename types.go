package bitcointx

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// TransactionType identifies the kind of financial event being recorded.
type TransactionType string

// Transaction types, the closed set understood by the ledger.
const (
	TypeDeposit    TransactionType = "Deposit"
	TypeWithdrawal TransactionType = "Withdrawal"
	TypeTransfer   TransactionType = "Transfer"
	TypeBuy        TransactionType = "Buy"
	TypeSell       TransactionType = "Sell"
)

// TransactionTypes lists every transaction type in display order.
var TransactionTypes = []TransactionType{TypeDeposit, TypeWithdrawal, TypeTransfer, TypeBuy, TypeSell}

// AccountKind is the user facing account a transaction touches.
type AccountKind string

const (
	Bank     AccountKind = "Bank"
	Wallet   AccountKind = "Wallet"
	Exchange AccountKind = "Exchange"
)

// AccountKinds lists every account kind in display order.
var AccountKinds = []AccountKind{Bank, Wallet, Exchange}

// Currency is one of the two currencies tracked by the ledger.
type Currency string

const (
	USD Currency = "USD"
	BTC Currency = "BTC"
)

// Currencies lists every currency in display order.
var Currencies = []Currency{USD, BTC}

// ParseTransactionType parses s, case-insensitively, into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	return parseChoice(FieldType, s, TransactionTypes)
}

// ParseAccountKind parses s, case-insensitively, into an AccountKind.
func ParseAccountKind(s string) (AccountKind, error) {
	return parseChoice(FieldAccount, s, AccountKinds)
}

// ParseCurrency parses s, case-insensitively, into a Currency.
func ParseCurrency(s string) (Currency, error) {
	return parseChoice(FieldCurrency, s, Currencies)
}

// parseChoice matches s against choices. On failure the error suggests the
// closest choice when it is within two edits.
func parseChoice[T ~string](f Field, s string, choices []T) (T, error) {
	in := strings.TrimSpace(s)
	for _, c := range choices {
		if strings.EqualFold(in, string(c)) {
			return c, nil
		}
	}
	best, dist := "", 3
	for _, c := range choices {
		if d := levenshtein.ComputeDistance(strings.ToLower(in), strings.ToLower(string(c))); d < dist {
			best, dist = string(c), d
		}
	}
	if best != "" {
		return "", &ParseError{Field: f, Input: s, Err: fmt.Errorf("did you mean %q?", best)}
	}
	return "", &ParseError{Field: f, Input: s, Err: fmt.Errorf("want one of %v", choices)}
}
