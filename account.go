package bitcointx

import "strconv"

// AccountID is the ledger identifier of an account.
type AccountID int

// Ledger account identifiers. They are fixed by the ledger and not
// configurable.
const (
	Unresolved  AccountID = 0  // never a real account
	BankID      AccountID = 1  // bank account, USD
	WalletID    AccountID = 2  // bitcoin wallet, BTC
	ExchangeUSD AccountID = 3  // exchange USD sub-account
	ExchangeBTC AccountID = 4  // exchange BTC sub-account
	External    AccountID = 99 // outside of the tracked accounts
)

// ResolveAccount maps an account kind and currency to the ledger account.
// The currency only matters for the exchange, where it selects the
// sub-account, USD being the default. An empty or unknown kind resolves to
// Unresolved.
func ResolveAccount(kind AccountKind, currency Currency) AccountID {
	switch kind {
	case Bank:
		return BankID
	case Wallet:
		return WalletID
	case Exchange:
		if currency == BTC {
			return ExchangeBTC
		}
		return ExchangeUSD
	default:
		return Unresolved
	}
}

// Currency returns the currency held by the account, empty for External and
// Unresolved.
func (id AccountID) Currency() Currency {
	switch id {
	case BankID, ExchangeUSD:
		return USD
	case WalletID, ExchangeBTC:
		return BTC
	}
	return ""
}

// Internal reports whether the account is one of the tracked accounts.
func (id AccountID) Internal() bool { return id.Currency() != "" }

func (id AccountID) String() string {
	switch id {
	case BankID:
		return "Bank"
	case WalletID:
		return "Wallet"
	case ExchangeUSD:
		return "Exchange USD"
	case ExchangeBTC:
		return "Exchange BTC"
	case External:
		return "External"
	case Unresolved:
		return "Unresolved"
	}
	return "#" + strconv.Itoa(int(id))
}
