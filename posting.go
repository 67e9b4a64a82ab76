package bitcointx

import "fmt"

// Posting is the double-entry view of an entry: the amount moves from one
// ledger account to another. It is always derived, never stored.
type Posting struct {
	From AccountID `json:"from_account_id"`
	To   AccountID `json:"to_account_id"`
}

// Resolved reports whether both sides designate a real account.
func (p Posting) Resolved() bool { return p.From != Unresolved && p.To != Unresolved }

func (p Posting) String() string {
	return fmt.Sprintf("{%d -> %d}", p.From, p.To)
}

// MapPosting returns the posting of an entry:
//   - Deposit: External -> account
//   - Withdrawal: account -> External
//   - Transfer: from account -> to account
//   - Buy: exchange USD -> exchange BTC
//   - Sell: exchange BTC -> exchange USD
//
// Any other entry, including nil, maps to {0,0} which must never be submitted.
func MapPosting(e Entry) Posting {
	switch v := e.(type) {
	case *Deposit:
		return Posting{From: External, To: ResolveAccount(v.Account, v.Currency)}
	case *Withdrawal:
		return Posting{From: ResolveAccount(v.Account, v.Currency), To: External}
	case *Transfer:
		return Posting{
			From: ResolveAccount(v.FromAccount, v.FromCurrency),
			To:   ResolveAccount(v.ToAccount, v.ToCurrency),
		}
	case *Buy:
		return Posting{From: ExchangeUSD, To: ExchangeBTC}
	case *Sell:
		return Posting{From: ExchangeBTC, To: ExchangeUSD}
	default:
		return Posting{}
	}
}
