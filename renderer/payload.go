package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/etnz/bitcointx"
)

// Summary renders a payload as a one line sentence.
func Summary(p bitcointx.LedgerPayload) string {
	switch p.Type {
	case bitcointx.TypeDeposit:
		return fmt.Sprintf("Deposited %s into %s", p.Amount.Format(amountCurrency(p)), p.To)
	case bitcointx.TypeWithdrawal:
		return fmt.Sprintf("Withdrew %s from %s", p.Amount.Format(amountCurrency(p)), p.From)
	case bitcointx.TypeTransfer:
		return fmt.Sprintf("Transferred %s from %s to %s", p.Amount.Format(amountCurrency(p)), p.From, p.To)
	case bitcointx.TypeBuy:
		return fmt.Sprintf("Bought %s for %s", p.Amount.Format(bitcointx.BTC), p.CostBasisUSD.Format(bitcointx.USD))
	case bitcointx.TypeSell:
		proceeds := bitcointx.Amount{}
		if p.ProceedsUSD != nil {
			proceeds = *p.ProceedsUSD
		}
		return fmt.Sprintf("Sold %s for %s", p.Amount.Format(bitcointx.BTC), proceeds.Format(bitcointx.USD))
	default:
		return string(p.Type)
	}
}

// amountCurrency is the currency of the amount of p.
func amountCurrency(p bitcointx.LedgerPayload) bitcointx.Currency {
	switch p.Type {
	case bitcointx.TypeDeposit:
		return p.To.Currency()
	case bitcointx.TypeWithdrawal, bitcointx.TypeTransfer:
		return p.From.Currency()
	}
	return bitcointx.BTC
}

// ReceiptOptions holds the extra information shown with a payload.
type ReceiptOptions struct {
	Location *time.Location    // Location of the timestamp, UTC if nil.
	FeeUSD   *bitcointx.Amount // FeeUSD is the USD estimate of a BTC fee, if any.
	Warnings []string
}

// Receipt renders a payload before it is sent: a summary, the posting and
// every amount.
func Receipt(p bitcointx.LedgerPayload, opts ReceiptOptions) string {
	var m markdown
	m.Printf("# %s\n\n", p.Type)
	m.Printf("%s.\n\n", Summary(p))

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	m.Printf("| | |\n")
	m.Printf("|:---|---:|\n")
	m.Printf("| Date | %s |\n", p.Timestamp.In(loc).Format("2006-01-02 15:04"))
	m.Printf("| Posting | %s → %s |\n", p.From, p.To)
	m.Printf("| Amount | %s |\n", p.Amount.Format(amountCurrency(p)))
	m.Printf("| Fee | %s |\n", p.FeeAmount.Format(p.FeeCurrency))
	if opts.FeeUSD != nil {
		m.Printf("| Fee (est.) | ≈ %s |\n", opts.FeeUSD.Format(bitcointx.USD))
	}
	if !p.CostBasisUSD.IsZero() {
		m.Printf("| Cost basis | %s |\n", p.CostBasisUSD.Format(bitcointx.USD))
	}
	if p.ProceedsUSD != nil {
		m.Printf("| Proceeds | %s |\n", p.ProceedsUSD.Format(bitcointx.USD))
	}
	if p.Source != "" {
		m.Printf("| Source | %s |\n", cell(p.Source))
	}
	if p.Purpose != "" {
		m.Printf("| Purpose | %s |\n", cell(p.Purpose))
	}

	ConditionalBlock(&m, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n")
		for _, warn := range opts.Warnings {
			fmt.Fprintf(w, "> **Warning:** %s\n", warn)
		}
		return len(opts.Warnings) > 0
	})
	return m.String()
}
