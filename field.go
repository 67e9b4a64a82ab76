package bitcointx

// Field names an input of an entry. Names match the ones used by the web
// form of the ledger so that errors can be mapped back onto it.
type Field string

const (
	FieldType         Field = "type"
	FieldTimestamp    Field = "timestamp"
	FieldAccount      Field = "account"
	FieldCurrency     Field = "currency"
	FieldFromAccount  Field = "fromAccount"
	FieldFromCurrency Field = "fromCurrency"
	FieldToAccount    Field = "toAccount"
	FieldToCurrency   Field = "toCurrency"
	FieldAmountFrom   Field = "amountFrom"
	FieldAmountTo     Field = "amountTo"
	FieldAmountUSD    Field = "amountUSD"
	FieldAmountBTC    Field = "amountBTC"
	FieldAmount       Field = "amount"
	FieldFee          Field = "fee"
	FieldCostBasisUSD Field = "costBasisUSD"
	FieldProceedsUSD  Field = "proceeds_usd"
	FieldSource       Field = "source"
	FieldPurpose      Field = "purpose"
)

// Numeric reports whether the field holds a decimal amount.
func (f Field) Numeric() bool {
	switch f {
	case FieldAmountFrom, FieldAmountTo, FieldAmountUSD, FieldAmountBTC,
		FieldAmount, FieldFee, FieldCostBasisUSD, FieldProceedsUSD:
		return true
	}
	return false
}

// FieldState tells how a field participates in an entry.
type FieldState int

const (
	Hidden   FieldState = iota // not applicable, ignored at submission
	Optional                   // user editable, may be left empty
	Required                   // user editable, must be filled
	ReadOnly                   // derived from other fields
)

func (s FieldState) String() string {
	switch s {
	case Optional:
		return "optional"
	case Required:
		return "required"
	case ReadOnly:
		return "read-only"
	default:
		return "hidden"
	}
}

// NotApplicable is the default value for source and purpose.
const NotApplicable = "N/A"

// Choices returns the suggested values of a free text field, nil if the field
// has none. Values outside the list are accepted.
func Choices(f Field) []string {
	switch f {
	case FieldSource:
		return []string{NotApplicable, "MyBTC", "Gift", "Income", "Interest", "Reward"}
	case FieldPurpose:
		return []string{NotApplicable, "Spent", "Gift", "Donation", "Lost"}
	case FieldAccount, FieldFromAccount, FieldToAccount:
		return []string{string(Bank), string(Wallet), string(Exchange)}
	case FieldCurrency, FieldFromCurrency, FieldToCurrency:
		return []string{string(USD), string(BTC)}
	case FieldType:
		out := make([]string, len(TransactionTypes))
		for i, t := range TransactionTypes {
			out[i] = string(t)
		}
		return out
	}
	return nil
}
