package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/etnz/bitcointx"
	"github.com/etnz/bitcointx/client"
	"github.com/etnz/bitcointx/form"
	"github.com/etnz/bitcointx/internal/logger"
	"github.com/etnz/bitcointx/renderer"
	"github.com/etnz/bitcointx/submit"
	"github.com/google/subcommands"
)

// entryCmd records one transaction of a given type.
type entryCmd struct {
	typ    bitcointx.TransactionType
	fields []bitcointx.Field
	flags  map[bitcointx.Field]*string
	dryRun bool
}

func newEntryCmd(t bitcointx.TransactionType) *entryCmd {
	return &entryCmd{typ: t}
}

var synopsis = map[bitcointx.TransactionType]string{
	bitcointx.TypeDeposit:    "record money or bitcoin entering an account",
	bitcointx.TypeWithdrawal: "record money or bitcoin leaving an account",
	bitcointx.TypeTransfer:   "record a move between two accounts of the same currency",
	bitcointx.TypeBuy:        "record a purchase of bitcoin on the exchange",
	bitcointx.TypeSell:       "record a sale of bitcoin on the exchange",
}

func (c *entryCmd) Name() string     { return commandName(c.typ) }
func (c *entryCmd) Synopsis() string { return synopsis[c.typ] }
func (c *entryCmd) Usage() string {
	return fmt.Sprintf(`btx %s [-n] [-<field> <value>]...

  Fills a %s entry from the flags, prints it and sends it to the ledger.
  Derived fields are filled automatically, run 'btx schema %s' to see them.

`, c.Name(), c.typ, c.Name())
}

func (c *entryCmd) SetFlags(f *flag.FlagSet) {
	e, err := bitcointx.NewEntry(c.typ, bitcointx.Timestamp{})
	if err != nil {
		panic(err) // c.typ is one of TransactionTypes
	}
	c.fields = e.Fields()
	c.flags = make(map[bitcointx.Field]*string, len(c.fields))
	for _, field := range c.fields {
		c.flags[field] = f.String(flagName(field), "", fieldUsage(field))
	}
	f.BoolVar(&c.dryRun, "n", false, "Dry run: print the payload without sending it.")
}

// values returns the value of every field flag set on the command line.
func (c *entryCmd) values(f *flag.FlagSet) map[bitcointx.Field]string {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	out := make(map[bitcointx.Field]string)
	for _, field := range c.fields {
		if set[flagName(field)] {
			out[field] = *c.flags[field]
		}
	}
	return out
}

func (c *entryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %q\n", f.Args())
		return subcommands.ExitUsageError
	}
	a, err := loadApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	ctx = logger.WithContext(ctx, a.log)

	frm := a.newForm()
	if err := fill(frm, c.typ, c.values(f)); err != nil {
		printMarkdown(renderer.Failure(err))
		return exitStatus(err)
	}
	p, err := frm.Build()
	if err != nil {
		printMarkdown(renderer.Failure(err) + "\n" + renderer.Schema(frm.Entry()))
		return exitStatus(err)
	}

	opts := renderer.ReceiptOptions{Location: frm.Location(), Warnings: frm.Warnings()}
	if usd, ok := frm.FeeUSD(); ok {
		opts.FeeUSD = &usd
	}
	printMarkdown(renderer.Receipt(p, opts))

	if c.dryRun {
		body, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		printMarkdown(fmt.Sprintf("\n```json\n%s\n```\n", body))
		return subcommands.ExitSuccess
	}

	return send(ctx, a, frm)
}

// send submits frm to the ledger configured in a and prints the outcome.
func send(ctx context.Context, a *app, frm *form.Form) subcommands.ExitStatus {
	log := logger.FromContext(ctx)
	api := client.New(a.cfg.API.BaseURL, client.WithToken(a.cfg.API.Token), client.WithLogger(log))
	ctrl := submit.NewController(api, log)

	res, err := ctrl.Submit(ctx, frm)
	if err != nil {
		printMarkdown("\n" + renderer.Failure(err))
		return exitStatus(err)
	}
	printMarkdown("\n" + renderer.Outcome(res))
	return subcommands.ExitSuccess
}

// fill starts an entry of type t in frm and replays values as user edits,
// in the input order of the entry so that derived fields are filled before
// they are checked.
func fill(frm *form.Form, t bitcointx.TransactionType, values map[bitcointx.Field]string) error {
	e, err := frm.SelectType(t)
	if err != nil {
		return err
	}
	for _, field := range e.Fields() {
		v, ok := values[field]
		if !ok {
			continue
		}
		if _, err := frm.Set(field, v); err != nil {
			return err
		}
	}
	return nil
}

// commandName is the name of the subcommand of type t.
func commandName(t bitcointx.TransactionType) string {
	if t == bitcointx.TypeWithdrawal {
		return "withdraw"
	}
	return strings.ToLower(string(t))
}

// parseType parses a transaction type or a command name.
func parseType(s string) (bitcointx.TransactionType, error) {
	for _, t := range bitcointx.TransactionTypes {
		if commandName(t) == strings.ToLower(s) {
			return t, nil
		}
	}
	return bitcointx.ParseTransactionType(s)
}

// flagName is the kebab case of a field name, e.g. "amount-usd" for
// amountUSD.
func flagName(f bitcointx.Field) string {
	var b strings.Builder
	var prev rune
	for _, r := range string(f) {
		switch {
		case r == '_':
			r = '-'
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return b.String()
}

// parseField returns the field of e named s, either its name or its flag
// name.
func parseField(e bitcointx.Entry, s string) (bitcointx.Field, error) {
	for _, f := range e.Fields() {
		if string(f) == s || flagName(f) == s {
			return f, nil
		}
	}
	return "", &bitcointx.ValidationError{Field: bitcointx.Field(s), Reason: fmt.Sprintf("is not a field of %s", e.Type())}
}

var descriptions = map[bitcointx.Field]string{
	bitcointx.FieldTimestamp:    "Local date and time as YYYY-MM-DDTHH:MM. Defaults to now.",
	bitcointx.FieldAccount:      "Account.",
	bitcointx.FieldCurrency:     "Currency, derived from the account except for Exchange.",
	bitcointx.FieldFromAccount:  "Account the funds leave.",
	bitcointx.FieldFromCurrency: "Currency moved, derived from the account except for Exchange.",
	bitcointx.FieldToAccount:    "Account the funds enter, derived.",
	bitcointx.FieldToCurrency:   "Currency received, derived.",
	bitcointx.FieldAmountFrom:   "Amount sent.",
	bitcointx.FieldAmountTo:     "Amount received.",
	bitcointx.FieldAmountUSD:    "Amount in USD.",
	bitcointx.FieldAmountBTC:    "Amount in BTC.",
	bitcointx.FieldAmount:       "Amount, in the currency of the account.",
	bitcointx.FieldFee:          "Fee.",
	bitcointx.FieldCostBasisUSD: "Cost basis in USD.",
	bitcointx.FieldProceedsUSD:  "Proceeds in USD.",
	bitcointx.FieldSource:       "Where the funds come from.",
	bitcointx.FieldPurpose:      "What the funds were used for.",
}

func fieldUsage(f bitcointx.Field) string {
	usage := descriptions[f]
	if choices := bitcointx.Choices(f); len(choices) > 0 {
		usage += " One of " + strings.Join(choices, ", ") + "."
	}
	return usage
}
