package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/bitcointx"
	"github.com/etnz/bitcointx/form"
	"github.com/etnz/bitcointx/renderer"
	"github.com/google/subcommands"
)

type schemaCmd struct{}

func (*schemaCmd) Name() string     { return "schema" }
func (*schemaCmd) Synopsis() string { return "print the fields of a transaction type and their state" }
func (*schemaCmd) Usage() string {
	return `btx schema <type> [<field>=<value>]...

  Prints the fields of a transaction type: whether they are required,
  optional, derived or hidden, and their value once the given edits are
  applied in order.

`
}

func (*schemaCmd) SetFlags(f *flag.FlagSet) {}

func (*schemaCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing transaction type")
		return subcommands.ExitUsageError
	}
	t, err := parseType(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	a, err := loadApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	frm := a.newForm()
	if err := edit(frm, t, f.Args()[1:]); err != nil {
		printMarkdown(renderer.Failure(err))
		return exitStatus(err)
	}
	printMarkdown(renderer.Schema(frm.Entry()))
	return subcommands.ExitSuccess
}

// edit starts an entry of type t in frm and applies edits of the form
// field=value, in order.
func edit(frm *form.Form, t bitcointx.TransactionType, edits []string) error {
	e, err := frm.SelectType(t)
	if err != nil {
		return err
	}
	for _, kv := range edits {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return &bitcointx.ValidationError{Reason: fmt.Sprintf("invalid edit %q, want field=value", kv)}
		}
		field, err := parseField(e, name)
		if err != nil {
			return err
		}
		if _, err := frm.Set(field, value); err != nil {
			return err
		}
	}
	return nil
}
