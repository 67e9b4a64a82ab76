// Package cmd implements the btx command line application: one subcommand
// per transaction type, each one filling an entry from flags and sending it
// to the ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/etnz/bitcointx"
	"github.com/etnz/bitcointx/form"
	"github.com/etnz/bitcointx/internal/config"
	"github.com/etnz/bitcointx/internal/logger"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, t := range bitcointx.TransactionTypes {
		c.Register(newEntryCmd(t), "transactions")
	}
	c.Register(&schemaCmd{}, "help")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file (TOML). Defaults to $BITCOINTX_CONFIG or ~/.config/bitcointx/config.toml")
var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal.")
var verbose = flag.Bool("v", false, "Log at debug level.")

// app holds what every command needs, read from the configuration.
type app struct {
	cfg   config.Config
	log   zerolog.Logger
	loc   *time.Location
	price bitcointx.Amount
}

func loadApp() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *verbose {
		cfg.Log.Level = zerolog.LevelDebugValue
	}
	log, err := logger.Configure(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	price, err := cfg.ReferencePrice()
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, loc: loc, price: price}, nil
}

func (a *app) newForm() *form.Form {
	return form.New(form.Options{
		ReferencePrice: a.price,
		Location:       a.loc,
		Logger:         a.log,
	})
}

// exitStatus maps an error to the exit status of a command.
func exitStatus(err error) subcommands.ExitStatus {
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.Is(err, bitcointx.ErrTransport):
		return subcommands.ExitFailure
	default:
		// the user can fix the entry and try again
		return subcommands.ExitUsageError
	}
}

// printMarkdown prints md to stdout, rendered when stdout is a terminal.
func printMarkdown(md string) {
	if *plain || !isTerminal(os.Stdout) {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, styles.DarkStyle)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
