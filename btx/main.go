package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/bitcointx/cmd"
	"github.com/google/subcommands"
)

func main() {
	// answers shell completion requests, and exits, when run by the shell
	cmd.Completion().Complete("btx")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
