package cmd

import (
	"github.com/etnz/bitcointx"
	"github.com/etnz/bitcointx/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion: subcommands,
// their flags and the choices of enumerated fields.
func Completion() *complete.Command {
	types := make([]string, len(bitcointx.TransactionTypes))
	c := &complete.Command{
		Sub: map[string]*complete.Command{
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
			"plain":  predict.Nothing,
			"v":      predict.Nothing,
		},
	}
	for i, t := range bitcointx.TransactionTypes {
		types[i] = commandName(t)
		e, err := bitcointx.NewEntry(t, bitcointx.Timestamp{})
		if err != nil {
			continue
		}
		flags := map[string]complete.Predictor{"n": predict.Nothing}
		for _, f := range e.Fields() {
			flags[flagName(f)] = fieldPredictor(f)
		}
		c.Sub[commandName(t)] = &complete.Command{Flags: flags}
	}
	c.Sub["schema"] = &complete.Command{Args: predict.Set(types)}
	topics, _ := docs.List()
	c.Sub["topic"] = &complete.Command{
		Flags: map[string]complete.Predictor{"l": predict.Nothing},
		Args:  predict.Set(append(topics, docs.All)),
	}
	return c
}

func fieldPredictor(f bitcointx.Field) complete.Predictor {
	if choices := bitcointx.Choices(f); len(choices) > 0 {
		return predict.Set(choices)
	}
	return predict.Something
}
