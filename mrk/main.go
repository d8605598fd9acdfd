// Command mrk analyzes the market risk of a two-asset portfolio.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/marketrisk/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion first: a no-op unless the shell is asking.
	completion().Complete("mrk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	scenario := map[string]complete.Predictor{
		"scenario":      predict.Files("*.yaml"),
		"eodhd-api-key": predict.Something,
	}
	withCharts := map[string]complete.Predictor{
		"scenario":      predict.Files("*.yaml"),
		"eodhd-api-key": predict.Something,
		"charts":        predict.Dirs("*"),
	}
	withLast := map[string]complete.Predictor{
		"scenario":      predict.Files("*.yaml"),
		"eodhd-api-key": predict.Something,
		"n":             predict.Something,
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"report":   {Flags: withCharts},
			"fetch":    {Flags: withLast},
			"quote":    {Args: predict.Something},
			"vol":      {Flags: scenario},
			"var":      {Flags: scenario},
			"perf":     {Flags: scenario},
			"annotate": {Flags: scenario},
			"topic":    {Args: predict.Set{"readme", "methodology", "scenario", "dates", "sources", "*"}},
		},
	}
}
