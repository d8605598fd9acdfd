package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/marketrisk/renderer"
	"github.com/google/subcommands"
)

type volCmd struct {
	scenarioFlags
}

func (*volCmd) Name() string     { return "vol" }
func (*volCmd) Synopsis() string { return "prints the fitted GARCH(1,1) volatility models" }
func (*volCmd) Usage() string {
	return `mrk vol [-scenario <file>]

  Fits a GARCH(1,1) model to each asset's log returns and prints the
  estimated coefficients with their standard errors, the persistence
  and the long-run and latest conditional volatilities.

Usage Examples:
$ mrk vol -scenario crash.yaml

`
}

func (p *volCmd) SetFlags(f *flag.FlagSet) { p.scenarioFlags.SetFlags(f) }

func (p *volCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := p.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.VolatilityMarkdown(report))
	return subcommands.ExitSuccess
}
