package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/marketrisk/renderer"
	"github.com/google/subcommands"
)

type varCmd struct {
	scenarioFlags
}

func (*varCmd) Name() string     { return "var" }
func (*varCmd) Synopsis() string { return "prints correlation and value at risk per portfolio" }
func (*varCmd) Usage() string {
	return `mrk var [-scenario <file>]

  Prints the correlation between the two assets and, for each portfolio,
  the one-day historical value at risk, the expected shortfall beyond it
  and the delta-normal value at risk, at the scenario confidence level.

Usage Examples:
$ mrk var -scenario crash.yaml

`
}

func (p *varCmd) SetFlags(f *flag.FlagSet) { p.scenarioFlags.SetFlags(f) }

func (p *varCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := p.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RiskMarkdown(report))
	return subcommands.ExitSuccess
}
