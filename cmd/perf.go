package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/marketrisk/renderer"
	"github.com/google/subcommands"
)

type perfCmd struct {
	scenarioFlags
}

func (*perfCmd) Name() string     { return "perf" }
func (*perfCmd) Synopsis() string { return "prints realized return, Sharpe ratio and RAROC" }
func (*perfCmd) Usage() string {
	return `mrk perf [-scenario <file>]

  Prints each portfolio's realized one-day return and P&L on the last
  trading day of the window, with its Sharpe ratio and RAROC.

Usage Examples:
$ mrk perf -scenario crash.yaml

`
}

func (p *perfCmd) SetFlags(f *flag.FlagSet) { p.scenarioFlags.SetFlags(f) }

func (p *perfCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := p.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PerformanceMarkdown(report))
	return subcommands.ExitSuccess
}
