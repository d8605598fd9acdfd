package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/marketrisk/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	scenarioFlags
	chartsDir string
}

func (*reportCmd) Name() string { return "report" }
func (*reportCmd) Synopsis() string {
	return "runs the full risk analysis and prints the report"
}
func (*reportCmd) Usage() string {
	return `mrk report [-scenario <file>] [-charts <dir>]

  Fetches the scenario window of daily closes, fits a GARCH(1,1) volatility
  model per asset, and prints the report: correlation, value at risk,
  expected shortfall and performance for each portfolio.
  Without -scenario it runs the built-in default scenario.

Usage Examples:
# Run the default scenario.
$ mrk report

# Run a custom scenario and write PNG charts next to it.
$ mrk report -scenario crash.yaml -charts out/

`
}

func (p *reportCmd) SetFlags(f *flag.FlagSet) {
	p.scenarioFlags.SetFlags(f)
	f.StringVar(&p.chartsDir, "charts", "", "directory to write prices.png and volatility.png to")
}

func (p *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := p.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ReportMarkdown(report))

	if p.chartsDir == "" {
		return subcommands.ExitSuccess
	}
	if err := os.MkdirAll(p.chartsDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not create charts directory: %v\n", err)
		return subcommands.ExitFailure
	}
	prices, err := renderer.PriceChartPNG(p.chartsDir, report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not render price chart: %v\n", err)
		return subcommands.ExitFailure
	}
	vols, err := renderer.VolatilityChartPNG(p.chartsDir, report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not render volatility chart: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Charts written to %s and %s\n", prices, vols)
	return subcommands.ExitSuccess
}
