package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type fetchCmd struct {
	scenarioFlags
	last int
}

func (*fetchCmd) Name() string { return "fetch" }
func (*fetchCmd) Synopsis() string {
	return "fetches the scenario's daily closes and prints them"
}
func (*fetchCmd) Usage() string {
	return `mrk fetch [-scenario <file>] [-n <days>]

  Fetches the daily adjusted closes for every scenario asset over the
  scenario window and prints a summary plus the most recent closes.
  Useful to inspect what the analysis will run on, or to warm the
  daily cache before going offline.

Usage Examples:
# Last 10 closes of the default scenario assets.
$ mrk fetch

# Last 30 closes of a custom scenario.
$ mrk fetch -scenario crash.yaml -n 30

`
}

func (p *fetchCmd) SetFlags(f *flag.FlagSet) {
	p.scenarioFlags.SetFlags(f)
	f.IntVar(&p.last, "n", 10, "number of most recent closes to print per asset")
}

func (p *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	scenario, err := p.scenario()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	prices, err := fetchPrices(p.source(scenario), scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md := &strings.Builder{}
	for _, a := range scenario.Assets {
		s := prices[a.Ticker]
		first, fv := s.First()
		latest, lv := s.Latest()
		fmt.Fprintf(md, "# %s (%s)\n\n", a.Name, a.Ticker)
		fmt.Fprintf(md, "%d trading days from %s (%.2f) to %s (%.2f).\n\n", s.Len(), first, fv, latest, lv)
		fmt.Fprintf(md, "| Date | Close |\n")
		fmt.Fprintf(md, "|------|------:|\n")
		from := s.Len() - p.last
		if from < 0 {
			from = 0
		}
		for i := from; i < s.Len(); i++ {
			day, v := s.At(i)
			fmt.Fprintf(md, "| %s | %.2f |\n", day, v)
		}
		fmt.Fprintln(md)
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
