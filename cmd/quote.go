package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/marketrisk"
	"github.com/etnz/marketrisk/marketdata"
	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "prints the latest market price of tickers" }
func (*quoteCmd) Usage() string {
	return `mrk quote [<ticker>...]

  Prints the latest regular market price for each ticker, straight from
  Yahoo Finance. Without arguments it quotes the default scenario assets.

Usage Examples:
$ mrk quote JPM ^GSPC

`
}

func (*quoteCmd) SetFlags(f *flag.FlagSet) {}

func (p *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tickers := f.Args()
	if len(tickers) == 0 {
		for _, a := range marketrisk.DefaultScenario().Assets {
			tickers = append(tickers, a.Ticker)
		}
	}

	yahoo := &marketdata.Yahoo{}
	status := subcommands.ExitSuccess
	for _, ticker := range tickers {
		price, err := yahoo.LatestQuote(ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not quote %s: %v\n", ticker, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%s: %.2f\n", ticker, price)
	}
	return status
}
