// Package cmd implements the mrk CLI, one subcommand per file.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/marketrisk"
	"github.com/etnz/marketrisk/marketdata"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the mrk CLI, in help order.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&reportCmd{},
	&fetchCmd{},
	&quoteCmd{},
	&volCmd{},
	&varCmd{},
	&perfCmd{},
	&annotateCmd{},
	&topicCmd{},
}

const eodhd_api_key = "EODHD_API_KEY"

// scenarioFlags is embedded by every command that runs a scenario.
type scenarioFlags struct {
	scenarioFile string
	eodhdApiFlag string
}

func (s *scenarioFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.scenarioFile, "scenario", "", "path to a scenario YAML file (built-in defaults when omitted)")
	f.StringVar(&s.eodhdApiFlag, "eodhd-api-key", "", "EODHD API key. This flag takes precedence over the "+eodhd_api_key+" environment variable. You can get one at https://eodhd.com/")
}

// eodhdApiKey retrieves the EODHD API key from the command-line flag or the
// environment variable. It prioritizes the flag over the environment variable.
func (s *scenarioFlags) eodhdApiKey() string {
	if s.eodhdApiFlag == "" {
		s.eodhdApiFlag = os.Getenv(eodhd_api_key)
	}
	return s.eodhdApiFlag
}

// scenario loads and validates the scenario file.
func (s *scenarioFlags) scenario() (*marketrisk.Scenario, error) {
	return marketrisk.LoadScenario(s.scenarioFile)
}

// source returns the price source the scenario selects.
func (s *scenarioFlags) source(scenario *marketrisk.Scenario) marketrisk.PriceSource {
	if scenario.Source == "eodhd" {
		return &marketdata.EODHD{APIKey: s.eodhdApiKey()}
	}
	return &marketdata.Yahoo{}
}

// run loads the scenario, fetches the prices and runs the full analysis.
func (s *scenarioFlags) run() (*marketrisk.Report, error) {
	scenario, err := s.scenario()
	if err != nil {
		return nil, err
	}
	prices, err := fetchPrices(s.source(scenario), scenario)
	if err != nil {
		return nil, err
	}
	return marketrisk.Analyze(scenario, prices)
}

// fetchPrices loads the scenario window for every scenario asset.
func fetchPrices(src marketrisk.PriceSource, s *marketrisk.Scenario) (map[string]*marketrisk.Series, error) {
	from, to, err := s.Range()
	if err != nil {
		return nil, err
	}
	prices := make(map[string]*marketrisk.Series, len(s.Assets))
	for _, a := range s.Assets {
		p, err := src.DailyCloses(a.Ticker, from, to)
		if err != nil {
			return nil, fmt.Errorf("could not fetch %s from %s: %w", a.Ticker, src.Name(), err)
		}
		if p.Len() < 2 {
			return nil, fmt.Errorf("%w: %s returned %d closes for %s between %s and %s",
				marketrisk.ErrInsufficientData, src.Name(), p.Len(), a.Ticker, from, to)
		}
		log.Printf("fetched %d closes for %s from %s", p.Len(), a.Ticker, src.Name())
		prices[a.Ticker] = p
	}
	return prices, nil
}
