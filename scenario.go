package marketrisk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Asset is one security under analysis: a ticker, a display name, and the
// dollar position held in it.
type Asset struct {
	Ticker   string  `yaml:"ticker"`
	Name     string  `yaml:"name"`
	Notional float64 `yaml:"notional"`
}

// Scenario holds the parameters of one analysis run. The zero value is not
// usable; obtain one from LoadScenario or DefaultScenario.
type Scenario struct {
	Assets []Asset `yaml:"assets"`
	Window struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"window"`
	RiskFreeRate float64 `yaml:"risk_free_rate"` // annual, e.g. 0.03
	Confidence   float64 `yaml:"confidence"`     // VaR confidence, e.g. 0.99
	Source       string  `yaml:"source"`         // market data source: yahoo or eodhd
}

// DefaultScenario returns the canonical run: JPMorgan against the S&P 500
// over 2021-2022, a million dollars in each, 3% risk-free, 99% VaR.
func DefaultScenario() *Scenario {
	s := &Scenario{}
	s.applyDefaults()
	return s
}

// LoadScenario reads a scenario from a YAML file, then applies environment
// variable overrides and defaults for anything left unset. An empty path
// yields the default scenario.
func LoadScenario(path string) (*Scenario, error) {
	s := &Scenario{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read scenario: %w", err)
		}
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse scenario: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MRK_SOURCE"); v != "" {
		s.Source = v
	}

	s.applyDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) applyDefaults() {
	if len(s.Assets) == 0 {
		s.Assets = []Asset{
			{Ticker: "JPM", Name: "JPMorgan Chase & Co.", Notional: 1_000_000},
			{Ticker: "^GSPC", Name: "S&P 500", Notional: 1_000_000},
		}
	}
	for i := range s.Assets {
		if s.Assets[i].Name == "" {
			s.Assets[i].Name = s.Assets[i].Ticker
		}
		if s.Assets[i].Notional == 0 {
			s.Assets[i].Notional = 1_000_000
		}
	}
	if s.Window.Start == "" {
		s.Window.Start = "2021-01-01"
	}
	if s.Window.End == "" {
		s.Window.End = "2022-12-31"
	}
	if s.RiskFreeRate == 0 {
		s.RiskFreeRate = 0.03
	}
	if s.Confidence == 0 {
		s.Confidence = 0.99
	}
	if s.Source == "" {
		s.Source = "yahoo"
	}
}

// Validate checks that the scenario describes a computable two-security
// analysis.
func (s *Scenario) Validate() error {
	if len(s.Assets) != 2 {
		return fmt.Errorf("scenario compares exactly two securities, got %d", len(s.Assets))
	}
	for _, a := range s.Assets {
		if a.Ticker == "" {
			return fmt.Errorf("asset ticker is required")
		}
		if a.Notional <= 0 {
			return fmt.Errorf("asset %s: notional must be positive, got %v", a.Ticker, a.Notional)
		}
	}
	if s.Assets[0].Ticker == s.Assets[1].Ticker {
		return fmt.Errorf("assets must be distinct, got %s twice", s.Assets[0].Ticker)
	}
	from, to, err := s.Range()
	if err != nil {
		return err
	}
	if !from.Before(to) {
		return fmt.Errorf("window start %s must be before end %s", from, to)
	}
	if s.Confidence <= 0 || s.Confidence >= 1 {
		return fmt.Errorf("confidence must be in (0, 1), got %v", s.Confidence)
	}
	if s.Source != "yahoo" && s.Source != "eodhd" {
		return fmt.Errorf("unknown market data source %q, want yahoo or eodhd", s.Source)
	}
	return nil
}

// Range returns the analysis window as dates.
func (s *Scenario) Range() (from, to Date, err error) {
	from, err = ParseDate(s.Window.Start)
	if err != nil {
		return Date{}, Date{}, fmt.Errorf("window start: %w", err)
	}
	to, err = ParseDate(s.Window.End)
	if err != nil {
		return Date{}, Date{}, fmt.Errorf("window end: %w", err)
	}
	return from, to, nil
}

// Portfolios returns the three portfolios a run compares: all in the first
// asset, all in the second, and an equal split of the combined notional.
func (s *Scenario) Portfolios() []Portfolio {
	a, b := s.Assets[0], s.Assets[1]
	return []Portfolio{
		Single(a.Ticker, a.Notional),
		Single(b.Ticker, b.Notional),
		EqualBlend(fmt.Sprintf("%s + %s (50/50)", a.Ticker, b.Ticker), a.Notional+b.Notional, a.Ticker, b.Ticker),
	}
}
