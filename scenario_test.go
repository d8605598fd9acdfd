package marketrisk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultScenario(t *testing.T) {
	s := DefaultScenario()

	if err := s.Validate(); err != nil {
		t.Fatalf("default scenario is invalid: %v", err)
	}
	if len(s.Assets) != 2 {
		t.Fatalf("default assets = %d, want 2", len(s.Assets))
	}
	if s.Assets[0].Ticker != "JPM" || s.Assets[1].Ticker != "^GSPC" {
		t.Errorf("default tickers = %s, %s, want JPM, ^GSPC", s.Assets[0].Ticker, s.Assets[1].Ticker)
	}
	if s.RiskFreeRate != 0.03 || s.Confidence != 0.99 || s.Source != "yahoo" {
		t.Errorf("defaults = %v, %v, %q, want 0.03, 0.99, yahoo", s.RiskFreeRate, s.Confidence, s.Source)
	}

	from, to, err := s.Range()
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if from != NewDate(2021, 1, 1) || to != NewDate(2022, 12, 31) {
		t.Errorf("default window = %s..%s, want 2021-01-01..2022-12-31", from, to)
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	doc := `
assets:
  - ticker: AAPL
    name: Apple Inc.
    notional: 500000
  - ticker: MSFT
window:
  start: 2020-06-01
  end: 2020-12-31
risk_free_rate: 0.01
confidence: 0.95
source: eodhd
`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario() error = %v", err)
	}

	if s.Assets[0].Ticker != "AAPL" || s.Assets[0].Notional != 500_000 {
		t.Errorf("asset[0] = %+v, want AAPL at 500000", s.Assets[0])
	}
	// Unset fields fall back to defaults.
	if s.Assets[1].Name != "MSFT" {
		t.Errorf("asset[1].Name = %q, want ticker fallback MSFT", s.Assets[1].Name)
	}
	if s.Assets[1].Notional != 1_000_000 {
		t.Errorf("asset[1].Notional = %v, want default 1000000", s.Assets[1].Notional)
	}
	if s.RiskFreeRate != 0.01 || s.Confidence != 0.95 || s.Source != "eodhd" {
		t.Errorf("loaded = %v, %v, %q, want 0.01, 0.95, eodhd", s.RiskFreeRate, s.Confidence, s.Source)
	}
}

func TestLoadScenario_EnvOverride(t *testing.T) {
	t.Setenv("MRK_SOURCE", "eodhd")

	s, err := LoadScenario("")
	if err != nil {
		t.Fatalf("LoadScenario() error = %v", err)
	}
	if s.Source != "eodhd" {
		t.Errorf("Source = %q, want env override eodhd", s.Source)
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadScenario() with a missing explicit path, want error")
	}
}

func TestScenario_Validate(t *testing.T) {
	valid := func() *Scenario { return DefaultScenario() }

	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr string
	}{
		{"valid", func(s *Scenario) {}, ""},
		{"one asset", func(s *Scenario) { s.Assets = s.Assets[:1] }, "exactly two"},
		{"duplicate tickers", func(s *Scenario) { s.Assets[1].Ticker = s.Assets[0].Ticker }, "distinct"},
		{"missing ticker", func(s *Scenario) { s.Assets[0].Ticker = "" }, "ticker is required"},
		{"negative notional", func(s *Scenario) { s.Assets[0].Notional = -1 }, "positive"},
		{"reversed window", func(s *Scenario) { s.Window.Start, s.Window.End = s.Window.End, s.Window.Start }, "before"},
		{"bad start date", func(s *Scenario) { s.Window.Start = "not-a-date" }, "window start"},
		{"confidence too high", func(s *Scenario) { s.Confidence = 1.5 }, "confidence"},
		{"unknown source", func(s *Scenario) { s.Source = "bloomberg" }, "unknown market data source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestScenario_Portfolios(t *testing.T) {
	ps := DefaultScenario().Portfolios()

	if len(ps) != 3 {
		t.Fatalf("Portfolios() len = %d, want 3", len(ps))
	}
	if ps[0].Notional != 1_000_000 || ps[1].Notional != 1_000_000 {
		t.Errorf("single notionals = %v, %v, want 1000000 each", ps[0].Notional, ps[1].Notional)
	}
	if ps[2].Notional != 2_000_000 {
		t.Errorf("blend notional = %v, want 2000000", ps[2].Notional)
	}
	for _, p := range ps {
		if err := p.Validate(); err != nil {
			t.Errorf("portfolio %q invalid: %v", p.Name, err)
		}
	}
	if w := ps[2].Allocations[0].Weight; w != 0.5 {
		t.Errorf("blend weight = %v, want 0.5", w)
	}
}
